package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/bindings"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// PriceFeedName is the symbolic name of the ETH/USD feed the Lottery reads
const PriceFeedName = "eth_usd_price_feed"

// DeployLotteryParams contains parameters for deploying the lottery
type DeployLotteryParams struct {
	Account AccountParams
}

// DeployLotteryResult contains the result of deploying the lottery
type DeployLotteryResult struct {
	Deployment  *domain.Deployment
	Tx          *domain.TxResult
	PriceFeed   *domain.ContractHandle
	Account     *domain.Account
	EntranceFee *big.Int
	// FeedAnswer is the latest feed answer, scaled by FeedDecimals
	FeedAnswer   *big.Int
	FeedDecimals uint8
}

// DeployLottery deploys Lottery against the resolved price feed
type DeployLottery struct {
	config    *config.RuntimeConfig
	accounts  *ResolveAccount
	contracts *ResolveContract
	compile   *CompileContracts
	deployer  *ContractDeployer
	client    ChainClient
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployLottery creates a new DeployLottery use case
func NewDeployLottery(
	cfg *config.RuntimeConfig,
	accounts *ResolveAccount,
	contracts *ResolveContract,
	compile *CompileContracts,
	deployer *ContractDeployer,
	client ChainClient,
	progress ProgressSink,
	log *slog.Logger,
) *DeployLottery {
	return &DeployLottery{
		config:    cfg,
		accounts:  accounts,
		contracts: contracts,
		compile:   compile,
		deployer:  deployer,
		client:    client,
		progress:  progress,
		log:       log.With("component", "DeployLottery"),
	}
}

// Run executes the deployment
func (uc *DeployLottery) Run(ctx context.Context, params DeployLotteryParams) (*DeployLotteryResult, error) {
	accountParams := params.Account
	if accountParams.Index == nil && accountParams.ID == "" {
		accountParams.ID = uc.config.Project.Wallets.AccountID
	}

	account, err := uc.accounts.Run(ctx, accountParams)
	if err != nil {
		return nil, err
	}

	priceFeed, err := uc.contracts.Run(ctx, PriceFeedName)
	if err != nil {
		return nil, err
	}

	artifact, err := uc.compile.Artifact(ctx, domain.LotteryContract)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s", domain.LotteryContract),
		Spinner: true,
	})

	lottery := bindings.NewLottery()
	deployment, tx, err := uc.deployer.Deploy(ctx, DeployRequest{
		From:            account,
		Artifact:        artifact,
		ConstructorArgs: lottery.PackConstructor(priceFeed.Address),
	})
	if err != nil {
		return nil, err
	}

	result := &DeployLotteryResult{
		Deployment: deployment,
		Tx:         tx,
		PriceFeed:  priceFeed,
		Account:    account,
	}

	// A live feed can be unreachable from a fork or misconfigured; the
	// deployment itself still succeeded
	if answer, decimals, err := uc.readFeed(ctx, account.Address, priceFeed.Address); err == nil {
		result.FeedAnswer, result.FeedDecimals = answer, decimals
	} else {
		uc.log.Warn("could not read price feed", "feed", priceFeed.Address.Hex(), "error", err)
	}

	out, err := uc.client.Call(ctx, account.Address, deployment.Address, lottery.PackGetEntranceFee())
	if err != nil {
		uc.log.Warn("could not read entrance fee", "error", err)
		return result, nil
	}
	if fee, err := lottery.UnpackGetEntranceFee(out); err == nil {
		result.EntranceFee = fee
	}

	return result, nil
}

func (uc *DeployLottery) readFeed(ctx context.Context, from, feed common.Address) (*big.Int, uint8, error) {
	aggregator := bindings.NewMockV3Aggregator()

	out, err := uc.client.Call(ctx, from, feed, aggregator.PackLatestRoundData())
	if err != nil {
		return nil, 0, err
	}
	round, err := aggregator.UnpackLatestRoundData(out)
	if err != nil {
		return nil, 0, err
	}

	if out, err = uc.client.Call(ctx, from, feed, aggregator.PackDecimals()); err != nil {
		return nil, 0, err
	}
	decimals, err := aggregator.UnpackDecimals(out)
	if err != nil {
		return nil, 0, err
	}
	return round.Answer, decimals, nil
}
