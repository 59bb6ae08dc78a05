package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/bindings"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// LotteryEnterParams contains parameters for entering the lottery
type LotteryEnterParams struct {
	Account AccountParams
	// Value defaults to the current entrance fee
	Value *big.Int
}

// LotteryTxResult is the outcome of a state-changing lottery call
type LotteryTxResult struct {
	Lottery *domain.Deployment
	Account *domain.Account
	Tx      *domain.TxResult
	Value   *big.Int
}

// LotteryEndResult is the outcome of endLottery
type LotteryEndResult struct {
	LotteryTxResult
	Winner common.Address
	Prize  *big.Int
}

// LotteryStatus summarises the on-chain state of the lottery
type LotteryStatus struct {
	Lottery      *domain.Deployment
	State        domain.LotteryState
	Players      uint64
	EntranceFee  *big.Int
	Balance      *big.Int
	Owner        common.Address
	RecentWinner common.Address
}

// LotteryActions interacts with the latest Lottery deployed on the active chain
type LotteryActions struct {
	client      ChainClient
	deployments DeploymentRepository
	accounts    *ResolveAccount
	lottery     *bindings.Lottery
	log         *slog.Logger
}

// NewLotteryActions creates a new LotteryActions use case
func NewLotteryActions(
	cfg *config.RuntimeConfig,
	client ChainClient,
	deployments DeploymentRepository,
	accounts *ResolveAccount,
	log *slog.Logger,
) *LotteryActions {
	return &LotteryActions{
		client:      client,
		deployments: deployments,
		accounts:    accounts,
		lottery:     bindings.NewLottery(),
		log:         log.With("component", "LotteryActions", "network", cfg.Network.Name),
	}
}

// locate returns the latest recorded Lottery after checking it still has code
func (uc *LotteryActions) locate(ctx context.Context) (*domain.Deployment, error) {
	chainID, err := uc.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	deployment, err := uc.deployments.LatestDeployment(ctx, chainID, domain.LotteryContract)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no Lottery deployment recorded on chain %d, run deploy-lottery first: %w", chainID, err)
		}
		return nil, err
	}

	code, err := uc.client.CodeAt(ctx, deployment.Address)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: no contract code at %s, the chain may have been reset", domain.ErrNotFound, deployment.Address.Hex())
	}

	return deployment, nil
}

func (uc *LotteryActions) call(ctx context.Context, at common.Address, data []byte) ([]byte, error) {
	return uc.client.Call(ctx, common.Address{}, at, data)
}

func (uc *LotteryActions) entranceFee(ctx context.Context, at common.Address) (*big.Int, error) {
	out, err := uc.call(ctx, at, uc.lottery.PackGetEntranceFee())
	if err != nil {
		return nil, fmt.Errorf("failed to read entrance fee: %w", err)
	}
	return uc.lottery.UnpackGetEntranceFee(out)
}

// EntranceFee returns the current entrance fee in wei
func (uc *LotteryActions) EntranceFee(ctx context.Context) (*big.Int, error) {
	deployment, err := uc.locate(ctx)
	if err != nil {
		return nil, err
	}
	return uc.entranceFee(ctx, deployment.Address)
}

// Start opens the lottery. Only the owner can do this.
func (uc *LotteryActions) Start(ctx context.Context, params AccountParams) (*LotteryTxResult, error) {
	return uc.transact(ctx, params, uc.lottery.PackStartLottery(), nil)
}

// Enter buys a ticket, paying the entrance fee unless a value is given
func (uc *LotteryActions) Enter(ctx context.Context, params LotteryEnterParams) (*LotteryTxResult, error) {
	value := params.Value
	if value == nil {
		deployment, err := uc.locate(ctx)
		if err != nil {
			return nil, err
		}
		if value, err = uc.entranceFee(ctx, deployment.Address); err != nil {
			return nil, err
		}
		// the fee moves with the feed, pay a little extra
		value = new(big.Int).Add(value, new(big.Int).Div(value, big.NewInt(100)))
	}
	return uc.transact(ctx, params.Account, uc.lottery.PackEnter(), value)
}

// End closes the lottery and pays out the winner. Only the owner can do this.
// Winner and prize come from the WinnerPicked event of the receipt.
func (uc *LotteryActions) End(ctx context.Context, params AccountParams) (*LotteryEndResult, error) {
	result, err := uc.transact(ctx, params, uc.lottery.PackEndLottery(), nil)
	if err != nil {
		return nil, err
	}

	for _, entry := range result.Tx.Logs {
		if entry.Address != result.Lottery.Address {
			continue
		}
		picked, err := uc.lottery.UnpackWinnerPickedEvent(entry)
		if err != nil {
			continue
		}
		return &LotteryEndResult{
			LotteryTxResult: *result,
			Winner:          picked.Winner,
			Prize:           picked.Prize,
		}, nil
	}

	return nil, fmt.Errorf("endLottery transaction %s emitted no %s event", result.Tx.Hash.Hex(), bindings.LotteryWinnerPickedEventName)
}

// Status reads the lottery state
func (uc *LotteryActions) Status(ctx context.Context) (*LotteryStatus, error) {
	deployment, err := uc.locate(ctx)
	if err != nil {
		return nil, err
	}
	at := deployment.Address
	status := &LotteryStatus{Lottery: deployment}

	out, err := uc.call(ctx, at, uc.lottery.PackLotteryState())
	if err != nil {
		return nil, err
	}
	state, err := uc.lottery.UnpackLotteryState(out)
	if err != nil {
		return nil, err
	}
	status.State = domain.LotteryState(state)

	if out, err = uc.call(ctx, at, uc.lottery.PackNumberOfPlayers()); err != nil {
		return nil, err
	}
	players, err := uc.lottery.UnpackNumberOfPlayers(out)
	if err != nil {
		return nil, err
	}
	status.Players = players.Uint64()

	if out, err = uc.call(ctx, at, uc.lottery.PackOwner()); err != nil {
		return nil, err
	}
	if status.Owner, err = uc.lottery.UnpackOwner(out); err != nil {
		return nil, err
	}

	if out, err = uc.call(ctx, at, uc.lottery.PackRecentWinner()); err != nil {
		return nil, err
	}
	if status.RecentWinner, err = uc.lottery.UnpackRecentWinner(out); err != nil {
		return nil, err
	}

	if status.Balance, err = uc.client.BalanceAt(ctx, at); err != nil {
		return nil, err
	}

	// an unreachable feed should not hide the rest of the status
	if fee, err := uc.entranceFee(ctx, at); err == nil {
		status.EntranceFee = fee
	} else {
		uc.log.Warn("entrance fee unavailable", "error", err)
	}

	return status, nil
}

func (uc *LotteryActions) transact(ctx context.Context, params AccountParams, data []byte, value *big.Int) (*LotteryTxResult, error) {
	deployment, err := uc.locate(ctx)
	if err != nil {
		return nil, err
	}

	account, err := uc.accounts.Run(ctx, params)
	if err != nil {
		return nil, err
	}

	to := deployment.Address
	tx, err := uc.client.Send(ctx, &domain.TxRequest{
		From:  account,
		To:    &to,
		Data:  data,
		Value: value,
	})
	if err != nil {
		return nil, err
	}

	return &LotteryTxResult{
		Lottery: deployment,
		Account: account,
		Tx:      tx,
		Value:   value,
	}, nil
}
