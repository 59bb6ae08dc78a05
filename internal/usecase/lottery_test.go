package usecase_test

import (
	"context"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scriptkit/internal/adapters/compiler"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

func newLotteryActions(env *testEnv) *usecase.LotteryActions {
	return usecase.NewLotteryActions(env.cfg, env.chain.Client, env.deployments, env.accounts, discardLogger())
}

func TestLotteryActions_NoDeployment(t *testing.T) {
	env := newTestEnv(t, "development")
	uc := newLotteryActions(env)

	_, err := uc.Status(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "deploy-lottery")
}

func TestLotteryActions_StaleDeployment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "development")
	require.NoError(t, env.deployments.SaveDeployment(ctx, &domain.Deployment{
		Contract: domain.LotteryContract,
		Address:  common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		ChainID:  1337,
	}))
	uc := newLotteryActions(env)

	_, err := uc.EntranceFee(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "reset")
}

// copyContracts copies the project's contracts into the test project
func copyContracts(t *testing.T, root string) {
	t.Helper()
	src := filepath.Join("..", "..", "contracts")
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		dst := filepath.Join(root, "contracts", rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0644)
	})
	require.NoError(t, err)
}

// newSolcEnv compiles with a locally installed solc, skipping when none is found
func newSolcEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, "development")

	installer := compiler.NewInstaller(t.TempDir(), discardLogger())
	if _, ok := installer.Find(context.Background(), env.cfg.Project.Compiler.SolcVersion); !ok {
		t.Skipf("solc %s not installed", env.cfg.Project.Compiler.SolcVersion)
	}

	copyContracts(t, env.cfg.ProjectRoot)
	env.compile = usecase.NewCompileContracts(env.cfg, env.sources, compiler.NewSolc(installer, discardLogger()), env.artifacts, env.progress, discardLogger())
	env.contracts = usecase.NewResolveContract(env.cfg, env.accounts, env.compile, env.deployer, env.progress, discardLogger())
	return env
}

// newFixtureEnv loads prebuilt Lottery and MockV3Aggregator artifacts from
// testdata. They are hand-assembled contracts with the same interface and fee
// arithmetic as the Solidity sources, so no compiler is needed.
func newFixtureEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, "development")
	for _, name := range []string{domain.LotteryContract, domain.MockV3AggregatorContract} {
		data, err := os.ReadFile(filepath.Join("testdata", name+".json"))
		require.NoError(t, err)
		var artifact domain.Artifact
		require.NoError(t, json.Unmarshal(data, &artifact))
		require.NoError(t, env.artifacts.SaveArtifact(context.Background(), &artifact))
	}
	return env
}

func TestLottery_Scenario(t *testing.T) {
	env := newFixtureEnv(t)
	runLotteryScenario(t, env)
	env.compiler.AssertNotCalled(t, "Compile", mock.Anything, mock.Anything)
}

func TestLottery_ScenarioWithSolc(t *testing.T) {
	runLotteryScenario(t, newSolcEnv(t))
}

func runLotteryScenario(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	deploy := usecase.NewDeployLottery(env.cfg, env.accounts, env.contracts, env.compile, env.deployer, env.chain.Client, env.progress, discardLogger())
	deployed, err := deploy.Run(ctx, usecase.DeployLotteryParams{})
	require.NoError(t, err)

	// 50 USD at the mock's 2000 USD/ETH
	wantFee, _ := new(big.Int).SetString("25000000000000000", 10)
	require.NotNil(t, deployed.EntranceFee)
	assert.Equal(t, 0, wantFee.Cmp(deployed.EntranceFee))
	assert.True(t, deployed.PriceFeed.Mock)
	assert.Equal(t, addr0, deployed.Account.Address)
	require.NotNil(t, deployed.FeedAnswer)
	assert.Equal(t, 0, domain.DefaultMockInitialValue().Cmp(deployed.FeedAnswer))
	assert.Equal(t, domain.DefaultMockDecimals, deployed.FeedDecimals)

	lottery := newLotteryActions(env)
	one := 1

	fee, err := lottery.EntranceFee(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, wantFee.Cmp(fee))

	status, err := lottery.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LotteryClosed, status.State)

	_, err = lottery.Enter(ctx, usecase.LotteryEnterParams{Account: usecase.AccountParams{Index: &one}})
	assert.ErrorIs(t, err, domain.ErrTransactionReverted, "entering a closed lottery")

	_, err = lottery.Start(ctx, usecase.AccountParams{Index: &one})
	assert.ErrorIs(t, err, domain.ErrTransactionReverted, "only the owner starts")

	_, err = lottery.Start(ctx, usecase.AccountParams{})
	require.NoError(t, err)

	_, err = lottery.Enter(ctx, usecase.LotteryEnterParams{
		Account: usecase.AccountParams{Index: &one},
		Value:   new(big.Int).Sub(wantFee, big.NewInt(1)),
	})
	assert.ErrorIs(t, err, domain.ErrTransactionReverted, "paying less than the fee")

	entered, err := lottery.Enter(ctx, usecase.LotteryEnterParams{Account: usecase.AccountParams{Index: &one}})
	require.NoError(t, err)
	assert.Equal(t, addr1, entered.Account.Address)
	assert.Equal(t, 1, entered.Value.Cmp(wantFee))

	status, err = lottery.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LotteryOpen, status.State)
	assert.Equal(t, uint64(1), status.Players)
	assert.Equal(t, addr0, status.Owner)
	assert.Equal(t, 0, entered.Value.Cmp(status.Balance))

	_, err = lottery.End(ctx, usecase.AccountParams{Index: &one})
	assert.ErrorIs(t, err, domain.ErrTransactionReverted, "only the owner ends")

	ended, err := lottery.End(ctx, usecase.AccountParams{})
	require.NoError(t, err)
	assert.Equal(t, addr1, ended.Winner)
	assert.Equal(t, 0, entered.Value.Cmp(ended.Prize))

	status, err = lottery.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LotteryClosed, status.State)
	assert.Equal(t, uint64(0), status.Players)
	assert.Equal(t, 0, status.Balance.Sign())
	assert.Equal(t, addr1, status.RecentWinner)
}
