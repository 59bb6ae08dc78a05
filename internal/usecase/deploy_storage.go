package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/bindings"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// DeployStorageParams contains parameters for the SimpleStorage flow
type DeployStorageParams struct {
	Account AccountParams
	// Value is stored after deployment, defaults to storage.value
	Value *big.Int
	// Nonce defaults to storage.nonce
	Nonce domain.NonceStrategy
}

// DeployStorageResult contains every intermediate result of the flow
type DeployStorageResult struct {
	OutputPath   string
	Account      *domain.Account
	Deployment   *domain.Deployment
	DeployTx     *domain.TxResult
	InitialValue *big.Int
	StoreTx      *domain.TxResult
	StoredValue  *big.Int
	Nonce        domain.NonceStrategy
}

// DeployStorage compiles SimpleStorage, deploys it with a hand-built
// transaction, reads it, stores a value and reads it again
type DeployStorage struct {
	config    *config.RuntimeConfig
	sources   SourceRepository
	compiler  Compiler
	artifacts ArtifactRepository
	accounts  *ResolveAccount
	deployer  *ContractDeployer
	client    ChainClient
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployStorage creates a new DeployStorage use case
func NewDeployStorage(
	cfg *config.RuntimeConfig,
	sources SourceRepository,
	compiler Compiler,
	artifacts ArtifactRepository,
	accounts *ResolveAccount,
	deployer *ContractDeployer,
	client ChainClient,
	progress ProgressSink,
	log *slog.Logger,
) *DeployStorage {
	return &DeployStorage{
		config:    cfg,
		sources:   sources,
		compiler:  compiler,
		artifacts: artifacts,
		accounts:  accounts,
		deployer:  deployer,
		client:    client,
		progress:  progress,
		log:       log.With("component", "DeployStorage"),
	}
}

// Run executes the flow. The first failure aborts it; nothing is rolled back.
func (uc *DeployStorage) Run(ctx context.Context, params DeployStorageParams) (*DeployStorageResult, error) {
	storageCfg := uc.config.Project.Storage

	strategy := params.Nonce
	if strategy == "" {
		strategy = domain.NonceStrategy(storageCfg.Nonce)
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("unknown nonce strategy %q (want %s or %s)", strategy, domain.NonceRequery, domain.NonceSequential)
	}

	value := params.Value
	if value == nil {
		value = big.NewInt(storageCfg.Value)
	}

	// 1. compile
	source, err := uc.sources.ReadSource(ctx, storageCfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", storageCfg.Source, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "compiling",
		Message: fmt.Sprintf("Installing and running solc %s", storageCfg.SolcVersion),
		Spinner: true,
	})

	unit := filepath.Base(storageCfg.Source)
	compiled, err := uc.compiler.Compile(ctx, domain.CompileRequest{
		Version: storageCfg.SolcVersion,
		Sources: map[string]string{unit: source},
	})
	if err != nil {
		return nil, err
	}

	outputPath, err := uc.artifacts.SaveCompilerOutput(ctx, compiled.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to save compiler output: %w", err)
	}

	artifact, ok := compiled.Artifacts[storageCfg.Contract]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found in %s", domain.ErrArtifactNotFound, storageCfg.Contract, unit)
	}

	account, err := uc.accounts.Run(ctx, params.Account)
	if err != nil {
		return nil, err
	}

	// 2-3. build, sign, send the deployment
	nonce, err := uc.client.PendingNonce(ctx, account.Address)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("deployment nonce", "nonce", nonce, "strategy", strategy)

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: "Deploying contract...",
		Spinner: true,
	})

	deployment, deployTx, err := uc.deployer.Deploy(ctx, DeployRequest{
		From:     account,
		Artifact: artifact,
		Nonce:    &nonce,
	})
	if err != nil {
		return nil, err
	}

	result := &DeployStorageResult{
		OutputPath: outputPath,
		Account:    account,
		Deployment: deployment,
		DeployTx:   deployTx,
		Nonce:      strategy,
	}

	storage := bindings.NewSimpleStorage()

	// 4. initial value
	if result.InitialValue, err = uc.retrieve(ctx, storage, account.Address, deployment.Address); err != nil {
		return nil, err
	}

	// 5-6. store and confirm
	var storeNonce *uint64
	if strategy == domain.NonceSequential {
		next := nonce + 1
		storeNonce = &next
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "storing",
		Message: "Updating contract information...",
		Spinner: true,
	})

	to := deployment.Address
	result.StoreTx, err = uc.client.Send(ctx, &domain.TxRequest{
		From:  account,
		To:    &to,
		Data:  storage.PackStore(value),
		Nonce: storeNonce,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", value, err)
	}

	if result.StoredValue, err = uc.retrieve(ctx, storage, account.Address, deployment.Address); err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *DeployStorage) retrieve(ctx context.Context, storage *bindings.SimpleStorage, from, at common.Address) (*big.Int, error) {
	out, err := uc.client.Call(ctx, from, at, storage.PackRetrieve())
	if err != nil {
		return nil, fmt.Errorf("failed to call retrieve: %w", err)
	}
	return storage.UnpackRetrieve(out)
}
