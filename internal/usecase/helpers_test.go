package usecase_test

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scriptkit/internal/adapters/accounts"
	"github.com/trebuchet-org/scriptkit/internal/adapters/blockchain/simtest"
	"github.com/trebuchet-org/scriptkit/internal/adapters/fs"
	appconfig "github.com/trebuchet-org/scriptkit/internal/config"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

var (
	addr0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	addr1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	addr2 = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

func (m *MockProgressSink) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	stages := make([]string, 0, len(m.events))
	for _, e := range m.events {
		stages = append(stages, e.Stage)
	}
	return stages
}

// MockCompiler is a mock implementation of Compiler
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Compile(ctx context.Context, req domain.CompileRequest) (*domain.CompileResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompileResult), args.Error(1)
}

// MockKeystore is a mock implementation of KeystoreRepository
type MockKeystore struct {
	mock.Mock
}

func (m *MockKeystore) List(ctx context.Context) ([]domain.KeystoreEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KeystoreEntry), args.Error(1)
}

func (m *MockKeystore) Get(ctx context.Context, id string) (*domain.KeystoreEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KeystoreEntry), args.Error(1)
}

func (m *MockKeystore) Load(ctx context.Context, id string, password string) (*domain.Account, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockKeystore) Save(ctx context.Context, id string, key *ecdsa.PrivateKey, password string) (*domain.KeystoreEntry, error) {
	args := m.Called(ctx, id, key, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KeystoreEntry), args.Error(1)
}

func (m *MockKeystore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPasswordProvider is a mock implementation of PasswordProvider
type MockPasswordProvider struct {
	mock.Mock
}

func (m *MockPasswordProvider) Password(ctx context.Context, id string, confirm bool) (string, error) {
	args := m.Called(ctx, id, confirm)
	return args.String(0), args.Error(1)
}

// MockChainClient is a mock implementation of ChainClient
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) ChainID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainClient) PendingNonce(ctx context.Context, account common.Address) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChainClient) CodeAt(ctx context.Context, contract common.Address) ([]byte, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChainClient) Call(ctx context.Context, from common.Address, to common.Address, data []byte) ([]byte, error) {
	args := m.Called(ctx, from, to, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChainClient) Send(ctx context.Context, req *domain.TxRequest) (*domain.TxResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TxResult), args.Error(1)
}

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *domain.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, chainID uint64) ([]*domain.Deployment, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) LatestDeployment(ctx context.Context, chainID uint64, contract string) (*domain.Deployment, error) {
	args := m.Called(ctx, chainID, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deployment), args.Error(1)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	args := m.Called(ctx, networkName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// newRuntimeConfig builds a config with project defaults rooted in a temp dir
func newRuntimeConfig(t *testing.T, network string) *config.RuntimeConfig {
	t.Helper()

	root := t.TempDir()
	project, _, err := appconfig.LoadProject(root)
	require.NoError(t, err)

	return &config.RuntimeConfig{
		ProjectRoot: root,
		DataDir:     filepath.Join(root, appconfig.DataDirName),
		Project:     project,
		Network: &config.Network{
			Name:      network,
			ChainID:   1337,
			Contracts: map[string]string{},
		},
	}
}

// writeSource writes a project-relative source file
func writeSource(t *testing.T, cfg *config.RuntimeConfig, path, content string) {
	t.Helper()
	full := filepath.Join(cfg.ProjectRoot, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

// storageArtifact returns an artifact whose bytecode is the simulated storage contract
func storageArtifact(name string) *domain.Artifact {
	return &domain.Artifact{
		Name:       name,
		SourcePath: "contracts/" + name + ".sol",
		ABI:        json.RawMessage(simtest.StorageABI),
		Bytecode:   simtest.StorageBytecode,
	}
}

func compileResult(artifacts ...*domain.Artifact) *domain.CompileResult {
	result := &domain.CompileResult{
		Version:   "0.6.6+commit.6c089d02",
		Raw:       json.RawMessage(`{"contracts":{},"sources":{}}`),
		Artifacts: make(map[string]*domain.Artifact),
	}
	for _, a := range artifacts {
		result.Artifacts[a.Name] = a
	}
	return result
}

// testEnv wires the use cases against a simulated chain and temp project
type testEnv struct {
	cfg         *config.RuntimeConfig
	chain       *simtest.Chain
	compiler    *MockCompiler
	keystore    *MockKeystore
	passwords   *MockPasswordProvider
	progress    *MockProgressSink
	sources     *fs.SourceRepository
	artifacts   *fs.ArtifactStore
	deployments *fs.DeploymentStore

	accounts  *usecase.ResolveAccount
	compile   *usecase.CompileContracts
	deployer  *usecase.ContractDeployer
	contracts *usecase.ResolveContract
}

func newTestEnv(t *testing.T, network string) *testEnv {
	t.Helper()

	cfg := newRuntimeConfig(t, network)
	env := &testEnv{
		cfg:         cfg,
		chain:       simtest.New(t),
		compiler:    &MockCompiler{},
		keystore:    &MockKeystore{},
		passwords:   &MockPasswordProvider{},
		progress:    &MockProgressSink{},
		sources:     fs.NewSourceRepository(cfg),
		artifacts:   fs.NewArtifactStore(cfg),
		deployments: fs.NewDeploymentStore(cfg),
	}
	env.rewire(t)
	return env
}

// rewire rebuilds the use cases, e.g. after changing cfg or the compiler
func (e *testEnv) rewire(t *testing.T) {
	t.Helper()
	log := discardLogger()
	dev := accounts.NewDevAccounts(e.cfg)

	e.accounts = usecase.NewResolveAccount(e.cfg, dev, e.keystore, e.passwords, log)
	e.compile = usecase.NewCompileContracts(e.cfg, e.sources, e.compiler, e.artifacts, e.progress, log)
	e.deployer = usecase.NewContractDeployer(e.cfg, e.chain.Client, e.deployments, log)
	e.contracts = usecase.NewResolveContract(e.cfg, e.accounts, e.compile, e.deployer, e.progress, log)
}
