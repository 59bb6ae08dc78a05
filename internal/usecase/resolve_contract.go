package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/bindings"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// mockBinding knows how to build the constructor arguments and ABI of a mock type
type mockBinding struct {
	abi             func() *abi.ABI
	constructorArgs func() []byte
}

var mockBindings = map[string]mockBinding{
	domain.MockV3AggregatorContract: {
		abi: func() *abi.ABI { return bindings.NewMockV3Aggregator().ABI() },
		constructorArgs: func() []byte {
			return bindings.NewMockV3Aggregator().PackConstructor(domain.DefaultMockDecimals, domain.DefaultMockInitialValue())
		},
	},
}

// ResolveContract maps symbolic contract names to usable contract handles.
// On local chains the matching mock is deployed once per process.
type ResolveContract struct {
	config   *config.RuntimeConfig
	accounts *ResolveAccount
	compile  *CompileContracts
	deployer *ContractDeployer
	progress ProgressSink
	log      *slog.Logger

	mu    sync.Mutex
	mocks map[string]*domain.ContractHandle // mock type -> latest deployed instance
}

// NewResolveContract creates a new ResolveContract use case
func NewResolveContract(
	cfg *config.RuntimeConfig,
	accounts *ResolveAccount,
	compile *CompileContracts,
	deployer *ContractDeployer,
	progress ProgressSink,
	log *slog.Logger,
) *ResolveContract {
	return &ResolveContract{
		config:   cfg,
		accounts: accounts,
		compile:  compile,
		deployer: deployer,
		progress: progress,
		log:      log.With("component", "ResolveContract"),
		mocks:    make(map[string]*domain.ContractHandle),
	}
}

// Run resolves name on the active network
func (uc *ResolveContract) Run(ctx context.Context, name string) (*domain.ContractHandle, error) {
	mockType, ok := domain.ContractToMock[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownContract, name)
	}
	binding, ok := mockBindings[mockType]
	if !ok {
		return nil, fmt.Errorf("%w: no binding for mock type %s", domain.ErrUnknownContract, mockType)
	}

	network := uc.config.Network
	if domain.IsLocalBlockchain(network.Name) {
		return uc.localMock(ctx, name, mockType, binding)
	}

	raw, ok := network.Contracts[name]
	if !ok || raw == "" {
		return nil, fmt.Errorf("%w: %s on network %s (set networks.%s.contracts.%s)",
			domain.ErrMissingContractAddress, name, network.Name, network.Name, name)
	}
	if !common.IsHexAddress(raw) {
		return nil, fmt.Errorf("invalid address %q for %s on network %s", raw, name, network.Name)
	}

	return &domain.ContractHandle{
		Name:    name,
		Type:    mockType,
		Address: common.HexToAddress(raw),
		ABI:     binding.abi(),
	}, nil
}

func (uc *ResolveContract) localMock(ctx context.Context, name, mockType string, binding mockBinding) (*domain.ContractHandle, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if handle, ok := uc.mocks[mockType]; ok {
		return uc.handleFor(name, handle), nil
	}

	handle, err := uc.deployMock(ctx, mockType, binding)
	if err != nil {
		return nil, err
	}
	uc.mocks[mockType] = handle

	return uc.handleFor(name, handle), nil
}

// handleFor copies a cached mock handle under the requested name
func (uc *ResolveContract) handleFor(name string, mock *domain.ContractHandle) *domain.ContractHandle {
	handle := *mock
	handle.Name = name
	return &handle
}

func (uc *ResolveContract) deployMock(ctx context.Context, mockType string, binding mockBinding) (*domain.ContractHandle, error) {
	uc.progress.Info(fmt.Sprintf("The active network is %s", uc.config.Network.Name))
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "mocks",
		Message: fmt.Sprintf("Deploying %s mock", mockType),
		Spinner: true,
	})

	account, err := uc.accounts.Default(ctx)
	if err != nil {
		return nil, err
	}

	artifact, err := uc.compile.Artifact(ctx, mockType)
	if err != nil {
		return nil, err
	}

	deployment, _, err := uc.deployer.Deploy(ctx, DeployRequest{
		From:            account,
		Artifact:        artifact,
		ConstructorArgs: binding.constructorArgs(),
		Mock:            true,
	})
	if err != nil {
		return nil, err
	}

	uc.progress.Info("Mocks deployed!")

	return &domain.ContractHandle{
		Type:    mockType,
		Address: deployment.Address,
		ABI:     binding.abi(),
		Mock:    true,
	}, nil
}
