package usecase

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// ManageAnvil handles anvil node management operations
type ManageAnvil struct {
	config       *config.RuntimeConfig
	anvilManager AnvilManager
	networks     NetworkResolver
	progress     ProgressSink
}

// NewManageAnvil creates a new anvil management use case
func NewManageAnvil(cfg *config.RuntimeConfig, anvilManager AnvilManager, networks NetworkResolver, progress ProgressSink) *ManageAnvil {
	return &ManageAnvil{
		config:       cfg,
		anvilManager: anvilManager,
		networks:     networks,
		progress:     progress,
	}
}

// ManageAnvilParams contains parameters for anvil operations
type ManageAnvilParams struct {
	Operation string // start, stop, restart, status, logs
	// Fork names a configured network whose RPC the node forks
	Fork string
}

// ManageAnvilResult contains the result of anvil operations
type ManageAnvilResult struct {
	Operation string
	Instance  *domain.AnvilInstance
	Status    *domain.AnvilStatus
	Success   bool
	Message   string
}

// Execute performs the anvil management operation
func (m *ManageAnvil) Execute(ctx context.Context, params ManageAnvilParams) (*ManageAnvilResult, error) {
	instance, err := m.instance(ctx, params.Fork)
	if err != nil {
		return nil, err
	}

	switch params.Operation {
	case "start":
		return m.start(ctx, instance)
	case "stop":
		return m.stop(ctx, instance)
	case "restart":
		return m.restart(ctx, instance)
	case "status":
		return m.status(ctx, instance)
	case "logs":
		return m.status(ctx, instance)
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

// StreamLogs follows the node log until ctx is done
func (m *ManageAnvil) StreamLogs(ctx context.Context, params ManageAnvilParams, w io.Writer) error {
	instance, err := m.instance(ctx, params.Fork)
	if err != nil {
		return err
	}
	return m.anvilManager.StreamLogs(ctx, instance, w)
}

// instance describes the development node, or a fork of the named network
func (m *ManageAnvil) instance(ctx context.Context, fork string) (*domain.AnvilInstance, error) {
	dev := m.config.Project.Dev
	instance := &domain.AnvilInstance{
		Name:     "development",
		Host:     dev.Host,
		Port:     dev.Port,
		ChainID:  strconv.FormatUint(dev.ChainID, 10),
		Mnemonic: dev.Mnemonic,
		Accounts: dev.Accounts,
	}

	if fork == "" {
		return instance, nil
	}

	network, err := m.networks.ResolveNetwork(ctx, fork)
	if err != nil {
		return nil, err
	}
	forkURL := network.ForkURL
	if forkURL == "" {
		forkURL = network.RPCURL
	}
	if domain.ClassifyNetwork(fork) == domain.EnvironmentLocal {
		return nil, fmt.Errorf("cannot fork local network %s", fork)
	}

	instance.Name = fork
	instance.ForkURL = forkURL
	// a fork keeps the chain id of the forked network
	instance.ChainID = ""
	return instance, nil
}

func (m *ManageAnvil) start(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	m.progress.Info(fmt.Sprintf("🔨 Starting local anvil node '%s' on port %s...", instance.Name, instance.Port))

	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		return nil, fmt.Errorf("anvil '%s' is already running (PID %d)", instance.Name, status.PID)
	}

	if err := m.anvilManager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	status, err = m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageAnvilResult{
		Operation: "start",
		Instance:  instance,
		Status:    status,
		Success:   true,
		Message:   fmt.Sprintf("Anvil '%s' started with PID %d", instance.Name, status.PID),
	}, nil
}

func (m *ManageAnvil) stop(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	m.progress.Info(fmt.Sprintf("🛑 Stopping anvil '%s'...", instance.Name))

	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil || !status.Running {
		return &ManageAnvilResult{
			Operation: "stop",
			Instance:  instance,
			Success:   true,
			Message:   fmt.Sprintf("Anvil '%s' is not running", instance.Name),
		}, nil
	}

	if err := m.anvilManager.Stop(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to stop anvil: %w", err)
	}

	return &ManageAnvilResult{
		Operation: "stop",
		Instance:  instance,
		Success:   true,
		Message:   "Anvil stopped",
	}, nil
}

func (m *ManageAnvil) restart(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	m.progress.Info(fmt.Sprintf("🔄 Restarting anvil '%s'...", instance.Name))

	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		if err := m.anvilManager.Stop(ctx, instance); err != nil {
			return nil, fmt.Errorf("failed to stop anvil: %w", err)
		}
	}

	if err := m.anvilManager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	status, err = m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after restart: %w", err)
	}

	return &ManageAnvilResult{
		Operation: "restart",
		Instance:  instance,
		Status:    status,
		Success:   true,
		Message:   fmt.Sprintf("Anvil '%s' restarted with PID %d", instance.Name, status.PID),
	}, nil
}

func (m *ManageAnvil) status(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return &ManageAnvilResult{
		Operation: "status",
		Instance:  instance,
		Status:    status,
		Success:   true,
	}, nil
}
