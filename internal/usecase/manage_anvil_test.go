package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// MockAnvilManager is a mock implementation of AnvilManager
type MockAnvilManager struct {
	mock.Mock
}

func (m *MockAnvilManager) Start(ctx context.Context, instance *domain.AnvilInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockAnvilManager) Stop(ctx context.Context, instance *domain.AnvilInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockAnvilManager) GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	args := m.Called(ctx, instance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnvilStatus), args.Error(1)
}

func (m *MockAnvilManager) StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error {
	args := m.Called(ctx, instance, writer)
	return args.Error(0)
}

func newManageAnvil(t *testing.T) (*usecase.ManageAnvil, *MockAnvilManager, *MockNetworkResolver, *MockProgressSink) {
	t.Helper()
	cfg := newRuntimeConfig(t, "development")
	manager := &MockAnvilManager{}
	networks := &MockNetworkResolver{}
	progress := &MockProgressSink{}
	return usecase.NewManageAnvil(cfg, manager, networks, progress), manager, networks, progress
}

func TestManageAnvil_Start(t *testing.T) {
	ctx := context.Background()
	uc, manager, _, progress := newManageAnvil(t)

	isDev := mock.MatchedBy(func(i *domain.AnvilInstance) bool {
		return i.Name == "development" && i.Port == "8545" && i.ChainID == "31337" && i.Accounts == 10 && i.ForkURL == ""
	})
	manager.On("GetStatus", ctx, isDev).Return(&domain.AnvilStatus{Running: false}, nil).Once()
	manager.On("Start", ctx, isDev).Return(nil)
	manager.On("GetStatus", ctx, isDev).Return(&domain.AnvilStatus{Running: true, PID: 4242, RPCHealthy: true}, nil).Once()

	result, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "start"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 4242, result.Status.PID)
	assert.Contains(t, result.Message, "PID 4242")
	require.Len(t, progress.infos, 1)
	assert.Contains(t, progress.infos[0], "Starting local anvil node 'development' on port 8545")
	manager.AssertExpectations(t)
}

func TestManageAnvil_StartAlreadyRunning(t *testing.T) {
	ctx := context.Background()
	uc, manager, _, _ := newManageAnvil(t)
	manager.On("GetStatus", ctx, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 7}, nil)

	_, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "start"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running (PID 7)")
	manager.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestManageAnvil_Fork(t *testing.T) {
	ctx := context.Background()

	t.Run("forks the network rpc", func(t *testing.T) {
		uc, manager, networks, _ := newManageAnvil(t)
		networks.On("ResolveNetwork", ctx, "mainnet-fork").Return(&config.Network{
			Name:    "mainnet-fork",
			RPCURL:  "http://127.0.0.1:8545",
			ForkURL: "https://eth-mainnet.example/v2/key",
		}, nil)

		isFork := mock.MatchedBy(func(i *domain.AnvilInstance) bool {
			return i.Name == "mainnet-fork" && i.ForkURL == "https://eth-mainnet.example/v2/key" && i.ChainID == ""
		})
		manager.On("GetStatus", ctx, isFork).Return(&domain.AnvilStatus{Running: true, PID: 9}, nil)

		result, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "status", Fork: "mainnet-fork"})
		require.NoError(t, err)
		assert.Equal(t, "mainnet-fork", result.Instance.Name)
		manager.AssertExpectations(t)
	})

	t.Run("local networks cannot be forked", func(t *testing.T) {
		uc, _, networks, _ := newManageAnvil(t)
		networks.On("ResolveNetwork", ctx, "ganache-local").Return(&config.Network{Name: "ganache-local", RPCURL: "http://127.0.0.1:7545"}, nil)

		_, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "start", Fork: "ganache-local"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot fork local network")
	})

	t.Run("unknown network", func(t *testing.T) {
		uc, _, networks, _ := newManageAnvil(t)
		networks.On("ResolveNetwork", ctx, "nope").Return(nil, errors.New("network 'nope' not found"))

		_, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "start", Fork: "nope"})
		assert.EqualError(t, err, "network 'nope' not found")
	})
}

func TestManageAnvil_Stop(t *testing.T) {
	ctx := context.Background()

	t.Run("not running", func(t *testing.T) {
		uc, manager, _, _ := newManageAnvil(t)
		manager.On("GetStatus", ctx, mock.Anything).Return(&domain.AnvilStatus{Running: false}, nil)

		result, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "stop"})
		require.NoError(t, err)
		assert.Contains(t, result.Message, "is not running")
		manager.AssertNotCalled(t, "Stop", mock.Anything, mock.Anything)
	})

	t.Run("running", func(t *testing.T) {
		uc, manager, _, _ := newManageAnvil(t)
		manager.On("GetStatus", ctx, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 3}, nil)
		manager.On("Stop", ctx, mock.Anything).Return(nil)

		result, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "stop"})
		require.NoError(t, err)
		assert.Equal(t, "Anvil stopped", result.Message)
		manager.AssertExpectations(t)
	})
}

func TestManageAnvil_Restart(t *testing.T) {
	ctx := context.Background()
	uc, manager, _, _ := newManageAnvil(t)
	manager.On("GetStatus", ctx, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 3}, nil).Once()
	manager.On("Stop", ctx, mock.Anything).Return(nil)
	manager.On("Start", ctx, mock.Anything).Return(nil)
	manager.On("GetStatus", ctx, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 4}, nil).Once()

	result, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "restart"})
	require.NoError(t, err)
	assert.Equal(t, "restart", result.Operation)
	assert.Equal(t, 4, result.Status.PID)
	manager.AssertExpectations(t)
}

func TestManageAnvil_StreamLogsAndUnknown(t *testing.T) {
	ctx := context.Background()
	uc, manager, _, _ := newManageAnvil(t)
	var buf bytes.Buffer
	manager.On("StreamLogs", ctx, mock.Anything, &buf).Return(nil)

	require.NoError(t, uc.StreamLogs(ctx, usecase.ManageAnvilParams{}, &buf))
	manager.AssertExpectations(t)

	_, err := uc.Execute(ctx, usecase.ManageAnvilParams{Operation: "explode"})
	assert.EqualError(t, err, "unknown operation: explode")
}
