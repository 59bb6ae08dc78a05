//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/scriptkit/internal/adapters"
	"github.com/trebuchet-org/scriptkit/internal/config"
	"github.com/trebuchet-org/scriptkit/internal/logging"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewCompileContracts,
		usecase.NewResolveAccount,
		usecase.NewContractDeployer,
		usecase.NewResolveContract,
		usecase.NewDeployLottery,
		usecase.NewLotteryActions,
		usecase.NewDeployStorage,
		usecase.NewListDeployments,
		usecase.NewManageAccounts,
		usecase.NewManageAnvil,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
