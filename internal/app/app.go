package app

import (
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Progress usecase.ProgressSink

	// Use cases
	CompileContracts *usecase.CompileContracts
	ResolveAccount   *usecase.ResolveAccount
	ResolveContract  *usecase.ResolveContract
	DeployLottery    *usecase.DeployLottery
	LotteryActions   *usecase.LotteryActions
	DeployStorage    *usecase.DeployStorage
	ListDeployments  *usecase.ListDeployments
	ManageAccounts   *usecase.ManageAccounts
	ManageAnvil      *usecase.ManageAnvil
	ListNetworks     *usecase.ListNetworks
	ShowConfig       *usecase.ShowConfig
	SetConfig        *usecase.SetConfig
	RemoveConfig     *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	progress usecase.ProgressSink,
	compileContracts *usecase.CompileContracts,
	resolveAccount *usecase.ResolveAccount,
	resolveContract *usecase.ResolveContract,
	deployLottery *usecase.DeployLottery,
	lotteryActions *usecase.LotteryActions,
	deployStorage *usecase.DeployStorage,
	listDeployments *usecase.ListDeployments,
	manageAccounts *usecase.ManageAccounts,
	manageAnvil *usecase.ManageAnvil,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:           cfg,
		Progress:         progress,
		CompileContracts: compileContracts,
		ResolveAccount:   resolveAccount,
		ResolveContract:  resolveContract,
		DeployLottery:    deployLottery,
		LotteryActions:   lotteryActions,
		DeployStorage:    deployStorage,
		ListDeployments:  listDeployments,
		ManageAccounts:   manageAccounts,
		ManageAnvil:      manageAnvil,
		ListNetworks:     listNetworks,
		ShowConfig:       showConfig,
		SetConfig:        setConfig,
		RemoveConfig:     removeConfig,
	}, nil
}
