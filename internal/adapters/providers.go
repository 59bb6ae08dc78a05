package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/scriptkit/internal/adapters/accounts"
	"github.com/trebuchet-org/scriptkit/internal/adapters/anvil"
	"github.com/trebuchet-org/scriptkit/internal/adapters/blockchain"
	"github.com/trebuchet-org/scriptkit/internal/adapters/compiler"
	internalconfig "github.com/trebuchet-org/scriptkit/internal/adapters/config"
	"github.com/trebuchet-org/scriptkit/internal/adapters/fs"
	"github.com/trebuchet-org/scriptkit/internal/adapters/interactive"
	"github.com/trebuchet-org/scriptkit/internal/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewSourceRepository,
	wire.Bind(new(usecase.SourceRepository), new(*fs.SourceRepository)),

	fs.NewArtifactStore,
	wire.Bind(new(usecase.ArtifactRepository), new(*fs.ArtifactStore)),

	fs.NewDeploymentStore,
	wire.Bind(new(usecase.DeploymentRepository), new(*fs.DeploymentStore)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// CompilerSet provides the solc installer and compiler
var CompilerSet = wire.NewSet(
	compiler.ProvideInstaller,
	compiler.NewSolc,
	wire.Bind(new(usecase.Compiler), new(*compiler.Solc)),
)

// AccountsSet provides dev accounts and the keystore
var AccountsSet = wire.NewSet(
	accounts.NewDevAccounts,
	wire.Bind(new(usecase.DevAccounts), new(*accounts.DevAccounts)),

	accounts.ProvideKeystore,
	wire.Bind(new(usecase.KeystoreRepository), new(*accounts.Keystore)),
)

// BlockchainSet provides the JSON-RPC transaction client
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
)

// AnvilSet provides the local node manager
var AnvilSet = wire.NewSet(
	anvil.NewManager,
	wire.Bind(new(usecase.AnvilManager), new(*anvil.Manager)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),

	interactive.NewPasswordPrompt,
	wire.Bind(new(usecase.PasswordProvider), new(*interactive.PasswordPrompt)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	CompilerSet,
	AccountsSet,
	BlockchainSet,
	AnvilSet,
	InteractiveSet,
	ConfigSet,
)
