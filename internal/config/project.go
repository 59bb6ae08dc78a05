package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// Project file names, in lookup order
var ProjectFileNames = []string{"scriptkit.toml", "scriptkit.yaml", "scriptkit.yml"}

// Defaults applied to fields the project file leaves empty
const (
	DefaultNetwork        = "development"
	DefaultSolcVersion    = "0.6.6"
	DefaultContractsDir   = "contracts"
	DefaultBuildDir       = "build"
	DefaultMnemonic       = "test test test test test test test test test test test junk"
	DefaultDevAccounts    = 10
	DefaultDerivationPath = "m/44'/60'/0'/0"
	DefaultDevHost        = "127.0.0.1"
	DefaultDevPort        = "8545"
	DefaultDevChainID     = 31337
	DefaultGanachePort    = "7545"
	DefaultGanacheChainID = 1337
	DefaultReceiptTimeout = 2 * time.Minute

	DefaultStorageSource      = "contracts/SimpleStorage.sol"
	DefaultStorageContract    = "SimpleStorage"
	DefaultStorageSolcVersion = "0.6.0"
	DefaultStorageValue       = 15
)

// findProjectFile returns the first project file present in dir
func findProjectFile(dir string) (string, bool) {
	for _, name := range ProjectFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// LoadProject reads the project file under projectRoot. A missing file yields
// the defaults and an empty source path.
func LoadProject(projectRoot string) (*config.ProjectConfig, string, error) {
	cfg := &config.ProjectConfig{}

	path, ok := findProjectFile(projectRoot)
	if ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		if err := decodeProject(path, data, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	loadDotenv(projectRoot, cfg.Dotenv)
	expandProject(cfg)
	applyDefaults(cfg)

	return cfg, path, nil
}

func decodeProject(path string, data []byte, cfg *config.ProjectConfig) error {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	}
}

// loadDotenv loads the configured dotenv file and .env.local. Variables already
// set in the process environment win.
func loadDotenv(projectRoot, dotenv string) {
	if dotenv == "" {
		dotenv = ".env"
	}
	envFiles := []string{
		filepath.Join(projectRoot, dotenv),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

func expandProject(cfg *config.ProjectConfig) {
	cfg.DefaultNetwork = os.ExpandEnv(cfg.DefaultNetwork)
	cfg.Compiler.SolcVersion = os.ExpandEnv(cfg.Compiler.SolcVersion)
	cfg.Dev.Mnemonic = os.ExpandEnv(cfg.Dev.Mnemonic)
	cfg.Wallets.FromKey = os.ExpandEnv(cfg.Wallets.FromKey)
	cfg.Wallets.AccountID = os.ExpandEnv(cfg.Wallets.AccountID)
	cfg.Storage.Source = os.ExpandEnv(cfg.Storage.Source)

	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ForkURL = os.ExpandEnv(network.ForkURL)
		network.Explorer = os.ExpandEnv(network.Explorer)
		for contract, address := range network.Contracts {
			network.Contracts[contract] = os.ExpandEnv(address)
		}
		cfg.Networks[name] = network
	}
}

func applyDefaults(cfg *config.ProjectConfig) {
	if cfg.DefaultNetwork == "" {
		cfg.DefaultNetwork = DefaultNetwork
	}

	if cfg.Compiler.SolcVersion == "" {
		cfg.Compiler.SolcVersion = DefaultSolcVersion
	}
	if cfg.Compiler.ContractsDir == "" {
		cfg.Compiler.ContractsDir = DefaultContractsDir
	}
	if cfg.Compiler.BuildDir == "" {
		cfg.Compiler.BuildDir = DefaultBuildDir
	}
	if cfg.Compiler.Optimizer && cfg.Compiler.OptimizerRuns == 0 {
		cfg.Compiler.OptimizerRuns = 200
	}

	if cfg.Dev.Mnemonic == "" {
		cfg.Dev.Mnemonic = DefaultMnemonic
	}
	if cfg.Dev.Accounts <= 0 {
		cfg.Dev.Accounts = DefaultDevAccounts
	}
	if cfg.Dev.DerivationPath == "" {
		cfg.Dev.DerivationPath = DefaultDerivationPath
	}
	if cfg.Dev.Host == "" {
		cfg.Dev.Host = DefaultDevHost
	}
	if cfg.Dev.Port == "" {
		cfg.Dev.Port = DefaultDevPort
	}
	if cfg.Dev.ChainID == 0 {
		cfg.Dev.ChainID = DefaultDevChainID
	}

	if cfg.Storage.Source == "" {
		cfg.Storage.Source = DefaultStorageSource
	}
	if cfg.Storage.Contract == "" {
		cfg.Storage.Contract = DefaultStorageContract
	}
	if cfg.Storage.SolcVersion == "" {
		cfg.Storage.SolcVersion = DefaultStorageSolcVersion
	}
	if cfg.Storage.Value == 0 {
		cfg.Storage.Value = DefaultStorageValue
	}
	if cfg.Storage.Nonce == "" {
		cfg.Storage.Nonce = "requery"
	}

	if cfg.ReceiptTimeout.Duration == 0 {
		cfg.ReceiptTimeout.Duration = DefaultReceiptTimeout
	}

	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	for name, builtin := range builtinNetworks(cfg.Dev) {
		network, exists := cfg.Networks[name]
		if !exists {
			cfg.Networks[name] = builtin
			continue
		}
		if network.RPCURL == "" {
			network.RPCURL = builtin.RPCURL
		}
		if network.ChainID == 0 {
			network.ChainID = builtin.ChainID
		}
		cfg.Networks[name] = network
	}
}

// builtinNetworks are the local networks available without configuration
func builtinNetworks(dev config.DevConfig) map[string]config.NetworkConfig {
	return map[string]config.NetworkConfig{
		"development": {
			RPCURL:  fmt.Sprintf("http://%s:%s", dev.Host, dev.Port),
			ChainID: dev.ChainID,
		},
		"ganache-local": {
			RPCURL:  fmt.Sprintf("http://%s:%s", DefaultDevHost, DefaultGanachePort),
			ChainID: DefaultGanacheChainID,
		},
	}
}
