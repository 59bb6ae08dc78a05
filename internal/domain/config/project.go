package config

import "time"

// ProjectConfig is the scriptkit.toml / scriptkit.yaml project file
type ProjectConfig struct {
	DefaultNetwork string                   `toml:"default_network" yaml:"default_network"`
	Dotenv         string                   `toml:"dotenv" yaml:"dotenv"`
	Compiler       CompilerConfig           `toml:"compiler" yaml:"compiler"`
	Dev            DevConfig                `toml:"dev" yaml:"dev"`
	Wallets        WalletsConfig            `toml:"wallets" yaml:"wallets"`
	Networks       map[string]NetworkConfig `toml:"networks" yaml:"networks"`
	Storage        StorageConfig            `toml:"storage" yaml:"storage"`
	ReceiptTimeout Duration                 `toml:"receipt_timeout" yaml:"receipt_timeout"`
}

// CompilerConfig configures solc
type CompilerConfig struct {
	SolcVersion   string `toml:"solc_version" yaml:"solc_version"`
	ContractsDir  string `toml:"contracts_dir" yaml:"contracts_dir"`
	BuildDir      string `toml:"build_dir" yaml:"build_dir"`
	EVMVersion    string `toml:"evm_version" yaml:"evm_version"`
	Optimizer     bool   `toml:"optimizer" yaml:"optimizer"`
	OptimizerRuns int    `toml:"optimizer_runs" yaml:"optimizer_runs"`
}

// DevConfig configures the local development chain and its accounts
type DevConfig struct {
	Mnemonic       string `toml:"mnemonic" yaml:"mnemonic"`
	Accounts       int    `toml:"accounts" yaml:"accounts"`
	DerivationPath string `toml:"derivation_path" yaml:"derivation_path"`
	Host           string `toml:"host" yaml:"host"`
	Port           string `toml:"port" yaml:"port"`
	ChainID        uint64 `toml:"chain_id" yaml:"chain_id"`
}

// WalletsConfig holds signing credentials for live networks
type WalletsConfig struct {
	FromKey   string `toml:"from_key" yaml:"from_key"` //nolint:gosec // holds env var reference, not a literal secret
	AccountID string `toml:"account_id" yaml:"account_id"`
}

// NetworkConfig is a [networks.<name>] section
type NetworkConfig struct {
	RPCURL    string            `toml:"rpc_url" yaml:"rpc_url"`
	ChainID   uint64            `toml:"chain_id" yaml:"chain_id"`
	ForkURL   string            `toml:"fork_url" yaml:"fork_url"`
	Explorer  string            `toml:"explorer" yaml:"explorer"`
	Contracts map[string]string `toml:"contracts" yaml:"contracts"`
}

// StorageConfig configures the SimpleStorage deploy-and-call flow
type StorageConfig struct {
	Source      string `toml:"source" yaml:"source"`
	Contract    string `toml:"contract" yaml:"contract"`
	SolcVersion string `toml:"solc_version" yaml:"solc_version"`
	Value       int64  `toml:"value" yaml:"value"`
	Nonce       string `toml:"nonce" yaml:"nonce"`
}

// Duration decodes "2m"-style strings from TOML and YAML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
