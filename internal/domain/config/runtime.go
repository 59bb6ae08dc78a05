package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Network is the active network, always resolved
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// ConfigSource is the project file the settings were read from
	ConfigSource string

	Project *ProjectConfig
}

// Network represents network configuration
type Network struct {
	Name        string            `json:"name"`
	ChainID     uint64            `json:"chainId"`
	RPCURL      string            `json:"rpcUrl"`
	ForkURL     string            `json:"forkUrl,omitempty"`
	ExplorerURL string            `json:"explorerUrl,omitempty"`
	Contracts   map[string]string `json:"contracts,omitempty"`
}
