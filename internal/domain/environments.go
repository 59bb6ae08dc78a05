package domain

import "slices"

// EnvironmentKind classifies a network name
type EnvironmentKind string

const (
	EnvironmentLocal  EnvironmentKind = "local"
	EnvironmentForked EnvironmentKind = "forked"
	EnvironmentLive   EnvironmentKind = "live"
)

// Network names that run against a throwaway local chain.
var LocalBlockchainEnvironments = []string{"development", "ganache-local"}

// Network names that run against a local fork of a live chain.
var ForkedLocalEnvironments = []string{"mainnet-fork", "mainnet-fork-dev"}

// IsLocalBlockchain reports whether mocks are deployed on this network
func IsLocalBlockchain(network string) bool {
	return slices.Contains(LocalBlockchainEnvironments, network)
}

// IsForkedLocal reports whether the network is a local fork of a live chain
func IsForkedLocal(network string) bool {
	return slices.Contains(ForkedLocalEnvironments, network)
}

// UsesDevAccounts reports whether the pre-funded dev accounts sign on this network
func UsesDevAccounts(network string) bool {
	return IsLocalBlockchain(network) || IsForkedLocal(network)
}

// ClassifyNetwork returns the environment kind of a network name
func ClassifyNetwork(network string) EnvironmentKind {
	switch {
	case IsLocalBlockchain(network):
		return EnvironmentLocal
	case IsForkedLocal(network):
		return EnvironmentForked
	default:
		return EnvironmentLive
	}
}
