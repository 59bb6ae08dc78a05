package config

import (
	"context"

	"github.com/trebuchet-org/scriptkit/internal/config"
	domainconfig "github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(_ context.Context) []string {
	return a.resolver.Names()
}

// ResolveNetwork resolves a network name to its configuration, asking the
// node for its chain ID when it is not configured
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	return a.resolver.ResolveChainID(ctx, networkName)
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
