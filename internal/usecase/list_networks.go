package usecase

import (
	"context"
	"sync"

	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	Kind    domain.EnvironmentKind
	ChainID uint64
	RPCURL  string
	Active  bool
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
	}
}

// Run resolves every configured network in parallel. A network that
// cannot be resolved is reported with its error instead of failing the list.
func (uc *ListNetworks) Run(ctx context.Context, _ ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks(ctx)
	statuses := make([]NetworkStatus, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		statuses[i] = NetworkStatus{
			Name:   name,
			Kind:   domain.ClassifyNetwork(name),
			Active: uc.config.Network != nil && uc.config.Network.Name == name,
		}

		wg.Add(1)
		go func(status *NetworkStatus) {
			defer wg.Done()
			info, err := uc.resolver.ResolveNetwork(ctx, status.Name)
			if err != nil {
				status.Error = err
				return
			}
			status.ChainID = info.ChainID
			status.RPCURL = info.RPCURL
		}(&statuses[i])
	}
	wg.Wait()

	return &ListNetworksResult{Networks: statuses}, nil
}
