package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scriptkit/internal/config"
	domainconfig "github.com/trebuchet-org/scriptkit/internal/domain/config"
)

func TestNetworkResolverAdapter(t *testing.T) {
	project := &domainconfig.ProjectConfig{
		Networks: map[string]domainconfig.NetworkConfig{
			"rinkeby":     {RPCURL: "https://rinkeby.example", ChainID: 4},
			"development": {RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
		},
	}
	adapter := NewNetworkResolverAdapter(config.NewNetworkResolver(t.TempDir(), project))
	ctx := context.Background()

	assert.Equal(t, []string{"development", "rinkeby"}, adapter.GetNetworks(ctx))

	network, err := adapter.ResolveNetwork(ctx, "rinkeby")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), network.ChainID)
	assert.Equal(t, "https://rinkeby.etherscan.io", network.ExplorerURL)

	_, err = adapter.ResolveNetwork(ctx, "kovan")
	assert.Error(t, err)
}
