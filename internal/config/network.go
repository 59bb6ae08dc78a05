package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	dataDir    string
	project    *config.ProjectConfig
	cache      *NetworkCache
	httpClient *http.Client
	mu         sync.RWMutex
}

// NetworkCache caches chain ID lookups
type NetworkCache struct {
	Networks  map[string]uint64 `json:"networks"` // name -> chainID
	RPCs      map[string]uint64 `json:"rpcs"`     // rpcURL -> chainID
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(dataDir string, project *config.ProjectConfig) *NetworkResolver {
	r := &NetworkResolver{
		dataDir: dataDir,
		project: project,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	r.loadCache()

	return r
}

// Names returns every known network name, sorted
func (r *NetworkResolver) Names() []string {
	names := lo.Keys(r.project.Networks)
	slices.Sort(names)
	return names
}

// Resolve looks a network up in the project configuration. It does no network
// I/O: a chain ID that is neither configured nor cached is left at 0.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	netCfg, exists := r.project.Networks[networkName]
	if !exists {
		return nil, fmt.Errorf("network '%s' not found in project [networks]", networkName)
	}
	if netCfg.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url", networkName)
	}

	chainID := netCfg.ChainID
	if chainID == 0 {
		r.mu.RLock()
		chainID = r.cache.Networks[networkName]
		r.mu.RUnlock()
	}

	explorer := netCfg.Explorer
	if explorer == "" {
		explorer = explorerURL(chainID)
	}

	return &config.Network{
		Name:        networkName,
		ChainID:     chainID,
		RPCURL:      netCfg.RPCURL,
		ForkURL:     netCfg.ForkURL,
		ExplorerURL: explorer,
		Contracts:   netCfg.Contracts,
	}, nil
}

// ResolveChainID resolves a network and fills in its chain ID, asking the RPC
// endpoint with eth_chainId when it is not configured or cached.
func (r *NetworkResolver) ResolveChainID(ctx context.Context, networkName string) (*config.Network, error) {
	network, err := r.Resolve(networkName)
	if err != nil {
		return nil, err
	}
	if network.ChainID != 0 {
		return network, nil
	}

	chainID, err := r.fetchChainID(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch chain ID for network %s: %v", domain.ErrNetworkUnavailable, networkName, err)
	}
	r.updateCache(networkName, network.RPCURL, chainID)

	network.ChainID = chainID
	if network.ExplorerURL == "" {
		network.ExplorerURL = explorerURL(chainID)
	}
	return network, nil
}

// fetchChainID fetches the chain ID from an RPC endpoint
func (r *NetworkResolver) fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	r.mu.RLock()
	if chainID, exists := r.cache.RPCs[rpcURL]; exists {
		r.mu.RUnlock()
		return chainID, nil
	}
	r.mu.RUnlock()

	requestBody := `{"jsonrpc":"2.0","method":"eth_chainId","params":[],"id":1}`

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rpcURL, strings.NewReader(requestBody))
	if err != nil {
		return 0, fmt.Errorf("failed to build RPC request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to make RPC request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var rpcResponse struct {
		Result string `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &rpcResponse); err != nil {
		return 0, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if rpcResponse.Error != nil {
		return 0, fmt.Errorf("RPC error: %s", rpcResponse.Error.Message)
	}

	if rpcResponse.Result == "" {
		return 0, fmt.Errorf("empty chain ID response")
	}

	chainIDStr := strings.TrimPrefix(rpcResponse.Result, "0x")
	chainID, err := strconv.ParseUint(chainIDStr, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse chain ID: %w", err)
	}

	return chainID, nil
}

// explorerURL returns a well-known block explorer for a chain
func explorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 4:
		return "https://rinkeby.etherscan.io"
	case 5:
		return "https://goerli.etherscan.io"
	case 42:
		return "https://kovan.etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 42161:
		return "https://arbiscan.io"
	default:
		return ""
	}
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.dataDir, "cache", "chainIds.json")
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = newNetworkCache()

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		// Cache doesn't exist yet
		return
	}

	var loaded NetworkCache
	if err := json.Unmarshal(data, &loaded); err != nil {
		return
	}
	if loaded.Networks != nil {
		r.cache.Networks = loaded.Networks
	}
	if loaded.RPCs != nil {
		r.cache.RPCs = loaded.RPCs
	}
	r.cache.UpdatedAt = loaded.UpdatedAt
}

func newNetworkCache() *NetworkCache {
	return &NetworkCache{
		Networks:  make(map[string]uint64),
		RPCs:      make(map[string]uint64),
		UpdatedAt: time.Now(),
	}
}

// updateCache updates the cache with new chain ID information
func (r *NetworkResolver) updateCache(networkName, rpcURL string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = chainID
	r.cache.RPCs[rpcURL] = chainID
	r.cache.UpdatedAt = time.Now()

	// The cache only saves round trips, a failed write is not an error
	_ = r.saveCache()
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	if err := os.MkdirAll(filepath.Dir(r.cachePath()), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.cachePath(), data, 0644)
}
