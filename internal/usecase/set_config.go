package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key string
	// Value is picked interactively when empty
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	runtime  *config.RuntimeConfig
	store    LocalConfigStore
	networks NetworkResolver
	selector NetworkSelector
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(cfg *config.RuntimeConfig, store LocalConfigStore, networks NetworkResolver, selector NetworkSelector) *SetConfig {
	return &SetConfig{
		runtime:  cfg,
		store:    store,
		networks: networks,
		selector: selector,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key := strings.ToLower(params.Key)
	if !config.IsValidConfigKey(key) {
		return nil, unknownKeyError(params.Key)
	}
	normalizedKey := config.NormalizeConfigKey(key)

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	value := params.Value
	switch normalizedKey {
	case config.ConfigKeyNetwork:
		available := uc.networks.GetNetworks(ctx)
		if value == "" {
			if uc.runtime.NonInteractive {
				return nil, fmt.Errorf("a network name is required in non-interactive mode")
			}
			value, err = uc.selector.SelectNetwork(ctx, available, "Select network")
			if err != nil {
				return nil, err
			}
		}
		if !slices.Contains(available, value) {
			return nil, fmt.Errorf("unknown network %q, available: %s", value, strings.Join(available, ", "))
		}
		cfg.Network = value
	}

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           normalizedKey,
		Value:         value,
	}, nil
}

func unknownKeyError(key string) error {
	validKeys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string {
		if k == config.ConfigKeyNetwork {
			return string(k) + " (net)"
		}
		return string(k)
	})
	return fmt.Errorf("unknown config key: %s\nAvailable keys: %s", key, strings.Join(validKeys, ", "))
}
