package usecase

import (
	"context"

	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config        *config.LocalConfig
	ConfigPath    string
	Exists        bool
	ActiveNetwork string
	ProjectFile   string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	runtime *config.RuntimeConfig
	store   LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{
		runtime: cfg,
		store:   store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowConfigResult{
		Config:      cfg,
		ConfigPath:  uc.store.GetPath(),
		Exists:      exists,
		ProjectFile: uc.runtime.ConfigSource,
	}
	if uc.runtime.Network != nil {
		result.ActiveNetwork = uc.runtime.Network.Name
	}
	return result, nil
}
