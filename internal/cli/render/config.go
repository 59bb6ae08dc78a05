package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	fmt.Fprintf(r.out, "🌐 Active network: %s\n", result.ActiveNetwork)
	if result.ProjectFile != "" {
		fmt.Fprintf(r.out, "📦 Project file:   %s\n", relativePath(result.ProjectFile))
	} else {
		fmt.Fprintln(r.out, "📦 Project file:   (none, using defaults)")
	}
	fmt.Fprintln(r.out)

	if !result.Exists {
		fmt.Fprintf(r.out, "No local config at %s\n", relativePath(result.ConfigPath))
		fmt.Fprintln(r.out, "Use 'scriptkit config set network <name>' to pick a default network")
		return nil
	}

	fmt.Fprintln(r.out, "📋 Local config:")
	network := result.Config.Network
	if network == "" {
		network = "(not set)"
	}
	fmt.Fprintf(r.out, "Network:   %s\n", network)
	fmt.Fprintf(r.out, "📁 config file: %s\n", relativePath(result.ConfigPath))

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", relativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNetwork:
		fmt.Fprintf(r.out, "✅ Removed network from config (was %q, falls back to default_network)\n", result.RemovedValue)
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", relativePath(result.ConfigPath))
	return nil
}
