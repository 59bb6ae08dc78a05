package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scriptkit/internal/app"
	"github.com/trebuchet-org/scriptkit/internal/cli/render"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage scriptkit local config",
		Long: `Manage scriptkit local config stored in .scriptkit/config.local.json

The local config picks the network used when --network is not given,
ahead of default_network from scriptkit.toml.

Available subcommands:
  config           Show current config
  config set       Set a config value
  config remove    Remove a config value

When run without subcommands, displays the current config.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
		}),
	}

	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a config value",
		Long: `Set a config value in .scriptkit/config.local.json.
Available keys: network (net)

Without a value the network is picked interactively.

Examples:
  scriptkit config set network rinkeby
  scriptkit config set network`,
		Args: cobra.RangeArgs(1, 2),
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			params := usecase.SetConfigParams{Key: args[0]}
			if len(args) == 2 {
				params.Value = args[1]
			}

			result, err := app.SetConfig.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderSet(result)
		}),
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a config value",
		Long: `Remove a config value from .scriptkit/config.local.json.
Removing network falls back to default_network.

Examples:
  scriptkit config remove network`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := app.RemoveConfig.Run(cmd.Context(), usecase.RemoveConfigParams{Key: args[0]})
			if err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderRemove(result)
		}),
	}
}
