package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scriptkit/internal/app"
	"github.com/trebuchet-org/scriptkit/internal/cli/render"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// NewDevCmd creates the dev command with subcommands
func NewDevCmd() *cobra.Command {
	var fork string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Manage the local anvil node",
		Long: `Manage a local anvil node for the development network, seeded with the
configured dev mnemonic.

With --fork <network> the node forks that network's RPC (fork_url, or rpc_url
when unset) and runs as an instance named after the network.`,
	}
	cmd.PersistentFlags().StringVar(&fork, "fork", "", "Fork the named network instead of running a fresh chain")

	for _, sub := range []struct {
		use, short string
	}{
		{"start", "Start the local anvil node"},
		{"stop", "Stop the local anvil node"},
		{"restart", "Restart the local anvil node"},
		{"status", "Show anvil status"},
	} {
		operation := sub.use
		cmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
				return runAnvilCommand(cmd, app, operation, fork)
			}),
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "logs",
		Short: "Follow the anvil log",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			params := usecase.ManageAnvilParams{Operation: "status", Fork: fork}
			result, err := app.ManageAnvil.Execute(cmd.Context(), params)
			if err != nil {
				return err
			}

			stopProgress(app)
			if err := render.NewAnvilRenderer(cmd.OutOrStdout()).RenderLogsHeader(result); err != nil {
				return err
			}
			return app.ManageAnvil.StreamLogs(cmd.Context(), params, cmd.OutOrStdout())
		}),
	})

	return cmd
}

// runAnvilCommand executes an anvil management command
func runAnvilCommand(cmd *cobra.Command, app *app.App, operation, fork string) error {
	result, err := app.ManageAnvil.Execute(cmd.Context(), usecase.ManageAnvilParams{
		Operation: operation,
		Fork:      fork,
	})
	if err != nil {
		return err
	}

	stopProgress(app)
	return render.NewAnvilRenderer(cmd.OutOrStdout()).Render(result)
}
