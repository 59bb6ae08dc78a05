package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/scriptkit/internal/adapters/progress"
	"github.com/trebuchet-org/scriptkit/internal/app"
	"github.com/trebuchet-org/scriptkit/internal/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// cancelKey is the context key for the release func of the command timeout
	cancelKey contextKey = "cancel"
)

// stopper is implemented by progress sinks that own terminal state
type stopper interface {
	Stop()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scriptkit",
		Short: "Deployment and interaction scripts for the lottery and SimpleStorage contracts",
		Long: `scriptkit compiles the project's Solidity contracts, deploys them to local,
forked or live networks, and drives the deployed lottery.

On local networks missing dependencies such as the price feed are deployed
as mocks on first use. On live networks they are read from the network's
contracts table in scriptkit.toml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			sink := newProgressSink(v)

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				ctx = context.WithValue(ctx, cancelKey, cancel)
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., development, rinkeby, mainnet-fork)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall command timeout (default 5m)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewCompileCmd(),
		NewDeployLotteryCmd(),
		NewLotteryCmd(),
		NewDeployStorageCmd(),
		NewDeploymentsCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewAccountsCmd(),
		NewNetworksCmd(),
		NewConfigCmd(),
		NewDevCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipsApp reports whether cmd runs without a project
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// newProgressSink picks the spinner for interactive terminals and a silent
// sink everywhere else
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("debug") || v.GetBool("non_interactive") || color.NoColor {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// releaseTimeout cancels the command timeout set up in PersistentPreRunE
func releaseTimeout(cmd *cobra.Command) {
	if cancel, ok := cmd.Context().Value(cancelKey).(context.CancelFunc); ok {
		cancel()
	}
}

// withApp resolves the app for a RunE, then stops its progress sink and
// releases the timeout once the command returns, failed or not
func withApp(run func(cmd *cobra.Command, args []string, app *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer releaseTimeout(cmd)

		app, err := getApp(cmd)
		if err != nil {
			return err
		}

		err = run(cmd, args, app)
		stopProgress(app)
		return err
	}
}

// stopProgress halts the spinner so rendered output starts on a clean line
func stopProgress(app *app.App) {
	if s, ok := app.Progress.(stopper); ok {
		s.Stop()
	}
}
