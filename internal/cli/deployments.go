package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scriptkit/internal/app"
	"github.com/trebuchet-org/scriptkit/internal/cli/render"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	params := usecase.ListDeploymentsParams{}

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments on the active chain",
		Long: `List the deployments recorded in build/deployments/<chainId>.json for the
active network's chain, oldest first. Mock deployments are hidden unless
--mocks is given.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			stopProgress(app)
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
		}),
	}

	cmd.Flags().StringVarP(&params.Contract, "contract", "c", "", "Only show deployments of this contract")
	cmd.Flags().BoolVar(&params.IncludeMocks, "mocks", false, "Include mock deployments")
	return cmd
}
