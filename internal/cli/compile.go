package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scriptkit/internal/app"
	"github.com/trebuchet-org/scriptkit/internal/cli/render"
)

// NewCompileCmd creates the compile command
func NewCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile the project's contracts",
		Long: `Compile every .sol file under the contracts directory with the project's
solc version. The solc binary is installed on first use.

The full compiler output is written to build/compiled_code.json and one
artifact per contract to build/contracts/<Name>.json.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := app.CompileContracts.Run(cmd.Context())
			if err != nil {
				return err
			}

			stopProgress(app)
			return render.NewCompileRenderer(cmd.OutOrStdout()).Render(result)
		}),
	}
}
