package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scriptkit/internal/app"
	"github.com/trebuchet-org/scriptkit/internal/cli/render"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// NewDeployStorageCmd creates the deploy-storage command
func NewDeployStorageCmd() *cobra.Command {
	flags := &accountFlags{}
	var (
		value string
		nonce string
	)

	cmd := &cobra.Command{
		Use:   "deploy-storage",
		Short: "Compile, deploy and call SimpleStorage by hand",
		Long: `Compile SimpleStorage with its pinned solc version, deploy it with a signed
legacy transaction, read retrieve(), send store(value) and read it again.

The compiler output is written to build/compiled_code.json.

Nonce strategies:
  requery     read the pending nonce before every transaction (default)
  sequential  use the deployment nonce + 1 for store()`,
		Example: `  scriptkit deploy-storage
  scriptkit deploy-storage --value 42 --nonce sequential
  scriptkit deploy-storage -n rinkeby --account deployer`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			params := usecase.DeployStorageParams{
				Account: flags.params(cmd),
				Nonce:   domain.NonceStrategy(nonce),
			}
			if value != "" {
				v, ok := new(big.Int).SetString(value, 10)
				if !ok || v.Sign() < 0 {
					return fmt.Errorf("invalid value %q: expected a non-negative integer", value)
				}
				params.Value = v
			}

			result, err := app.DeployStorage.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			stopProgress(app)
			return render.NewStorageRenderer(cmd.OutOrStdout()).Render(result)
		}),
	}

	addAccountFlags(cmd, flags)
	cmd.Flags().StringVar(&value, "value", "", "Value passed to store() (default storage.value)")
	cmd.Flags().StringVar(&nonce, "nonce", "", "Nonce strategy: requery or sequential (default storage.nonce)")
	return cmd
}
