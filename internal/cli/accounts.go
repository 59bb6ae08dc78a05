package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scriptkit/internal/app"
	"github.com/trebuchet-org/scriptkit/internal/cli/render"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// NewAccountsCmd creates the accounts command with its subcommands
func NewAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage keystore accounts",
		Long: `Manage the encrypted keystore used by --account <id>.

Keyfiles live in ~/.scriptkit/accounts (override with SCRIPTKIT_KEYSTORE_DIR).
Passwords are read from SCRIPTKIT_KEYSTORE_PASSWORD or prompted for.`,
	}

	cmd.AddCommand(newAccountsListCmd())
	cmd.AddCommand(newAccountsNewCmd())
	cmd.AddCommand(newAccountsDeleteCmd())

	return cmd
}

func newAccountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List keystore accounts and, on local networks, the dev accounts",
		Args:    cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := app.ManageAccounts.List(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewAccountsRenderer(cmd.OutOrStdout()).RenderList(result)
		}),
	}
}

func newAccountsNewCmd() *cobra.Command {
	var privateKey string

	cmd := &cobra.Command{
		Use:   "new <id>",
		Short: "Store a private key under an id",
		Long: `Encrypt a private key into the keystore under <id>.
Without --private-key a fresh key is generated.`,
		Example: `  scriptkit accounts new deployer --private-key 0x...
  scriptkit accounts new scratch`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			entry, err := app.ManageAccounts.New(cmd.Context(), usecase.NewAccountParams{
				ID:         args[0],
				PrivateKey: privateKey,
			})
			if err != nil {
				return err
			}
			return render.NewAccountsRenderer(cmd.OutOrStdout()).RenderNew(entry)
		}),
	}

	cmd.Flags().StringVar(&privateKey, "private-key", "", "Hex encoded private key to import")
	return cmd
}

func newAccountsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id...]",
		Aliases: []string{"rm"},
		Short:   "Delete keystore accounts",
		Long: `Delete the named keystore accounts. Without ids an interactive
multi-select of the stored accounts is shown.`,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			ids := args
			if len(ids) == 0 {
				if app.Config.NonInteractive {
					return fmt.Errorf("no account ids given (required in non-interactive mode)")
				}

				list, err := app.ManageAccounts.List(cmd.Context())
				if err != nil {
					return err
				}
				ids, err = SelectAccounts(list.Keystore, "Select accounts to delete")
				if err != nil {
					return err
				}
			}

			deleted, err := app.ManageAccounts.Delete(cmd.Context(), ids)
			if renderErr := render.NewAccountsRenderer(cmd.OutOrStdout()).RenderDeleted(deleted); renderErr != nil {
				return renderErr
			}
			return err
		}),
	}
}
