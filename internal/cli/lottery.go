package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scriptkit/internal/app"
	"github.com/trebuchet-org/scriptkit/internal/cli/render"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// NewDeployLotteryCmd creates the deploy-lottery command
func NewDeployLotteryCmd() *cobra.Command {
	flags := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "deploy-lottery",
		Short: "Deploy the lottery against the network's ETH/USD price feed",
		Long: `Deploy Lottery(priceFeed) from the resolved account and record the deployment.

On local networks the price feed is a MockV3Aggregator deployed on first use.
On other networks it is read from networks.<name>.contracts.eth_usd_price_feed.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := app.DeployLottery.Run(cmd.Context(), usecase.DeployLotteryParams{
				Account: flags.params(cmd),
			})
			if err != nil {
				return err
			}

			stopProgress(app)
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderDeploy(result)
		}),
	}

	addAccountFlags(cmd, flags)
	return cmd
}

// NewLotteryCmd creates the lottery command with its subcommands
func NewLotteryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lottery",
		Short: "Interact with the latest deployed lottery",
		Long: `Interact with the most recent lottery recorded for the active chain.
Run 'scriptkit deploy-lottery' first.`,
	}

	cmd.AddCommand(newLotteryFeeCmd())
	cmd.AddCommand(newLotteryStartCmd())
	cmd.AddCommand(newLotteryEnterCmd())
	cmd.AddCommand(newLotteryEndCmd())
	cmd.AddCommand(newLotteryStatusCmd())

	return cmd
}

func newLotteryFeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fee",
		Short: "Show the current entrance fee",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			fee, err := app.LotteryActions.EntranceFee(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderFee(fee)
		}),
	}
}

func newLotteryStartCmd() *cobra.Command {
	flags := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open the lottery (owner only)",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := app.LotteryActions.Start(cmd.Context(), flags.params(cmd))
			if err != nil {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderTx("Lottery started", result)
		}),
	}

	addAccountFlags(cmd, flags)
	return cmd
}

func newLotteryEnterCmd() *cobra.Command {
	flags := &accountFlags{}
	var value string

	cmd := &cobra.Command{
		Use:   "enter",
		Short: "Enter the lottery",
		Long: `Enter the open lottery, paying the entrance fee.

The fee is read from the contract unless --value is given, e.g. --value 0.03ether.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			params := usecase.LotteryEnterParams{Account: flags.params(cmd)}
			if value != "" {
				amount, err := parseAmount(value)
				if err != nil {
					return err
				}
				params.Value = amount
			}

			result, err := app.LotteryActions.Enter(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderTx("Entered the lottery", result)
		}),
	}

	addAccountFlags(cmd, flags)
	cmd.Flags().StringVar(&value, "value", "", "Amount to pay (wei, or with a gwei/ether suffix)")
	return cmd
}

func newLotteryEndCmd() *cobra.Command {
	flags := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "end",
		Short: "Close the lottery and pay out the winner (owner only)",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := app.LotteryActions.End(cmd.Context(), flags.params(cmd))
			if err != nil {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderEnd(result)
		}),
	}

	addAccountFlags(cmd, flags)
	return cmd
}

func newLotteryStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show lottery state, players and last winner",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			status, err := app.LotteryActions.Status(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderStatus(status)
		}),
	}
}
