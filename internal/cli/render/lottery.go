package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// LotteryRenderer renders lottery deployments and interactions
type LotteryRenderer struct {
	out io.Writer
}

// NewLotteryRenderer creates a new lottery renderer
func NewLotteryRenderer(out io.Writer) *LotteryRenderer {
	return &LotteryRenderer{out: out}
}

// RenderDeploy renders a freshly deployed lottery
func (r *LotteryRenderer) RenderDeploy(result *usecase.DeployLotteryResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed lottery to %s", addressStyle.Sprint(result.Deployment.Address.Hex()))))
	r.field("Network", fmt.Sprintf("%s (chain %d)", result.Deployment.Network, result.Deployment.ChainID))
	r.field("Deployer", result.Account.String())
	if result.PriceFeed != nil {
		feed := result.PriceFeed.Address.Hex()
		if result.PriceFeed.Mock {
			feed += mockStyle.Sprint(" (mock)")
		}
		r.field("Price feed", feed)
	}
	if result.FeedAnswer != nil {
		r.field("ETH/USD", FormatScaled(result.FeedAnswer, result.FeedDecimals))
	}
	r.field("Entrance fee", fmt.Sprintf("%s (%s wei)", FormatEther(result.EntranceFee), result.EntranceFee))
	r.tx(result.Tx)
	return nil
}

// RenderFee renders the current entrance fee
func (r *LotteryRenderer) RenderFee(fee *big.Int) error {
	fmt.Fprintf(r.out, "Entrance fee: %s wei (%s)\n", fee, FormatEther(fee))
	return nil
}

// RenderTx renders a lottery transaction
func (r *LotteryRenderer) RenderTx(action string, result *usecase.LotteryTxResult) error {
	fmt.Fprintln(r.out, FormatSuccess(action))
	r.field("Lottery", result.Lottery.Address.Hex())
	r.field("Account", result.Account.String())
	if result.Value != nil && result.Value.Sign() > 0 {
		r.field("Value", FormatEther(result.Value))
	}
	r.tx(result.Tx)
	return nil
}

// RenderEnd renders the winner of an ended lottery
func (r *LotteryRenderer) RenderEnd(result *usecase.LotteryEndResult) error {
	if err := r.RenderTx("Lottery ended", &result.LotteryTxResult); err != nil {
		return err
	}
	if result.Winner == (common.Address{}) {
		fmt.Fprintln(r.out, FormatWarning("no winner was picked"))
		return nil
	}
	fmt.Fprintf(r.out, "🏆 %s won %s\n", addressStyle.Sprint(result.Winner.Hex()), FormatEther(result.Prize))
	return nil
}

// RenderStatus renders the on-chain lottery state
func (r *LotteryRenderer) RenderStatus(status *usecase.LotteryStatus) error {
	headerStyle.Fprintf(r.out, "🎟  Lottery %s\n", status.Lottery.Address.Hex())

	state := Title(status.State.String())
	switch status.State {
	case domain.LotteryOpen:
		state = successStyle.Sprint(state)
	case domain.LotteryCalculatingWinner:
		state = warningStyle.Sprint(state)
	}
	r.field("State", state)
	r.field("Players", fmt.Sprint(status.Players))
	r.field("Entrance fee", FormatEther(status.EntranceFee))
	r.field("Balance", FormatEther(status.Balance))
	r.field("Owner", status.Owner.Hex())
	if status.RecentWinner != (common.Address{}) {
		r.field("Recent winner", status.RecentWinner.Hex())
	}
	return nil
}

func (r *LotteryRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprintf("%-14s", label+":"), value)
}

func (r *LotteryRenderer) tx(tx *domain.TxResult) {
	if tx == nil {
		return
	}
	r.field("Tx", tx.Hash.Hex())
	r.field("Block", fmt.Sprintf("%d (gas used %d)", tx.BlockNumber, tx.GasUsed))
}
