package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

var (
	chainHeader    = color.New(color.BgCyan, color.FgBlack, color.Bold)
	timestampStyle = color.New(color.Faint)
	mockStyle      = color.New(color.FgYellow)
)

// DeploymentsRenderer renders deployment lists as tables
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders the recorded deployments of one network
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	chainHeader.Fprintf(r.out, " %s (chain %d) ", result.Network, result.ChainID)
	fmt.Fprintln(r.out)

	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}
	fmt.Fprintln(r.out)

	t := newTable(r.out)
	t.AppendHeader(table.Row{"#", "Contract", "Address", "Block", "Deployer", "Deployed"})
	for _, d := range result.Deployments {
		name := d.Contract
		if d.Mock {
			name += mockStyle.Sprint(" (mock)")
		}
		t.AppendRow(table.Row{
			d.ID,
			name,
			addressStyle.Sprint(d.Address.Hex()),
			d.BlockNumber,
			d.Deployer.Hex(),
			timestampStyle.Sprint(d.CreatedAt.Local().Format("2006-01-02 15:04:05")),
		})
	}
	t.Render()

	r.renderSummary(result.Summary)
	return nil
}

func (r *DeploymentsRenderer) renderSummary(summary usecase.DeploymentSummary) {
	contracts := make([]string, 0, len(summary.ByContract))
	for name := range summary.ByContract {
		contracts = append(contracts, name)
	}
	sort.Strings(contracts)

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total: %d deployment(s)", summary.Total)
	if summary.Mocks > 0 {
		fmt.Fprintf(r.out, ", %d mock(s)", summary.Mocks)
	}
	fmt.Fprintln(r.out)
	for _, name := range contracts {
		labelStyle.Fprintf(r.out, "  %s: %d\n", name, summary.ByContract[name])
	}
}
