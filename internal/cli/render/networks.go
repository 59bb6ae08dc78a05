package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

var kindStyles = map[domain.EnvironmentKind]*color.Color{
	domain.EnvironmentLocal:  color.New(color.FgGreen),
	domain.EnvironmentForked: color.New(color.FgYellow),
	domain.EnvironmentLive:   color.New(color.FgMagenta),
}

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks as a table
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable(r.out)
	t.AppendHeader(table.Row{"", "Network", "Kind", "Chain ID", "RPC"})
	for _, network := range result.Networks {
		marker := " "
		if network.Active {
			marker = successStyle.Sprint("●")
		}

		kind := kindStyles[network.Kind].Sprint(Title(string(network.Kind)))
		if network.Error != nil {
			t.AppendRow(table.Row{marker, network.Name, kind, errorStyle.Sprint("error"), lastCause(network.Error.Error())})
			continue
		}
		t.AppendRow(table.Row{marker, network.Name, kind, network.ChainID, network.RPCURL})
	}
	t.Render()

	return nil
}
