package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// AnvilRenderer renders anvil operation results
type AnvilRenderer struct {
	out io.Writer
}

// NewAnvilRenderer creates a new anvil renderer
func NewAnvilRenderer(out io.Writer) *AnvilRenderer {
	return &AnvilRenderer{out: out}
}

// Render renders the anvil operation result
func (r *AnvilRenderer) Render(result *usecase.ManageAnvilResult) error {
	switch result.Operation {
	case "start", "restart":
		return r.renderStart(result)
	case "stop":
		return r.renderStop(result)
	case "status":
		return r.renderStatus(result)
	default:
		return fmt.Errorf("unknown operation: %s", result.Operation)
	}
}

func (r *AnvilRenderer) renderStart(result *usecase.ManageAnvilResult) error {
	if !result.Success {
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(result.Message))
	color.New(color.FgYellow).Fprintf(r.out, "📋 Logs: %s\n", result.Status.LogFile)
	color.New(color.FgBlue).Fprintf(r.out, "🌐 RPC URL: %s\n", result.Status.RPCURL)
	if result.Status.ChainID != 0 {
		color.New(color.FgBlue).Fprintf(r.out, "⛓  Chain ID: %d\n", result.Status.ChainID)
	}
	if result.Instance.ForkURL != "" {
		labelStyle.Fprintf(r.out, "Forking %s\n", result.Instance.ForkURL)
	}
	return nil
}

func (r *AnvilRenderer) renderStop(result *usecase.ManageAnvilResult) error {
	if result.Success {
		fmt.Fprintln(r.out, FormatSuccess(result.Message))
	}
	return nil
}

func (r *AnvilRenderer) renderStatus(result *usecase.ManageAnvilResult) error {
	headerStyle.Fprintf(r.out, "📊 Anvil Status ('%s'):\n", result.Instance.Name)

	if !result.Status.Running {
		color.New(color.FgRed).Fprintln(r.out, "Status: 🔴 Not running")
		color.New(color.FgHiBlack).Fprintf(r.out, "PID file: %s\n", result.Instance.PidFile)
		color.New(color.FgHiBlack).Fprintf(r.out, "Log file: %s\n", result.Instance.LogFile)
		return nil
	}

	color.New(color.FgGreen).Fprintf(r.out, "Status: 🟢 Running (PID %d)\n", result.Status.PID)
	color.New(color.FgBlue).Fprintf(r.out, "RPC URL: %s\n", result.Status.RPCURL)
	color.New(color.FgYellow).Fprintf(r.out, "Log file: %s\n", result.Status.LogFile)

	if result.Status.RPCHealthy {
		color.New(color.FgGreen).Fprintf(r.out, "RPC Health: ✅ Responding (chain %d)\n", result.Status.ChainID)
	} else {
		color.New(color.FgRed).Fprintf(r.out, "RPC Health: ❌ Not responding %s\n", result.Status.Error)
	}
	return nil
}

// RenderLogsHeader renders the header for logs streaming
func (r *AnvilRenderer) RenderLogsHeader(result *usecase.ManageAnvilResult) error {
	headerStyle.Fprintf(r.out, "📋 Showing anvil '%s' logs (Ctrl+C to exit):\n", result.Instance.Name)
	color.New(color.FgHiBlack).Fprintf(r.out, "Log file: %s\n\n", result.Status.LogFile)
	return nil
}
