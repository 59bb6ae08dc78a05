package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// CompileRenderer renders compilation results
type CompileRenderer struct {
	out io.Writer
}

// NewCompileRenderer creates a new compile renderer
func NewCompileRenderer(out io.Writer) *CompileRenderer {
	return &CompileRenderer{out: out}
}

// Render renders the compiled artifacts and any compiler warnings
func (r *CompileRenderer) Render(result *usecase.CompileContractsResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Compiled %d contract(s) with solc %s", len(result.Artifacts), result.Version)))
	for _, artifact := range result.Artifacts {
		fmt.Fprintf(r.out, "  %s %s\n", artifact.Name, labelStyle.Sprint(artifact.SourcePath))
	}
	labelStyle.Fprintf(r.out, "Artifacts written to %s\n", relativePath(result.OutputPath))

	if len(result.Warnings) > 0 {
		fmt.Fprintln(r.out)
		for _, w := range result.Warnings {
			msg := w.FormattedMessage
			if msg == "" {
				msg = w.Message
			}
			warningStyle.Fprintf(r.out, "⚠️  %s\n", msg)
		}
	}
	return nil
}
