package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SpinnerSink shows a spinner with the stages a use case went through
type SpinnerSink struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
}

// NewSpinnerSink creates a spinner sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     out,
	}
}

// OnProgress records stage changes and drives the spinner
func (r *SpinnerSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Stage != "" && (len(r.stages) == 0 || r.stages[len(r.stages)-1].Stage != event.Stage) {
		r.completeCurrentStage()
		r.stages = append(r.stages, stageInfo{Stage: event.Stage, StartTime: time.Now()})
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.display(event.Message)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.print(color.New(color.FgRed), message)
}

// Stop halts the spinner, marking the last stage as done
func (r *SpinnerSink) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completeCurrentStage()
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerSink) print(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	_, _ = c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage marks the current stage as completed
func (r *SpinnerSink) completeCurrentStage() {
	if len(r.stages) > 0 && r.stages[len(r.stages)-1].EndTime.IsZero() {
		r.stages[len(r.stages)-1].EndTime = time.Now()
	}
}

// display renders "✓ Compiling (1.2s) → ● Deploying (3s) message"
func (r *SpinnerSink) display(message string) string {
	title := cases.Title(language.English)
	parts := make([]string, 0, len(r.stages))

	for _, stage := range r.stages {
		name := title.String(strings.ReplaceAll(stage.Stage, "_", " "))
		if stage.EndTime.IsZero() {
			parts = append(parts, fmt.Sprintf("● %s (%s)",
				color.New(color.FgYellow).Sprint(name), time.Since(stage.StartTime).Round(time.Second)))
			continue
		}
		parts = append(parts, fmt.Sprintf("✓ %s (%s)",
			color.New(color.FgGreen).Sprint(name), stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond)))
	}

	display := strings.Join(parts, " → ")
	if message != "" {
		display += " " + color.New(color.Faint).Sprint(message)
	}
	return display
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
