package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ledctl/ledctl/internal/device"
)

// RunnerConfig holds configuration for a one-shot device command
type RunnerConfig struct {
	Title   string    // Command title (e.g., "Set Color")
	Command string    // Full command (e.g., "ledctl color #ff0000")
	Params  []Field   // Parameters to display in header
	Output  io.Writer // Output writer (default: os.Stdout)
	Width   int       // Render width (default: terminal width)
}

// CommandRunner prints the header → request lines → result flow for a
// command that talks to the controller.
type CommandRunner struct {
	config    RunnerConfig
	output    io.Writer
	width     int
	startTime time.Time
}

// NewCommandRunner creates a new runner
func NewCommandRunner(config RunnerConfig) *CommandRunner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := config.Width
	if width <= 0 {
		width = GetTerminalWidth()
	}
	return &CommandRunner{
		config: config,
		output: config.Output,
		width:  width,
	}
}

// Operation performs the device work and returns details for the success box
type Operation func(ctx context.Context) ([]Field, error)

// Observe prints one line per request lifecycle transition.
// Pass it to device.Client.Observe.
func (r *CommandRunner) Observe(ev device.RequestEvent) {
	label := ev.Method + " " + ev.Endpoint
	switch ev.State {
	case device.RequestPending:
		_, _ = fmt.Fprintln(r.output, StepRunningStyle.Render("  "+StepMarkerRunning+" "+label))
	case device.RequestSucceeded:
		_, _ = fmt.Fprintln(r.output, StepCompleteStyle.Render(fmt.Sprintf("  %s %s  %d (%s)",
			SuccessMarker, label, ev.StatusCode, ev.Elapsed.Round(time.Millisecond))))
	default:
		_, _ = fmt.Fprintln(r.output, ErrorMessageStyle.Render(fmt.Sprintf("  %s %s  %s (%s)",
			FailureMarker, label, ev.State, ev.Elapsed.Round(time.Millisecond))))
	}
}

// Run prints the header, executes op and prints the result box.
// The error from op is returned unchanged.
func (r *CommandRunner) Run(ctx context.Context, op Operation) error {
	r.startTime = time.Now()

	header := NewHeader(r.config.Title, r.config.Command, r.config.Params...)
	header.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, header.Render())
	_, _ = fmt.Fprintln(r.output)

	details, err := op(ctx)
	duration := time.Since(r.startTime)

	_, _ = fmt.Fprintln(r.output)
	if err != nil {
		result := NewFailureResult(r.config.Title+" failed", err, troubleshootingFor(err))
		result.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, result.Render())
		return Reported(err)
	}

	result := NewSuccessResult(r.config.Title+" complete", details...).
		AddDetail("Duration", duration.Round(time.Millisecond).String()).
		SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())
	return nil
}

// troubleshootingFor returns tips for err, with a generic fallback
func troubleshootingFor(err error) []string {
	if steps := device.TroubleshootingSteps(err); len(steps) > 0 {
		return steps
	}
	return []string{
		"Check the controller is powered on and reachable",
		"Run with --log-level debug for request details",
	}
}
