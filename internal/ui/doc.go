// Package ui renders the output of ledctl's one-shot commands.
//
// These components use Lipgloss to print styled output and exit; they do
// not take over the terminal the way the panel (package tui) does.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success, failure and warning boxes with ordered details
//   - CommandRunner: header → request lines → result for device commands,
//     with troubleshooting tips taken from the device error
//   - Printer: headers, results and tables (lipgloss/table) for listings
//   - Confirm: yes/no prompt before overwriting files
//
// Example:
//
//	runner := ui.NewCommandRunner(ui.RunnerConfig{
//	    Title:   "Set Color",
//	    Command: "ledctl color #ff0000",
//	    Params:  []ui.Field{ui.F("Device", "192.168.4.1")},
//	})
//	client.Observe(runner.Observe)
//	err := runner.Run(ctx, func(ctx context.Context) ([]ui.Field, error) {
//	    return nil, client.SetColor(ctx, rgb)
//	})
//
// # Logging Integration
//
// zap logging is silent unless LEDCTL_LOG_LEVEL or --log-level is set, so
// the boxes printed here are the only output by default.
package ui
