// Package tui implements the full-screen LED controller panel.
//
// The panel is a single Bubble Tea program with four tabs (Control, Color,
// Presets, Segments), a status line and a context-sensitive help footer.
// All session state lives in a panel.Controller; the model keeps a
// snapshot of it for rendering and refreshes it whenever a command
// finishes.
//
// # Event wiring
//
// Device commands never run on the UI loop. Each key that talks to the
// controller returns a tea.Cmd, and three long-lived listeners feed results
// back in:
//   - request lifecycle events from device.Client (pending, succeeded,
//     failed, timed out) drive the spinner and the status line
//   - notices raised by the controller (missing address, device errors,
//     connection failures) are shown under the status line
//   - picker requests from panel.PickerBroker open the color picker modal,
//     which settles each request exactly once
//
// # Framework Components
//
//   - bubbles/textinput: address, preset name and hex entry
//   - bubbles/progress: brightness slider and scan progress
//   - bubbles/spinner: pending requests
//   - bubbles/list: discovered controllers
//   - bubbles/help: key hints
//   - lipgloss: styling, swatches and layout
//
// # Usage Example
//
//	client := device.NewClient("192.168.4.1")
//	if err := tui.Run(ctx, tui.Options{Client: client}); err != nil {
//	    return err
//	}
package tui
