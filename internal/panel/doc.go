// Package panel holds the session state of the LED control panel and the
// controller that turns user actions into device commands.
//
// The state (device address, current color, brightness, power, preset
// catalog, segment assignments and active tab) lives in memory only and is
// owned by a Controller. Front ends read it through Snapshot and change it
// through the Controller's methods, which may run concurrently.
//
// # Color picking
//
// Actions that need a color take a ColorPicker. A pick ends either Chosen
// with a color or Abandoned; a canceled context counts as abandoned.
// PickerBroker connects a picker to an event loop:
//
//	broker := panel.NewPickerBroker()
//	go func() {
//		for req := range broker.Requests() {
//			req.Resolve("#ff0000") // or req.Abandon()
//		}
//	}()
//	ctrl.PickColor(ctx, broker)
//
// # Notices
//
// Failed commands are reported to the Notifier:
//   - NoticeAddressRequired when no device address is set (nothing is sent)
//   - NoticeDeviceError when the device answers with a non-2xx status
//   - NoticeConnectionFailed when no response was received
//   - NoticeNameRequired when a preset is saved without a name
//
// The error is also returned to the caller.
package panel
