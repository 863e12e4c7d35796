package panel

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledctl/ledctl/internal/device"
)

var (
	// ErrNameRequired is returned when a preset is saved with a blank name
	ErrNameRequired = errors.New("preset name required")
	// ErrSegmentIndex is returned for a segment index outside 0-11
	ErrSegmentIndex = errors.New("segment index out of range")
	// ErrPresetIndex is returned for a preset index outside the catalog
	ErrPresetIndex = errors.New("preset index out of range")
	// ErrUnknownTab is returned when activating a tab that does not exist
	ErrUnknownTab = errors.New("unknown tab")
)

// NoticeKind classifies a user-facing notification
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	// NoticeAddressRequired: a command was attempted with no device address
	NoticeAddressRequired
	// NoticeDeviceError: the device answered with a non-2xx status
	NoticeDeviceError
	// NoticeConnectionFailed: the request never got a response
	NoticeConnectionFailed
	// NoticeNameRequired: a preset was saved with a blank name
	NoticeNameRequired
	// NoticeCommandError: the command was rejected before reaching the device
	NoticeCommandError
)

// String returns the kind name
func (k NoticeKind) String() string {
	switch k {
	case NoticeInfo:
		return "info"
	case NoticeAddressRequired:
		return "address_required"
	case NoticeDeviceError:
		return "device_error"
	case NoticeConnectionFailed:
		return "connection_failed"
	case NoticeNameRequired:
		return "name_required"
	case NoticeCommandError:
		return "command_error"
	default:
		return fmt.Sprintf("NoticeKind(%d)", k)
	}
}

// IsCommunicationFailure reports whether the notice reports a failed exchange with the device
func (k NoticeKind) IsCommunicationFailure() bool {
	return k == NoticeDeviceError || k == NoticeConnectionFailed
}

// IsError reports whether the notice should be shown as an error
func (k NoticeKind) IsError() bool {
	return k != NoticeInfo
}

// Notice is a message for the user
type Notice struct {
	Kind    NoticeKind
	Message string
	Hint    string
	Err     error
	At      time.Time
}

// Notifier delivers notices to the user
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notice)

// Notify calls f
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

// NoticeFor maps a command error to the notice shown for it
func NoticeFor(err error) Notice {
	n := Notice{Err: err, At: time.Now()}

	switch {
	case errors.Is(err, ErrNameRequired):
		n.Kind = NoticeNameRequired
		n.Message = "Please enter a preset name"
	case device.IsNoAddress(err):
		n.Kind = NoticeAddressRequired
		n.Message = "Please enter the device address"
		n.Hint = device.GetTroubleshootingHint(err)
	case device.IsHTTPError(err):
		n.Kind = NoticeDeviceError
		n.Message = "Error communicating with the device: " + device.GetShortErrorMessage(err)
		n.Hint = device.GetTroubleshootingHint(err)
	case device.IsNetworkError(err):
		n.Kind = NoticeConnectionFailed
		n.Message = "Could not connect to the device: " + device.GetShortErrorMessage(err)
		n.Hint = device.GetTroubleshootingHint(err)
	default:
		n.Kind = NoticeCommandError
		n.Message = "Command failed: " + err.Error()
	}

	return n
}

// Info builds an informational notice
func Info(format string, args ...any) Notice {
	return Notice{Kind: NoticeInfo, Message: fmt.Sprintf(format, args...), At: time.Now()}
}
