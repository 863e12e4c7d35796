package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledctl/ledctl/internal/device"
	"github.com/ledctl/ledctl/internal/discovery"
	"github.com/ledctl/ledctl/internal/panel"
)

// Messages delivered to the model from background work
type (
	requestEventMsg device.RequestEvent
	noticeMsg       panel.Notice
	pickRequestMsg  struct{ req *panel.PickRequest }

	commandDoneMsg struct {
		action string
		err    error
	}

	scanCompleteMsg struct {
		devices []*discovery.Device
		err     error
	}
)

// bridge carries events raised on command goroutines into the Bubble Tea loop
type bridge struct {
	events  chan device.RequestEvent
	notices chan panel.Notice
}

func newBridge() *bridge {
	return &bridge{
		events:  make(chan device.RequestEvent, 64),
		notices: make(chan panel.Notice, 16),
	}
}

// observe is a device.Observer. Events are dropped when the UI falls behind.
func (b *bridge) observe(ev device.RequestEvent) {
	select {
	case b.events <- ev:
	default:
	}
}

// Notify implements panel.Notifier
func (b *bridge) Notify(n panel.Notice) {
	select {
	case b.notices <- n:
	default:
	}
}

func waitForEvent(ctx context.Context, ch <-chan device.RequestEvent) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-ch:
			return requestEventMsg(ev)
		case <-ctx.Done():
			return nil
		}
	}
}

func waitForNotice(ctx context.Context, ch <-chan panel.Notice) tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-ch:
			return noticeMsg(n)
		case <-ctx.Done():
			return nil
		}
	}
}

func waitForPick(ctx context.Context, broker *panel.PickerBroker) tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-broker.Requests():
			return pickRequestMsg{req: req}
		case <-ctx.Done():
			return nil
		}
	}
}

// runCommand runs fn off the UI loop and reports completion
func runCommand(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg{action: action, err: fn()}
	}
}

// scanDevices is a command that performs device discovery
func scanDevices(ctx context.Context, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		devices, err := discovery.ScanForDevices(ctx, timeout)
		return scanCompleteMsg{devices: devices, err: err}
	}
}
