package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ledctl/ledctl/internal/device"
	"github.com/ledctl/ledctl/internal/logging"
	"github.com/ledctl/ledctl/internal/panel"
)

// Options configures the panel program
type Options struct {
	// Client sends the device commands. Required.
	Client *device.Client
	// Address is the initial device address; it may be empty
	Address string
	// Presets replaces the built-in catalog when non-nil
	Presets []panel.Preset
	// ScanTimeout bounds discovery from the panel
	ScanTimeout time.Duration
}

// Run starts the full-screen panel and blocks until the user quits or ctx is done.
// Session state is discarded on return.
func Run(ctx context.Context, opts Options) error {
	if opts.Client == nil {
		return fmt.Errorf("panel requires a device client")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, opts)
	logging.Info("panel started",
		zap.String("address", opts.Address),
		zap.Int("presets", len(m.State.Presets)),
	)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("panel: %w", err)
	}

	logging.Info("panel closed")
	return nil
}
