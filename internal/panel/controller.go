package panel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ledctl/ledctl/internal/color"
	"github.com/ledctl/ledctl/internal/device"
	"github.com/ledctl/ledctl/internal/logging"
)

// Commander is the set of device commands the panel issues.
// *device.Client implements it.
type Commander interface {
	SetAddress(address string)
	SetColor(ctx context.Context, rgb color.RGB) error
	SetBrightness(ctx context.Context, level int) error
	SetPower(ctx context.Context, on bool) error
	SetPreset(ctx context.Context, id string) error
	SetCustomLeds(ctx context.Context, segments []device.SegmentColor) error
}

// Controller owns the session state and turns user actions into device commands.
// Methods are safe to call from several goroutines; requests are not serialized
// and may reach the device in any order.
type Controller struct {
	mu       sync.Mutex
	state    State
	commands Commander
	notifier Notifier
}

// NewController creates a controller. A nil notifier discards notices.
func NewController(state State, commands Commander, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	c := &Controller{
		state:    state.Clone(),
		commands: commands,
		notifier: notifier,
	}
	c.state.Address = strings.TrimSpace(c.state.Address)
	commands.SetAddress(c.state.Address)
	return c
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

// report turns a command error into a notice. Returns err unchanged.
func (c *Controller) report(action string, err error) error {
	if err == nil {
		return nil
	}
	n := NoticeFor(err)
	if n.Kind == NoticeConnectionFailed {
		logging.Warn("device request failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
	c.notifier.Notify(n)
	return fmt.Errorf("%s: %w", action, err)
}

// SetAddress stores the device address. Only surrounding whitespace is removed.
func (c *Controller) SetAddress(address string) {
	address = strings.TrimSpace(address)
	c.update(func(s *State) { s.Address = address })
	c.commands.SetAddress(address)
	logging.Debug("device address set", zap.String("address", address))
}

// SetBrightness records level and sends it to the device
func (c *Controller) SetBrightness(ctx context.Context, level int) error {
	c.update(func(s *State) { s.Brightness = level })
	return c.report("set brightness", c.commands.SetBrightness(ctx, level))
}

// SetPower records the power flag and turns the LEDs on or off
func (c *Controller) SetPower(ctx context.Context, on bool) error {
	c.update(func(s *State) { s.Power = on })
	return c.report("set power", c.commands.SetPower(ctx, on))
}

// TogglePower flips the power flag
func (c *Controller) TogglePower(ctx context.Context) error {
	var on bool
	c.update(func(s *State) {
		s.Power = !s.Power
		on = s.Power
	})
	return c.report("set power", c.commands.SetPower(ctx, on))
}

// SetColor makes hex the current color and sends it
func (c *Controller) SetColor(ctx context.Context, hex string) error {
	c.update(func(s *State) { s.Color = hex })
	return c.report("set color", c.commands.SetColor(ctx, color.ParseHex(hex)))
}

// PickColor asks picker for a new current color. Abandoning changes nothing.
func (c *Controller) PickColor(ctx context.Context, picker ColorPicker) (PickResult, error) {
	res := picker.PickColor(ctx, c.Snapshot().Color)
	hex, ok := res.Picked()
	if !ok {
		return res, nil
	}
	return res, c.SetColor(ctx, hex)
}

// ApplyPreset activates the i-th preset of the catalog on the device
func (c *Controller) ApplyPreset(ctx context.Context, i int) error {
	var preset Preset
	var found bool
	c.update(func(s *State) {
		if i >= 0 && i < len(s.Presets) {
			preset, found = s.Presets[i], true
		}
	})
	if !found {
		return fmt.Errorf("%w: %d", ErrPresetIndex, i)
	}
	return c.report("apply preset "+preset.ID, c.commands.SetPreset(ctx, preset.ID))
}

// AddPreset creates a custom preset.
// A blank name is rejected before the picker is shown. If the pick is
// abandoned nothing is added and nothing is sent. Otherwise the preset is
// appended, its color becomes current and is sent to the device. The
// returned preset is nil when nothing was added.
func (c *Controller) AddPreset(ctx context.Context, name string, picker ColorPicker) (*Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		c.notifier.Notify(NoticeFor(ErrNameRequired))
		return nil, ErrNameRequired
	}

	res := picker.PickColor(ctx, c.Snapshot().Color)
	hex, ok := res.Picked()
	if !ok {
		logging.Debug("preset creation abandoned", zap.String("name", name))
		return nil, nil
	}

	var preset Preset
	c.update(func(s *State) {
		preset = Preset{Name: name, ID: customPresetID(len(s.Presets) + 1), Color: hex}
		s.Presets = append(s.Presets, preset)
		s.Color = hex
	})
	logging.Info("preset added",
		zap.String("name", preset.Name),
		zap.String("id", preset.ID),
		zap.String("color", preset.Color),
	)

	return &preset, c.report("set color", c.commands.SetColor(ctx, color.ParseHex(hex)))
}

// AssignSegment asks picker for the color of segment i. Nothing is sent.
func (c *Controller) AssignSegment(ctx context.Context, i int, picker ColorPicker) (PickResult, error) {
	if err := checkSegment(i); err != nil {
		return Abandoned(), err
	}

	snap := c.Snapshot()
	initial, ok := snap.Segments.Get(i)
	if !ok {
		initial = snap.Color
	}

	res := picker.PickColor(ctx, initial)
	if hex, ok := res.Picked(); ok {
		c.update(func(s *State) { _ = s.Segments.Set(i, hex) })
	}
	return res, nil
}

// SetSegment assigns hex to segment i without asking
func (c *Controller) SetSegment(i int, hex string) error {
	var err error
	c.update(func(s *State) { err = s.Segments.Set(i, hex) })
	return err
}

// ApplySegments sends every assigned segment, in index order, to the device
func (c *Controller) ApplySegments(ctx context.Context) error {
	payload := c.Snapshot().Segments.Payload()
	return c.report("apply segments", c.commands.SetCustomLeds(ctx, payload))
}

// SelectTab activates tab. Unknown tabs return an error and change nothing.
func (c *Controller) SelectTab(tab Tab) error {
	var err error
	c.update(func(s *State) { err = s.Tabs.Activate(tab) })
	return err
}
