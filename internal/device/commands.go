package device

import (
	"context"
	"net/http"

	"github.com/ledctl/ledctl/internal/color"
)

// SetColor sets the whole strip to one color
func (c *Client) SetColor(ctx context.Context, rgb color.RGB) error {
	return c.Send(ctx, EndpointSetColor, http.MethodPost, rgb)
}

// SetBrightness sets the global brightness. The controller expects 0-255;
// the value is sent as given.
func (c *Client) SetBrightness(ctx context.Context, level int) error {
	return c.Send(ctx, EndpointSetBrightness, http.MethodPost, BrightnessPayload{Brightness: level})
}

// TurnOn switches the LEDs on
func (c *Client) TurnOn(ctx context.Context) error {
	return c.Send(ctx, EndpointTurnOn, http.MethodPost, nil)
}

// TurnOff switches the LEDs off
func (c *Client) TurnOff(ctx context.Context) error {
	return c.Send(ctx, EndpointTurnOff, http.MethodPost, nil)
}

// SetPower calls TurnOn or TurnOff
func (c *Client) SetPower(ctx context.Context, on bool) error {
	if on {
		return c.TurnOn(ctx)
	}
	return c.TurnOff(ctx)
}

// SetPreset activates a preset stored on the controller. id is sent verbatim.
func (c *Client) SetPreset(ctx context.Context, id string) error {
	return c.Send(ctx, EndpointSetPreset, http.MethodPost, PresetPayload{Preset: id})
}

// SetCustomLeds assigns colors to individual segments.
// An empty list is sent as [] rather than null.
func (c *Client) SetCustomLeds(ctx context.Context, segments []SegmentColor) error {
	if segments == nil {
		segments = []SegmentColor{}
	}
	return c.Send(ctx, EndpointSetCustomLeds, http.MethodPost, segments)
}
