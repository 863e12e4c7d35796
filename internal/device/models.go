package device

import (
	"github.com/ledctl/ledctl/internal/color"
)

// Device API endpoints
const (
	EndpointSetColor      = "/setColor"
	EndpointSetBrightness = "/setBrightness"
	EndpointTurnOn        = "/turnOn"
	EndpointTurnOff       = "/turnOff"
	EndpointSetPreset     = "/setPreset"
	EndpointSetCustomLeds = "/setCustomLeds"
)

// SegmentCount is the number of independently colorable zones on the controller
const SegmentCount = 12

// BrightnessPayload is the body of /setBrightness
type BrightnessPayload struct {
	Brightness int `json:"brightness"`
}

// PresetPayload is the body of /setPreset
type PresetPayload struct {
	Preset string `json:"preset"`
}

// SegmentColor is one entry of the /setCustomLeds body.
// Encodes as {"segment": n, "r": .., "g": .., "b": ..}.
type SegmentColor struct {
	Segment int `json:"segment"`
	color.RGB
}
