package panel

import (
	"fmt"

	"github.com/ledctl/ledctl/internal/color"
	"github.com/ledctl/ledctl/internal/device"
)

// DefaultBrightness is the brightness the panel starts with
const DefaultBrightness = 255

// Preset is a named lighting configuration stored on the controller.
// ID is sent verbatim to /setPreset. Color is set only for presets created
// in the panel.
type Preset struct {
	Name  string `yaml:"name" json:"name"`
	ID    string `yaml:"id" json:"id"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// DefaultPresets returns the built-in preset catalog
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "Blade Runner", ID: "blade_runner"},
		{Name: "Blink", ID: "blink"},
		{Name: "Blue", ID: "blue"},
		{Name: "Red", ID: "red"},
		{Name: "Green", ID: "green"},
		{Name: "White", ID: "white"},
	}
}

// customPresetID names the n-th preset in the catalog
func customPresetID(n int) string {
	return fmt.Sprintf("custom_%d", n)
}

// Segments holds the color assigned to each segment. An empty string means unset.
type Segments [device.SegmentCount]string

// SegmentLabel returns the display label of segment i ("S1".."S12")
func SegmentLabel(i int) string {
	return fmt.Sprintf("S%d", i+1)
}

func checkSegment(i int) error {
	if i < 0 || i >= device.SegmentCount {
		return fmt.Errorf("%w: %d (want 0-%d)", ErrSegmentIndex, i, device.SegmentCount-1)
	}
	return nil
}

// Set assigns hex to segment i
func (s *Segments) Set(i int, hex string) error {
	if err := checkSegment(i); err != nil {
		return err
	}
	s[i] = hex
	return nil
}

// Get returns the color of segment i and whether one is assigned
func (s Segments) Get(i int) (string, bool) {
	if checkSegment(i) != nil || s[i] == "" {
		return "", false
	}
	return s[i], true
}

// Display returns the color to draw for segment i; unset segments are neutral
func (s Segments) Display(i int) string {
	if hex, ok := s.Get(i); ok {
		return hex
	}
	return color.Neutral
}

// Assigned returns the indices of assigned segments in ascending order
func (s Segments) Assigned() []int {
	var out []int
	for i, hex := range s {
		if hex != "" {
			out = append(out, i)
		}
	}
	return out
}

// Payload builds the /setCustomLeds body. Unset segments are omitted.
func (s Segments) Payload() []device.SegmentColor {
	payload := []device.SegmentColor{}
	for _, i := range s.Assigned() {
		payload = append(payload, device.SegmentColor{Segment: i, RGB: color.ParseHex(s[i])})
	}
	return payload
}

// State is the panel's session state. It lives in memory only.
type State struct {
	Address    string
	Color      string
	Brightness int
	Power      bool
	Presets    []Preset
	Segments   Segments
	Tabs       TabSet
}

// NewState returns the startup state. A nil catalog selects DefaultPresets.
func NewState(presets []Preset) State {
	if presets == nil {
		presets = DefaultPresets()
	}
	return State{
		Color:      color.Default,
		Brightness: DefaultBrightness,
		Power:      true,
		Presets:    append([]Preset(nil), presets...),
		Tabs:       NewTabSet(),
	}
}

// Clone returns a deep copy
func (s State) Clone() State {
	out := s
	out.Presets = append([]Preset(nil), s.Presets...)
	return out
}
