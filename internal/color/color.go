// Package color converts the hex color strings used by the panel into the
// 8-bit channel values the LED controller expects.
package color

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Neutral is the color drawn for segments that have no assignment.
const Neutral = "#808080"

// Default is the color the panel starts with.
const Default = "#ffffff"

// RGB is a color decomposed into 8-bit channels.
// The JSON form matches the body of the device's /setColor endpoint.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseHex decomposes a "#rrggbb" string into channels.
//
// The first character is dropped and the longest leading run of hex digits
// is read as an integer. Input is never rejected: a string without digits
// yields black, and excess digits wrap at 32 bits before the channels are
// masked out.
func ParseHex(s string) RGB {
	var v uint32
	if len(s) > 0 {
		for _, ch := range s[1:] {
			d, ok := hexDigit(ch)
			if !ok {
				break
			}
			v = v<<4 | uint32(d)
		}
	}
	return RGB{
		R: uint8(v >> 16 & 0xff),
		G: uint8(v >> 8 & 0xff),
		B: uint8(v & 0xff),
	}
}

func hexDigit(ch rune) (uint8, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return uint8(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return uint8(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return uint8(ch-'A') + 10, true
	}
	return 0, false
}

// Hex formats the color as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Value returns the packed 24-bit value r*65536 + g*256 + b.
func (c RGB) Value() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String implements fmt.Stringer
func (c RGB) String() string {
	return fmt.Sprintf("%s (r=%d g=%d b=%d)", c.Hex(), c.R, c.G, c.B)
}

// Normalize validates user-typed color input for the picker.
// Every character after the optional '#' must be a hex digit.
// Accepts "#rgb" and "#rrggbb" with or without the leading '#'.
// Returns lowercase "#rrggbb" and true on success.
func Normalize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", false
	}
	for _, ch := range s[1:] {
		if _, ok := hexDigit(ch); !ok {
			return "", false
		}
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return "", false
	}
	return c.Clamped().Hex(), true
}

// Shift rotates the hue by dHue degrees and moves lightness by dLightness
// (range -1..1) in HSL space. Invalid input is returned unchanged.
// Achromatic colors get full saturation so hue steps are visible.
func Shift(hex string, dHue, dLightness float64) string {
	norm, ok := Normalize(hex)
	if !ok {
		return hex
	}
	c, _ := colorful.Hex(norm)
	h, s, l := c.Hsl()

	if dHue != 0 && s < 0.05 {
		s = 1
		if l <= 0.02 || l >= 0.98 {
			l = 0.5
		}
	}

	h = math.Mod(h+dHue, 360)
	if h < 0 {
		h += 360
	}
	l = math.Max(0, math.Min(1, l+dLightness))

	return colorful.Hsl(h, s, l).Clamped().Hex()
}

// TextOn returns black or white, whichever reads better on top of hex.
// Unparseable input is treated like ParseHex would.
func TextOn(hex string) string {
	rgb := ParseHex(hex)
	c := colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
	_, _, l := c.Hcl()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
