// Package overlay draws screen rectangles on a 2D surface and saves
// snapshots of it.
package overlay

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}

	// DefaultColor is used for rectangles when none is configured.
	DefaultColor = ColorBlack.WithAlpha(0.5)
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Hex formats the color as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

func to8(f float32) uint8 {
	return uint8(min(max(f, 0), 1)*255 + 0.5)
}
