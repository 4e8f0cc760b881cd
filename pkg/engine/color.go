package engine

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with each channel in [0,255]
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Red    = Color{255, 0, 0}
	Orange = Color{255, 165, 0}
	Yellow = Color{255, 255, 0}
	Green  = Color{0, 255, 0}
	Blue   = Color{0, 0, 255}
	Indigo = Color{75, 0, 130}
	Violet = Color{238, 130, 238}
)

// RGB builds a Color from UI input, clamping each channel into [0,255]
func RGB(r, g, b int) Color {
	return Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

// ParseColor parses a "#rrggbb" hex string
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the colour as "#rrggbb"
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// IsLight reports whether dark text reads better than light text on c
func (c Color) IsLight() bool {
	_, _, l := c.colorful().Hsl()
	return l > 0.5
}

// Darken subtracts delta from every channel, stopping at zero
func (c Color) Darken(delta int) Color {
	return RGB(int(c.R)-delta, int(c.G)-delta, int(c.B)-delta)
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
