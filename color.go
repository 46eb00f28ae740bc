package mandel

import (
	"image/color"
)

// RGB is an opaque color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
	Blue  = RGB{0, 0.5, 1}
	Red   = RGB{1, 0.5, 0}
)

// Color converts to the standard library color type.
func (c RGB) Color() color.Color {
	return color.NRGBA{R: c.r8(), G: c.g8(), B: c.b8(), A: 255}
}

// FromColor converts a standard library color, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
	}
}

// Lerp linearly interpolates between two colors.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

func (c RGB) r8() uint8 { return uint8(clamp255(c.R * 255)) }
func (c RGB) g8() uint8 { return uint8(clamp255(c.G * 255)) }
func (c RGB) b8() uint8 { return uint8(clamp255(c.B * 255)) }

// clamp255 clamps a value to [0, 255] and rounds to nearest.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x + 0.5
}
