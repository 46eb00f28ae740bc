package mandel

import (
	"fmt"
	"time"
)

// Config holds startup settings. Nothing here can change once a Viewer is
// running; the escape radius is the Threshold constant.
type Config struct {
	// Width and Height are the pixel dimensions of the grid and frame.
	Width  int
	Height int

	// MaxIterations bounds the escape loop.
	MaxIterations int

	// Zoom is the initial zoom. The initial spans are multiplied by it.
	Zoom float64

	// Center is the initial center of the view.
	Center complex128

	// RealSpan and ImagSpan are the extent of the view at zoom 1.
	RealSpan float64
	ImagSpan float64

	// Workers is the number of CPU render strips. Zero means one per CPU.
	Workers int

	// Palette selects the color strategy and PaletteSize its length.
	Palette     PaletteKind
	PaletteSize int

	// Precision selects the sample type when the caller picks the
	// instantiation at runtime.
	Precision Precision

	// ZoomAnchor and PanMode tune input handling.
	ZoomAnchor ZoomAnchor
	PanMode    PanMode

	// FrameInterval paces Viewer.Run.
	FrameInterval time.Duration
}

// DefaultConfig returns the classic full-set view: real [-2, 1],
// imaginary [-1.5, 1.5], 200 iterations, 1080x720 pixels.
func DefaultConfig() Config {
	return Config{
		Width:         1080,
		Height:        720,
		MaxIterations: 200,
		Zoom:          1,
		Center:        complex(-0.5, 0),
		RealSpan:      3,
		ImagSpan:      3,
		Palette:       PaletteSmooth,
		PaletteSize:   DefaultPaletteSize,
		Precision:     Float64,
		FrameInterval: time.Second / 60,
	}
}

// Bounds returns the initial view rectangle.
func (c Config) Bounds() Bounds {
	return BoundsAround(c.Center, c.RealSpan*c.Zoom, c.ImagSpan*c.Zoom)
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidConfig, c.MaxIterations)
	case !(c.Zoom > 0):
		return fmt.Errorf("%w: zoom %v must be positive", ErrInvalidConfig, c.Zoom)
	case !(c.RealSpan > 0) || !(c.ImagSpan > 0):
		return fmt.Errorf("%w: spans %v x %v", ErrInvalidConfig, c.RealSpan, c.ImagSpan)
	case c.PaletteSize <= 0:
		return fmt.Errorf("%w: palette size %d", ErrInvalidConfig, c.PaletteSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}
