package mandel

import "fmt"

// Frame is everything a renderer reads for one pass.
//
// Grid and Palette are shared read-only with every render worker. The
// caller must not mutate them until Render returns.
type Frame[F Float] struct {
	// Grid supplies one complex sample per pixel.
	Grid *Grid[F]

	// Revision increases every time the grid changes. GPU renderers skip the
	// texture upload when it has not moved since the last frame.
	Revision uint64

	// Palette maps escape counts to colors.
	Palette Palette

	// MaxIterations bounds the escape loop.
	MaxIterations int

	// Inside, when non-nil, colors points that never escaped. Otherwise the
	// palette's last entry is used.
	Inside *RGB

	// Shade overrides palette lookup when set.
	Shade func(count, maxIter int) RGB

	// Target receives the image. Grid row 0 lands on the bottom pixmap row.
	Target *Pixmap
}

// Color returns the color for an escape count.
func (f *Frame[F]) Color(count int) RGB {
	if f.Shade != nil {
		return f.Shade(count, f.MaxIterations)
	}
	if count >= f.MaxIterations && f.Inside != nil {
		return *f.Inside
	}
	return f.Palette.Lookup(count, f.MaxIterations)
}

// Validate checks that the frame can be rendered.
func (f *Frame[F]) Validate() error {
	if f == nil || f.Grid == nil {
		return fmt.Errorf("%w: frame without grid", ErrInvalidConfig)
	}
	if f.Target == nil {
		return fmt.Errorf("%w: frame without target", ErrInvalidConfig)
	}
	if f.Grid.Width() != f.Target.Width() || f.Grid.Height() != f.Target.Height() {
		return fmt.Errorf("%w: grid %dx%d, target %dx%d", ErrDimensionMismatch,
			f.Grid.Width(), f.Grid.Height(), f.Target.Width(), f.Target.Height())
	}
	return nil
}

// Renderer turns a Frame into pixels, or into whatever the GPU consumes.
//
// Render blocks until the frame is complete; no partial frame is ever
// visible to the caller.
type Renderer[F Float] interface {
	// Render draws one frame.
	Render(f *Frame[F]) error

	// Close releases workers and device resources. Close waits for any
	// in-flight frame.
	Close() error
}

// RendererInfo is implemented by renderers that can describe themselves.
type RendererInfo interface {
	Name() string
	IsGPU() bool
}
