package mandel

import (
	"fmt"
	"log/slog"
)

// Bounds is an axis-aligned rectangle of the complex plane.
type Bounds struct {
	RealMin, RealMax float64
	ImagMin, ImagMax float64
}

// BoundsAround returns the rectangle of the given spans centered on c.
func BoundsAround(c complex128, realSpan, imagSpan float64) Bounds {
	return Bounds{
		RealMin: real(c) - realSpan/2,
		RealMax: real(c) + realSpan/2,
		ImagMin: imag(c) - imagSpan/2,
		ImagMax: imag(c) + imagSpan/2,
	}
}

// RealSpan returns RealMax - RealMin.
func (b Bounds) RealSpan() float64 { return b.RealMax - b.RealMin }

// ImagSpan returns ImagMax - ImagMin.
func (b Bounds) ImagSpan() float64 { return b.ImagMax - b.ImagMin }

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() complex128 {
	return complex((b.RealMin+b.RealMax)/2, (b.ImagMin+b.ImagMax)/2)
}

// Grid holds one complex sample per pixel.
//
// Samples are stored flat and row-major: pixel (x, y) lives at index
// 2*(y*width+x) (real part) and the following index (imaginary part).
// The first pair is the minimum corner and the last pair is the maximum
// corner; every transform depends on that ordering.
//
// A Grid is not safe for concurrent mutation. Renderers only read it, and
// the owner must not transform it while a render pass is in flight.
type Grid[F Float] struct {
	width   int
	height  int
	samples []F
}

// NewGrid builds a width x height grid covering bounds.
//
// The per-axis step is span/size, so pixel (x, y) maps to
// (RealMin + x*dr, ImagMin + y*di) and the maximum edge itself is not sampled.
// A zero width or height produces an empty grid.
func NewGrid[F Float](width, height int, b Bounds) (*Grid[F], error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrDimensionMismatch, width, height)
	}
	g := &Grid[F]{
		width:   width,
		height:  height,
		samples: make([]F, 2*width*height),
	}
	if width == 0 || height == 0 {
		return g, nil
	}

	dr := b.RealSpan() / float64(width)
	di := b.ImagSpan() / float64(height)
	i := 0
	for y := range height {
		im := F(b.ImagMin + float64(y)*di)
		for x := range width {
			g.samples[i] = F(b.RealMin + float64(x)*dr)
			g.samples[i+1] = im
			i += 2
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid[F]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[F]) Height() int { return g.height }

// Len returns the number of samples, width*height.
func (g *Grid[F]) Len() int { return len(g.samples) / 2 }

// Empty reports whether the grid holds no samples.
func (g *Grid[F]) Empty() bool { return len(g.samples) == 0 }

// Samples returns the flat sample slice. Callers must treat it as read-only.
func (g *Grid[F]) Samples() []F { return g.samples }

// At returns the sample bound to pixel (x, y).
func (g *Grid[F]) At(x, y int) (re, im F) {
	i := 2 * (y*g.width + x)
	return g.samples[i], g.samples[i+1]
}

// Clone returns a deep copy.
func (g *Grid[F]) Clone() *Grid[F] {
	c := &Grid[F]{width: g.width, height: g.height, samples: make([]F, len(g.samples))}
	copy(c.samples, g.samples)
	return c
}

// Bounds returns the corner bounds: the first pair as minimum and the last
// pair as maximum. An empty grid returns the zero Bounds.
func (g *Grid[F]) Bounds() Bounds {
	n := len(g.samples)
	if n == 0 {
		return Bounds{}
	}
	return Bounds{
		RealMin: float64(g.samples[0]),
		ImagMin: float64(g.samples[1]),
		RealMax: float64(g.samples[n-2]),
		ImagMax: float64(g.samples[n-1]),
	}
}

// Center returns the midpoint of the corner bounds.
func (g *Grid[F]) Center() complex128 { return g.Bounds().Center() }

// Delta returns the step between neighbouring samples along each axis.
// Single-column or single-row grids report zero along that axis.
func (g *Grid[F]) Delta() (dr, di float64) {
	if g.Empty() {
		return 0, 0
	}
	b := g.Bounds()
	if g.width > 1 {
		dr = b.RealSpan() / float64(g.width-1)
	}
	if g.height > 1 {
		di = b.ImagSpan() / float64(g.height-1)
	}
	return dr, di
}

// AdjustReal adds d to every real component. Imaginary components are
// left untouched.
func (g *Grid[F]) AdjustReal(d F) {
	for i := 0; i < len(g.samples); i += 2 {
		g.samples[i] += d
	}
}

// AdjustImag adds d to every imaginary component. Real components are left
// untouched.
func (g *Grid[F]) AdjustImag(d F) {
	for i := 1; i < len(g.samples); i += 2 {
		g.samples[i] += d
	}
}

// AdjustScaleCentered scales every sample about the midpoint of the corner
// bounds: v' = c + (v-c)*s. A factor below one magnifies the view.
//
// On an empty grid it logs a warning, leaves the grid unchanged and
// returns ErrEmptyGrid.
func (g *Grid[F]) AdjustScaleCentered(s F) error {
	if g.Empty() {
		Logger().Warn("mandel: scale on empty grid ignored", slog.Float64("factor", float64(s)))
		return ErrEmptyGrid
	}
	n := len(g.samples)
	cr := (g.samples[0] + g.samples[n-2]) / 2
	ci := (g.samples[1] + g.samples[n-1]) / 2

	for i := 0; i < n; i += 2 {
		g.samples[i] = (g.samples[i]-cr)*s + cr
		g.samples[i+1] = (g.samples[i+1]-ci)*s + ci
	}
	return nil
}

// RebuildFromView regenerates every sample for a new view.
//
// The current corner spans are divided by scale and re-centered on center.
// Samples are then placed at normalized positions x/(width-1) and
// y/(height-1), so the first and last pairs land exactly on the new corners.
// A single column or row maps to the minimum edge.
//
// On an empty grid it logs a warning and returns ErrEmptyGrid. Pixel
// dimensions that differ from the grid return ErrDimensionMismatch. In both
// cases the grid is unchanged.
func (g *Grid[F]) RebuildFromView(center complex128, scale float64, width, height int) error {
	if g.Empty() {
		Logger().Warn("mandel: rebuild on empty grid ignored",
			slog.Float64("scale", scale))
		return ErrEmptyGrid
	}
	if width != g.width || height != g.height {
		return fmt.Errorf("%w: grid is %dx%d, view is %dx%d",
			ErrDimensionMismatch, g.width, g.height, width, height)
	}

	old := g.Bounds()
	nb := BoundsAround(center, old.RealSpan()/scale, old.ImagSpan()/scale)

	var nx, ny float64
	if width > 1 {
		nx = 1 / float64(width-1)
	}
	if height > 1 {
		ny = 1 / float64(height-1)
	}

	i := 0
	for y := range height {
		im := F(nb.ImagMin + float64(y)*ny*nb.ImagSpan())
		for x := range width {
			g.samples[i] = F(nb.RealMin + float64(x)*nx*nb.RealSpan())
			g.samples[i+1] = im
			i += 2
		}
	}
	return nil
}

// PixelToComplex returns the complex value placed at screen position
// (px, py), using the same normalization as the samples themselves: x/(w-1)
// across, and row h-1-py up from the minimum corner. At integer positions it
// equals the sample At(px, h-1-py) up to rounding.
func (g *Grid[F]) PixelToComplex(px, py float64) complex128 {
	b := g.Bounds()
	re, im := b.RealMin, b.ImagMin
	if g.width > 1 {
		re += px / float64(g.width-1) * b.RealSpan()
	}
	if g.height > 1 {
		im += (float64(g.height-1) - py) / float64(g.height-1) * b.ImagSpan()
	}
	return complex(re, im)
}

// ScreenToComplex maps a screen position to the complex value it shows.
//
// Screen Y grows downward while the imaginary axis grows upward, so the
// imaginary part is measured down from the maximum corner. Positions outside
// [0, width) x [0, height) extrapolate linearly; nothing is clamped.
func (g *Grid[F]) ScreenToComplex(px, py float64, width, height int) complex128 {
	b := g.Bounds()
	if width <= 0 || height <= 0 {
		return complex(b.RealMin, b.ImagMax)
	}
	re := b.RealMin + (px/float64(width))*b.RealSpan()
	im := b.ImagMax - (py/float64(height))*b.ImagSpan()
	return complex(re, im)
}
