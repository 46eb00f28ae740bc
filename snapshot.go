package mandel

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Snapshot renders grid at factor times its resolution on the CPU and
// downsamples the result with a Catmull-Rom filter. A factor below 2 renders
// at native resolution.
//
// The supersampled grid covers the same rectangle as grid, including the
// last row and column of pixels.
func Snapshot[F Float](grid *Grid[F], pal Palette, maxIter, factor, workers int, inside *RGB) (*image.RGBA, error) {
	if grid.Empty() {
		return nil, ErrEmptyGrid
	}
	factor = max(factor, 1)
	w, h := grid.Width(), grid.Height()

	src := grid
	if factor > 1 {
		b := grid.Bounds()
		dr, di := grid.Delta()
		b.RealMax += dr
		b.ImagMax += di
		hi, err := NewGrid[F](w*factor, h*factor, b)
		if err != nil {
			return nil, err
		}
		src = hi
	}

	r := NewSoftwareRenderer[F](workers)
	defer func() { _ = r.Close() }()

	f := &Frame[F]{
		Grid:          src,
		Palette:       pal,
		MaxIterations: maxIter,
		Inside:        inside,
		Target:        NewPixmap(src.Width(), src.Height()),
	}
	if err := r.Render(f); err != nil {
		return nil, fmt.Errorf("mandel: snapshot: %w", err)
	}
	if factor == 1 {
		return f.Target.ToImage(), nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), f.Target, f.Target.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Snapshot renders the current view supersampled by factor.
func (v *Viewer[F]) Snapshot(factor int) (*image.RGBA, error) {
	return Snapshot(v.grid, v.frame.Palette, v.frame.MaxIterations, factor, v.cfg.Workers, v.frame.Inside)
}
