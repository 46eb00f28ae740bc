package mandel

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// referenceRender colors every pixel on the calling goroutine.
func referenceRender[F Float](f *Frame[F]) *Pixmap {
	w, h := f.Grid.Width(), f.Grid.Height()
	pm := NewPixmap(w, h)
	for y := range h {
		for x := range w {
			re, im := f.Grid.At(x, y)
			pm.SetPixel(x, h-1-y, f.Color(EscapeCount(re, im, f.MaxIterations)))
		}
	}
	return pm
}

func testFrame[F Float](t *testing.T, w, h int) *Frame[F] {
	t.Helper()
	return &Frame[F]{
		Grid:          mustGrid[F](t, w, h, classic),
		Palette:       GradientPalette(DefaultPaletteSize, Blue, Red),
		MaxIterations: 64,
		Target:        NewPixmap(w, h),
	}
}

func TestSoftwareRenderer_MatchesReference(t *testing.T) {
	for _, workers := range []int{1, 3, 4, 7, 0, 200} {
		r := NewSoftwareRenderer[float64](workers)
		f := testFrame[float64](t, 61, 37)

		if err := r.Render(f); err != nil {
			t.Fatalf("workers=%d: Render() error = %v", workers, err)
		}
		want := referenceRender(f)
		if !bytes.Equal(f.Target.Data(), want.Data()) {
			t.Errorf("workers=%d: image differs from single-threaded reference", workers)
		}
		_ = r.Close()
	}
}

func TestSoftwareRenderer_Float32(t *testing.T) {
	r := NewSoftwareRenderer[float32](4)
	defer func() { _ = r.Close() }()

	f := testFrame[float32](t, 40, 30)
	if err := r.Render(f); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.Target.Data(), referenceRender(f).Data()) {
		t.Error("float32 image differs from reference")
	}
}

func TestSoftwareRenderer_Orientation(t *testing.T) {
	r := NewSoftwareRenderer[float64](2)
	defer func() { _ = r.Close() }()

	// One column, two rows: grid row 0 is (0, -10), grid row 1 is the origin.
	b := Bounds{RealMin: 0, RealMax: 0, ImagMin: -10, ImagMax: 10}
	inside := White
	f := &Frame[float64]{
		Grid:          mustGrid[float64](t, 1, 2, b),
		Palette:       GrayscalePalette(2),
		MaxIterations: 10,
		Inside:        &inside,
		Target:        NewPixmap(1, 2),
	}
	if err := r.Render(f); err != nil {
		t.Fatal(err)
	}

	if got := f.Target.GetPixel(0, 0); got != White {
		t.Errorf("top pixel = %+v, want the origin (white)", got)
	}
	if got := f.Target.GetPixel(0, 1); got != Black {
		t.Errorf("bottom pixel = %+v, want the escaped minimum row (black)", got)
	}
}

func TestSoftwareRenderer_InsideColor(t *testing.T) {
	r := NewSoftwareRenderer[float64](3)
	defer func() { _ = r.Close() }()

	// A single row at imag 0 through the real axis: -1.5 .. 1.0.
	b := Bounds{RealMin: -1.5, RealMax: 1.5, ImagMin: 0, ImagMax: 0}
	g := mustGrid[float64](t, 6, 1, b) // reals -1.5 -1 -0.5 0 0.5 1
	inside := RGB{0, 1, 0}
	f := &Frame[float64]{
		Grid:          g,
		Palette:       GrayscalePalette(DefaultPaletteSize),
		MaxIterations: 100,
		Inside:        &inside,
		Target:        NewPixmap(6, 1),
	}
	if err := r.Render(f); err != nil {
		t.Fatal(err)
	}

	for x, wantInside := range []bool{true, true, true, true, false, false} {
		got := f.Target.GetPixel(x, 0)
		if (got == RGB{0, 1, 0}) != wantInside {
			t.Errorf("pixel %d = %+v, inside = %v", x, got, wantInside)
		}
	}
}

func TestSoftwareRenderer_StripFailureIsIsolated(t *testing.T) {
	r := NewSoftwareRenderer[float64](4)
	defer func() { _ = r.Close() }()

	// Reals -6 .. 1: columns 0-3 escape immediately, columns 4-7 do not.
	b := Bounds{RealMin: -6, RealMax: 2, ImagMin: 0, ImagMax: 0}
	f := &Frame[float64]{
		Grid:          mustGrid[float64](t, 8, 2, b),
		MaxIterations: 50,
		Shade: func(count, _ int) RGB {
			if count == 0 {
				panic("shade failure")
			}
			return White
		},
		Target: NewPixmap(8, 2),
	}

	err := r.Render(f)
	if err == nil || !strings.Contains(err.Error(), "shade failure") {
		t.Fatalf("Render() error = %v, want the strip panic", err)
	}

	for x := range 8 {
		want := Black
		if x >= 4 {
			want = White
		}
		for y := range 2 {
			if got := f.Target.GetPixel(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestSoftwareRenderer_Errors(t *testing.T) {
	r := NewSoftwareRenderer[float64](2)

	f := testFrame[float64](t, 10, 10)
	f.Target = NewPixmap(5, 10)
	if err := r.Render(f); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("mismatched target error = %v", err)
	}
	if err := r.Render(&Frame[float64]{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty frame error = %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := r.Render(testFrame[float64](t, 4, 4)); !errors.Is(err, ErrClosed) {
		t.Errorf("Render() after Close error = %v, want ErrClosed", err)
	}
}

func TestSoftwareRenderer_EmptyGrid(t *testing.T) {
	r := NewSoftwareRenderer[float64](2)
	defer func() { _ = r.Close() }()

	f := testFrame[float64](t, 0, 0)
	if err := r.Render(f); err != nil {
		t.Errorf("Render(empty) error = %v", err)
	}
}

func BenchmarkSoftwareRenderer(b *testing.B) {
	g, _ := NewGrid[float64](320, 180, classic)
	f := &Frame[float64]{
		Grid:          g,
		Palette:       GradientPalette(DefaultPaletteSize, Blue, Red),
		MaxIterations: 200,
		Target:        NewPixmap(320, 180),
	}
	r := NewSoftwareRenderer[float64](0)
	defer func() { _ = r.Close() }()

	for b.Loop() {
		_ = r.Render(f)
	}
}
