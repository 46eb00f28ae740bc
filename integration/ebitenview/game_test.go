// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenview

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/render"
)

func newViewer(t *testing.T) *mandel.Viewer[float64] {
	t.Helper()
	cfg := mandel.DefaultConfig()
	cfg.Width, cfg.Height = 32, 24
	cfg.MaxIterations = 20
	v, err := mandel.NewViewer[float64](cfg)
	if err != nil {
		t.Fatalf("NewViewer() error = %v", err)
	}
	t.Cleanup(func() { _ = v.Close() })
	return v
}

// =============================================================================
// Input
// =============================================================================

func TestInputState_Events(t *testing.T) {
	s := inputState{
		wheelY:         -1,
		cursorX:        10,
		cursorY:        4,
		keys:           []mandel.Key{mandel.KeyLeft, mandel.KeyUp},
		closeRequested: true,
	}
	events := s.events()

	want := []mandel.Event{
		mandel.MouseScrolled{Delta: -1, X: 10, Y: 4},
		mandel.KeyPressed{Key: mandel.KeyLeft},
		mandel.KeyPressed{Key: mandel.KeyUp},
		mandel.Closed{},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, events[i], want[i])
		}
	}
}

func TestInputState_Idle(t *testing.T) {
	if events := (inputState{cursorX: 5}).events(); len(events) != 0 {
		t.Errorf("idle tick produced %v", events)
	}
}

func TestRepeats(t *testing.T) {
	tests := []struct {
		ticks int
		want  bool
	}{
		{0, false},
		{1, true},
		{2, false},
		{repeatDelay - 1, false},
		{repeatDelay, true},
		{repeatDelay + 1, false},
		{repeatDelay + repeatInterval, true},
	}
	for _, tt := range tests {
		if got := repeats(tt.ticks); got != tt.want {
			t.Errorf("repeats(%d) = %v, want %v", tt.ticks, got, tt.want)
		}
	}
}

func TestPanKeys_CoverAllDirections(t *testing.T) {
	seen := map[mandel.Key]int{}
	for _, pk := range panKeys {
		seen[pk.dir]++
	}
	for _, k := range []mandel.Key{mandel.KeyLeft, mandel.KeyRight, mandel.KeyUp, mandel.KeyDown} {
		if seen[k] != 2 {
			t.Errorf("%v bound to %d keys, want 2", k, seen[k])
		}
	}
}

// =============================================================================
// Game
// =============================================================================

func TestNew_NilViewer(t *testing.T) {
	if _, err := New[float64](nil); !errors.Is(err, ErrNilViewer) {
		t.Errorf("New(nil) error = %v, want ErrNilViewer", err)
	}
}

func TestGame_Layout(t *testing.T) {
	g, err := New(newViewer(t))
	if err != nil {
		t.Fatal(err)
	}
	w, h := g.Layout(1920, 1080)
	if w != 32 || h != 24 {
		t.Errorf("Layout() = %dx%d, want 32x24", w, h)
	}
}

func TestGame_UpdateStepsViewer(t *testing.T) {
	v := newViewer(t)
	g, _ := New(v)

	ticks := []inputState{
		{},
		{wheelY: 1},
		{},
		{keys: []mandel.Key{mandel.KeyRight}},
	}
	i := 0
	g.poll = func() inputState { s := ticks[i]; i++; return s }

	for range ticks {
		if err := g.Update(); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	// First frame, zoom and pan each render; the idle tick does not.
	if got := v.Stats().Frames; got != 3 {
		t.Errorf("Frames = %d, want 3", got)
	}
	if got := v.View().Zoom; got != mandel.ZoomInFactor {
		t.Errorf("Zoom = %v, want %v", got, mandel.ZoomInFactor)
	}
	if !g.dirty {
		t.Error("Game not marked dirty after a redraw")
	}
}

func TestGame_UpdateTerminatesOnClose(t *testing.T) {
	g, _ := New(newViewer(t))
	g.poll = func() inputState { return inputState{closeRequested: true} }

	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() error = %v, want ebiten.Termination", err)
	}
}

func TestGame_InsideColorDefaults(t *testing.T) {
	v := newViewer(t)
	g, _ := New(v)
	if *g.opts.inside != v.Frame().Palette.Last() {
		t.Errorf("inside = %v, want palette end", *g.opts.inside)
	}

	g, _ = New(v, WithInsideColor(mandel.Red))
	if *g.opts.inside != mandel.Red {
		t.Errorf("inside = %v, want red", *g.opts.inside)
	}
}

// =============================================================================
// ShaderSink
// =============================================================================

func TestShaderSink_GridCorners(t *testing.T) {
	grid, err := mandel.NewGrid[float32](8, 6, mandel.Bounds{RealMin: -2, RealMax: 1, ImagMin: -1.5, ImagMax: 1.5})
	if err != nil {
		t.Fatal(err)
	}

	sink := NewShaderSink()
	if _, _, ok := sink.Corners(); ok {
		t.Fatal("Corners() ready before any write")
	}

	w, err := render.NewTextureWrite(render.GridTextureDescriptor(8, 6), image.Rect(0, 0, 8, 6), render.EncodeGrid(grid, nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.WriteTexture(w); err != nil {
		t.Fatalf("WriteTexture() error = %v", err)
	}

	lo, hi, ok := sink.Corners()
	if !ok {
		t.Fatal("Corners() not ready after a grid write")
	}
	s := grid.Samples()
	if real(lo) != s[0] || imag(lo) != s[1] {
		t.Errorf("lo = %v, want (%v,%v)", lo, s[0], s[1])
	}
	if real(hi) != s[len(s)-2] || imag(hi) != s[len(s)-1] {
		t.Errorf("hi = %v, want (%v,%v)", hi, s[len(s)-2], s[len(s)-1])
	}

	u := sink.uniforms(5000, 256, mandel.Black)
	if got := u["MaxIterations"].(float32); got != maxShaderIterations {
		t.Errorf("MaxIterations uniform = %v, want cap %d", got, maxShaderIterations)
	}
	if got := u["Size"].([]float32); got[0] != 8 || got[1] != 6 {
		t.Errorf("Size uniform = %v", got)
	}
}

func TestShaderSink_Palette(t *testing.T) {
	for _, kind := range []mandel.PaletteKind{mandel.PalettePolynomial, mandel.PaletteRandom, mandel.PaletteSmooth} {
		t.Run(kind.String(), func(t *testing.T) {
			pal, err := mandel.NewPalette(kind, 64)
			if err != nil {
				t.Fatal(err)
			}
			sink := NewShaderSink()
			w, err := render.NewTextureWrite(render.PaletteTextureDescriptor(len(pal)), image.Rect(0, 0, len(pal), 1), render.EncodePalette(pal))
			if err != nil {
				t.Fatal(err)
			}
			if err := sink.WriteTexture(w); err != nil {
				t.Fatal(err)
			}

			got := sink.Palette()
			if len(got) != len(pal) {
				t.Fatalf("Palette() has %d entries, want %d", len(got), len(pal))
			}
			for i := range pal {
				if got[i].Color() != pal[i].Color() {
					t.Errorf("entry %d = %v, want %v", i, got[i].Color(), pal[i].Color())
				}
			}

			if u := sink.uniforms(10, len(got), mandel.Black); u["PaletteSize"].(float32) != 64 {
				t.Errorf("PaletteSize uniform = %v, want 64", u["PaletteSize"])
			}
		})
	}
}

func TestPackPalette(t *testing.T) {
	texels := render.EncodePalette(mandel.Palette{mandel.Black, mandel.Blue, mandel.Red, mandel.White})

	buf, n := packPalette(texels, 3, 2)
	if n != 4 || len(buf) != 4*3*2 {
		t.Fatalf("packPalette(3x2) = %d bytes, %d entries", len(buf), n)
	}
	if !bytes.Equal(buf[:len(texels)], texels) {
		t.Error("palette not packed row-major from the origin")
	}

	// Fewer pixels than entries: keep both ends.
	buf, n = packPalette(texels, 2, 1)
	if n != 2 {
		t.Fatalf("entries = %d, want 2", n)
	}
	if !bytes.Equal(buf[:4], texels[:4]) || !bytes.Equal(buf[4:8], texels[12:16]) {
		t.Errorf("resampled palette = %v", buf)
	}

	if _, n := packPalette(nil, 4, 4); n != 0 {
		t.Errorf("empty palette packed %d entries", n)
	}
}

func TestShaderSink_RejectsPartialGrid(t *testing.T) {
	sink := NewShaderSink()
	w, err := render.NewTextureWrite(render.GridTextureDescriptor(4, 4), image.Rect(0, 0, 2, 2), make([]byte, 2*2*8))
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.WriteTexture(w); err == nil {
		t.Error("partial grid write accepted")
	}
}

func TestShaderSink_DrivenByGPURenderer(t *testing.T) {
	sink := NewShaderSink()
	gpu, err := render.NewGPURenderer[float32](render.NullDeviceHandle{}, sink)
	if err != nil {
		t.Fatal(err)
	}

	cfg := mandel.DefaultConfig()
	cfg.Width, cfg.Height = 16, 12
	v, err := mandel.NewViewer(cfg, mandel.WithRenderer[float32](gpu))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = v.Close() }()

	if _, err := v.Step(); err != nil {
		t.Fatal(err)
	}
	lo, hi, ok := sink.Corners()
	if !ok {
		t.Fatal("sink not fed by the GPU renderer")
	}
	b := v.Grid().Bounds()
	if float64(real(lo)) != float64(float32(b.RealMin)) || float64(imag(hi)) != float64(float32(b.ImagMax)) {
		t.Errorf("corners %v..%v do not match grid bounds %+v", lo, hi, b)
	}
	if got := sink.Palette(); len(got) != len(v.Frame().Palette) {
		t.Errorf("sink palette has %d entries, want %d", len(got), len(v.Frame().Palette))
	}
}
