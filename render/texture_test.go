// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/gogpu/mandel"
)

var classic = mandel.Bounds{RealMin: -2, RealMax: 1, ImagMin: -1.5, ImagMax: 1.5}

func newGrid[F mandel.Float](t *testing.T, w, h int) *mandel.Grid[F] {
	t.Helper()
	g, err := mandel.NewGrid[F](w, h, classic)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) error = %v", w, h, err)
	}
	return g
}

// =============================================================================
// TextureWrite
// =============================================================================

func TestNewTextureWrite(t *testing.T) {
	desc := GridTextureDescriptor(8, 4)
	data := make([]byte, 3*2*8)

	w, err := NewTextureWrite(desc, image.Rect(2, 1, 5, 3), data)
	if err != nil {
		t.Fatalf("NewTextureWrite() error = %v", err)
	}
	if w.Origin.X != 2 || w.Origin.Y != 1 {
		t.Errorf("Origin = %+v, want (2,1)", w.Origin)
	}
	if w.Layout.BytesPerRow != 24 || w.Layout.RowsPerImage != 2 {
		t.Errorf("Layout = %+v, want 24 bytes x 2 rows", w.Layout)
	}
	if w.Size.Width != 3 || w.Size.Height != 2 || w.Size.DepthOrArrayLayers != 1 {
		t.Errorf("Size = %+v, want 3x2x1", w.Size)
	}
	if w.Region() != image.Rect(2, 1, 5, 3) {
		t.Errorf("Region() = %v", w.Region())
	}
}

func TestNewTextureWrite_Errors(t *testing.T) {
	desc := GridTextureDescriptor(8, 4)

	tests := []struct {
		name   string
		region image.Rectangle
		size   int
		want   error
	}{
		{"empty region", image.Rect(0, 0, 0, 4), 0, ErrRegionOutOfBounds},
		{"outside", image.Rect(4, 0, 9, 4), 5 * 4 * 8, ErrRegionOutOfBounds},
		{"short data", image.Rect(0, 0, 8, 4), 10, ErrDataSize},
		{"long data", image.Rect(0, 0, 1, 1), 16, ErrDataSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTextureWrite(desc, tt.region, make([]byte, tt.size))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

// =============================================================================
// Encoding
// =============================================================================

func TestEncodeGrid_RoundTrip(t *testing.T) {
	g := newGrid[float64](t, 5, 3)

	data := EncodeGrid(g, nil)
	if len(data) != 5*3*8 {
		t.Fatalf("len = %d, want %d", len(data), 5*3*8)
	}

	got := DecodeGrid(data)
	for i, v := range g.Samples() {
		if got[i] != float32(v) {
			t.Fatalf("sample %d = %v, want %v", i, got[i], float32(v))
		}
	}
}

func TestEncodeGrid_ReusesBuffer(t *testing.T) {
	g := newGrid[float32](t, 4, 4)
	buf := make([]byte, 0, 1024)

	out := EncodeGrid(g, buf)
	if &out[0] != &buf[:1][0] {
		t.Error("EncodeGrid allocated although dst had capacity")
	}
}

func TestEncodePalette(t *testing.T) {
	p := mandel.Palette{mandel.Black, mandel.White, mandel.Blue}
	data := EncodePalette(p)

	want := []byte{
		0, 0, 0, 255,
		255, 255, 255, 255,
		0, 128, 255, 255,
	}
	if string(data) != string(want) {
		t.Errorf("EncodePalette = %v, want %v", data, want)
	}
}

// =============================================================================
// MemorySink
// =============================================================================

func TestMemorySink_FullWrite(t *testing.T) {
	sink := NewMemorySink()
	desc := PaletteTextureDescriptor(2)
	w, err := NewTextureWrite(desc, image.Rect(0, 0, 2, 1), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.WriteTexture(w); err != nil {
		t.Fatalf("WriteTexture() error = %v", err)
	}

	got, data, err := sink.Texture(PaletteTextureLabel)
	if err != nil {
		t.Fatal(err)
	}
	if got != desc {
		t.Errorf("descriptor = %+v, want %+v", got, desc)
	}
	if string(data) != string([]byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("data = %v", data)
	}
	if sink.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", sink.Writes())
	}
}

func TestMemorySink_SubRegion(t *testing.T) {
	sink := NewMemorySink()
	desc := PaletteTextureDescriptor(4)
	desc.Size.Height = 2

	w, err := NewTextureWrite(desc, image.Rect(1, 1, 3, 2), []byte{9, 9, 9, 9, 8, 8, 8, 8})
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.WriteTexture(w); err != nil {
		t.Fatal(err)
	}

	_, data, _ := sink.Texture(PaletteTextureLabel)
	// Row 1 starts at 16; texel 1 at 20.
	for i, b := range data {
		var want byte
		switch {
		case i >= 20 && i < 24:
			want = 9
		case i >= 24 && i < 28:
			want = 8
		}
		if b != want {
			t.Fatalf("byte %d = %d, want %d", i, b, want)
		}
	}
}

func TestMemorySink_UnknownTexture(t *testing.T) {
	sink := NewMemorySink()
	if _, _, err := sink.Texture("missing"); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("error = %v, want ErrUnknownTexture", err)
	}
}

func TestMemorySink_Concurrent(t *testing.T) {
	sink := NewMemorySink()
	desc := PaletteTextureDescriptor(1)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(b byte) {
			defer wg.Done()
			w, err := NewTextureWrite(desc, image.Rect(0, 0, 1, 1), []byte{b, b, b, b})
			if err != nil {
				t.Error(err)
				return
			}
			if err := sink.WriteTexture(w); err != nil {
				t.Error(err)
			}
		}(byte(i))
	}
	wg.Wait()

	if sink.Writes() != 16 {
		t.Errorf("Writes() = %d, want 16", sink.Writes())
	}
}
