// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/mandel"
)

var (
	// ErrRegionOutOfBounds is returned when a write exceeds its texture.
	ErrRegionOutOfBounds = errors.New("render: texture region out of bounds")

	// ErrDataSize is returned when write data does not match the region.
	ErrDataSize = errors.New("render: texture data size mismatch")

	// ErrUnknownTexture is returned by sinks for labels they do not hold.
	ErrUnknownTexture = errors.New("render: unknown texture")
)

// TextureWrite is one queue.writeTexture call: tightly packed rows of
// Data copied into Region of the texture described by Texture.
type TextureWrite struct {
	Texture TextureDescriptor
	Origin  gputypes.Origin3D
	Layout  gputypes.TextureDataLayout
	Size    gputypes.Extent3D
	Data    []byte
}

// Region returns the written rectangle in texel coordinates.
func (w *TextureWrite) Region() image.Rectangle {
	x, y := int(w.Origin.X), int(w.Origin.Y)
	return image.Rect(x, y, x+int(w.Size.Width), y+int(w.Size.Height))
}

// NewTextureWrite prepares a write of data into region of desc.
func NewTextureWrite(desc TextureDescriptor, region image.Rectangle, data []byte) (*TextureWrite, error) {
	full := image.Rect(0, 0, int(desc.Size.Width), int(desc.Size.Height))
	if region.Empty() || !region.In(full) {
		return nil, fmt.Errorf("%w: %v in %v", ErrRegionOutOfBounds, region, full)
	}
	bpt := BytesPerTexel(desc.Format)
	if want := region.Dx() * region.Dy() * bpt; bpt == 0 || len(data) != want {
		return nil, fmt.Errorf("%w: %d bytes for %v", ErrDataSize, len(data), region)
	}

	//nolint:gosec // G115: region is inside a uint32-sized texture
	return &TextureWrite{
		Texture: desc,
		Origin:  gputypes.Origin3D{X: uint32(region.Min.X), Y: uint32(region.Min.Y)},
		Layout: gputypes.TextureDataLayout{
			BytesPerRow:  uint32(region.Dx() * bpt),
			RowsPerImage: uint32(region.Dy()),
		},
		Size: extent(region.Dx(), region.Dy()),
		Data: data,
	}, nil
}

// TextureSink receives texture writes. The host implements it on top of
// its queue; MemorySink keeps the bytes in memory.
//
// The sink must copy Data before WriteTexture returns; the renderer reuses
// the buffer for the next frame.
type TextureSink interface {
	WriteTexture(w *TextureWrite) error
}

// EncodeGrid packs the grid into RG32Float texels, little-endian, in grid
// order. float64 samples are narrowed to float32. dst is reused when large
// enough.
func EncodeGrid[F mandel.Float](g *mandel.Grid[F], dst []byte) []byte {
	samples := g.Samples()
	n := len(samples) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, v := range samples {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(float32(v)))
	}
	return dst
}

// DecodeGrid unpacks RG32Float texels into float32 pairs.
func DecodeGrid(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

// EncodePalette packs the palette into RGBA8Unorm texels.
func EncodePalette(p mandel.Palette) []byte {
	pm := mandel.NewPixmap(len(p), 1)
	for i, c := range p {
		pm.SetPixel(i, 0, c)
	}
	return pm.Data()
}

// MemorySink stores the latest contents of every texture it is written to.
// It is safe for concurrent use.
type MemorySink struct {
	mu       sync.Mutex
	textures map[string]*memoryTexture
	writes   int
}

type memoryTexture struct {
	desc TextureDescriptor
	data []byte
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{textures: make(map[string]*memoryTexture)}
}

// WriteTexture implements TextureSink.
func (s *MemorySink) WriteTexture(w *TextureWrite) error {
	bpt := BytesPerTexel(w.Texture.Format)
	if bpt == 0 {
		return fmt.Errorf("%w: format %v", ErrDataSize, w.Texture.Format)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tex, ok := s.textures[w.Texture.Label]
	if !ok || tex.desc != w.Texture {
		tex = &memoryTexture{
			desc: w.Texture,
			data: make([]byte, int(w.Texture.Size.Width)*int(w.Texture.Size.Height)*bpt),
		}
		s.textures[w.Texture.Label] = tex
	}

	r := w.Region()
	stride := int(w.Texture.Size.Width) * bpt
	row := int(w.Layout.BytesPerRow)
	for y := 0; y < r.Dy(); y++ {
		dst := (r.Min.Y+y)*stride + r.Min.X*bpt
		copy(tex.data[dst:dst+row], w.Data[y*row:(y+1)*row])
	}
	s.writes++
	return nil
}

// Texture returns a copy of a texture's contents.
func (s *MemorySink) Texture(label string) (TextureDescriptor, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tex, ok := s.textures[label]
	if !ok {
		return TextureDescriptor{}, nil, fmt.Errorf("%w: %q", ErrUnknownTexture, label)
	}
	return tex.desc, append([]byte(nil), tex.data...), nil
}

// Writes returns the number of writes received.
func (s *MemorySink) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

var _ TextureSink = (*MemorySink)(nil)
