// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenview

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/render"
)

// maxShaderIterations bounds the Kage loop, which needs a constant limit.
const maxShaderIterations = 1000

// kageSource evaluates the escape count per pixel. The grid is uniform, so
// the texture is reduced to its two corners and sampled by interpolation.
// The palette arrives as source image 0, packed row-major.
var kageSource = []byte(`//kage:unit pixels

package main

var Min vec2
var Max vec2
var Size vec2
var MaxIterations float
var Threshold float
var PaletteSize float
var InsideColor vec4

func paletteAt(i float) vec4 {
	row := floor(i / Size.x)
	col := i - row*Size.x
	return imageSrc0At(imageSrc0Origin() + vec2(col+0.5, row+0.5))
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	t := floor(dstPos.xy) / max(Size-1, vec2(1))
	c := vec2(mix(Min.x, Max.x, t.x), mix(Max.y, Min.y, t.y))
	z := c
	n := 0.0
	for i := 0; i < 1000; i++ {
		if n >= MaxIterations || dot(z, z) > Threshold*Threshold {
			break
		}
		z = vec2(z.x*z.x-z.y*z.y, 2*z.x*z.y) + c
		n += 1
	}
	if n >= MaxIterations {
		return InsideColor
	}
	idx := clamp(floor(n*(PaletteSize-1)/max(MaxIterations, 1)), 0, PaletteSize-1)
	return paletteAt(idx)
}
`)

// ShaderSink is a render.TextureSink that keeps what the Kage shader needs:
// the corners of the grid texture and every texel of the palette texture.
type ShaderSink struct {
	mu      sync.Mutex
	min     [2]float32
	max     [2]float32
	size    [2]int
	palette []byte // RGBA8 texels, as uploaded
	ready   bool

	// Owned by the draw goroutine.
	paletteImg  *ebiten.Image
	paletteRev  uint64
	uploadedRev uint64
	shader      *ebiten.Shader
	compErr     error
}

// NewShaderSink returns an empty sink. The shader is compiled on first draw.
func NewShaderSink() *ShaderSink {
	return &ShaderSink{}
}

// WriteTexture implements render.TextureSink.
func (s *ShaderSink) WriteTexture(w *render.TextureWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch w.Texture.Label {
	case render.GridTextureLabel:
		if !fullWrite(w) {
			return fmt.Errorf("ebitenview: partial grid write %v", w.Region())
		}
		texels := render.DecodeGrid(w.Data)
		n := len(texels)
		if n < 2 {
			return nil
		}
		s.min = [2]float32{texels[0], texels[1]}
		s.max = [2]float32{texels[n-2], texels[n-1]}
		s.size = [2]int{int(w.Size.Width), int(w.Size.Height)}
		s.ready = true
	case render.PaletteTextureLabel:
		if !fullWrite(w) {
			return fmt.Errorf("ebitenview: partial palette write %v", w.Region())
		}
		s.palette = append(s.palette[:0], w.Data[:len(w.Data)/4*4]...)
		s.paletteRev++
	default:
		return fmt.Errorf("%w: %q", render.ErrUnknownTexture, w.Texture.Label)
	}
	return nil
}

func fullWrite(w *render.TextureWrite) bool {
	return w.Origin.X == 0 && w.Origin.Y == 0 &&
		w.Size.Width == w.Texture.Size.Width && w.Size.Height == w.Texture.Size.Height
}

func texelRGB(b []byte) mandel.RGB {
	return mandel.RGB{R: float64(b[0]) / 255, G: float64(b[1]) / 255, B: float64(b[2]) / 255}
}

// Corners returns the smallest and largest sample of the last grid write.
func (s *ShaderSink) Corners() (lo, hi complex64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return complex(s.min[0], s.min[1]), complex(s.max[0], s.max[1]), s.ready
}

// Palette returns the colors of the last palette write.
func (s *ShaderSink) Palette() mandel.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := make(mandel.Palette, len(s.palette)/4)
	for i := range p {
		p[i] = texelRGB(s.palette[4*i:])
	}
	return p
}

// packPalette lays the palette texels out row-major in a w x h RGBA8
// buffer, the size of the draw rectangle the shader reads it through. A
// palette longer than w*h is resampled evenly. It returns the buffer and
// the number of entries in it.
func packPalette(texels []byte, w, h int) ([]byte, int) {
	buf := make([]byte, 4*w*h)
	n := len(texels) / 4
	if n == 0 || w*h == 0 {
		return buf, 0
	}
	if n <= w*h {
		copy(buf, texels[:4*n])
		return buf, n
	}
	m := w * h
	for i := range m {
		src := 0
		if m > 1 {
			src = i * (n - 1) / (m - 1)
		}
		copy(buf[4*i:4*i+4], texels[4*src:4*src+4])
	}
	return buf, m
}

// uniforms builds the shader parameters for one draw.
func (s *ShaderSink) uniforms(maxIter, paletteSize int, inside mandel.RGB) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"Min":           []float32{s.min[0], s.min[1]},
		"Max":           []float32{s.max[0], s.max[1]},
		"Size":          []float32{float32(s.size[0]), float32(s.size[1])},
		"MaxIterations": float32(min(maxIter, maxShaderIterations)),
		"Threshold":     float32(mandel.Threshold),
		"PaletteSize":   float32(max(paletteSize, 1)),
		"InsideColor":   vec4(inside),
	}
}

func vec4(c mandel.RGB) []float32 {
	return []float32{float32(c.R), float32(c.G), float32(c.B), 1}
}

// paletteImage returns the packed palette image for a w x h draw, writing
// it again only when the palette or the size changed.
func (s *ShaderSink) paletteImage(w, h int) (*ebiten.Image, int) {
	s.mu.Lock()
	rev := s.paletteRev
	buf, n := packPalette(s.palette, w, h)
	s.mu.Unlock()

	if s.paletteImg != nil {
		if b := s.paletteImg.Bounds(); b.Dx() != w || b.Dy() != h {
			s.paletteImg.Deallocate()
			s.paletteImg = nil
		}
	}
	if s.paletteImg == nil {
		s.paletteImg = ebiten.NewImage(w, h)
		s.uploadedRev = ^uint64(0)
	}
	if s.uploadedRev != rev {
		s.paletteImg.WritePixels(buf)
		s.uploadedRev = rev
	}
	return s.paletteImg, n
}

// Draw evaluates the set into screen. It draws nothing until a grid has
// been written.
func (s *ShaderSink) Draw(screen *ebiten.Image, maxIter int, inside mandel.RGB) error {
	if s.shader == nil && s.compErr == nil {
		s.shader, s.compErr = ebiten.NewShader(kageSource)
		if s.compErr != nil {
			s.compErr = fmt.Errorf("ebitenview: compile shader: %w", s.compErr)
		}
	}
	if s.compErr != nil {
		return s.compErr
	}

	s.mu.Lock()
	ready, w, h := s.ready, s.size[0], s.size[1]
	s.mu.Unlock()
	if !ready {
		return nil
	}

	img, n := s.paletteImage(w, h)
	opts := &ebiten.DrawRectShaderOptions{
		Uniforms: s.uniforms(maxIter, n, inside),
	}
	opts.Images[0] = img
	screen.DrawRectShader(w, h, s.shader, opts)
	return nil
}

var _ render.TextureSink = (*ShaderSink)(nil)
