// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/mandel"
)

var (
	// ErrNilHandle is returned by NewGPURenderer for a nil device handle.
	ErrNilHandle = errors.New("render: nil device handle")

	// ErrTextureTooLarge is returned when the grid exceeds the device limit.
	ErrTextureTooLarge = errors.New("render: grid exceeds max texture size")
)

// GPURenderer keeps the device-side copy of the grid in sync and leaves
// escape evaluation to the shader.
//
// Every frame whose Revision differs from the last uploaded one rewrites
// the grid texture over [0, 0, width, height]. The palette texture is
// written on the first frame and whenever the palette length changes.
// The frame's Target pixmap is not touched on this path.
//
// Example:
//
//	sink := host.TextureSink() // backed by the host's queue
//	gpu, err := render.NewGPURenderer[float32](render.NullDeviceHandle{}, sink)
//	if err != nil {
//	    return err
//	}
//	v, err := mandel.NewViewer(cfg, mandel.WithRenderer[float32](gpu))
type GPURenderer[F mandel.Float] struct {
	handle DeviceHandle
	sink   TextureSink
	caps   DeviceCapabilities
	shader *Shader

	mu              sync.Mutex
	fallback        *mandel.SoftwareRenderer[F]
	warnedFallback  bool
	uploaded        bool
	uploadedRev     uint64
	paletteLen      int
	buf             []byte
	uploads         int
	closed          bool
	fallbackWorkers int
}

// GPUOption configures a GPURenderer.
type GPUOption func(*gpuOptions)

type gpuOptions struct {
	caps            DeviceCapabilities
	compileShader   bool
	fallbackWorkers int
}

// WithCapabilities overrides the device limits checked before upload.
func WithCapabilities(c DeviceCapabilities) GPUOption {
	return func(o *gpuOptions) { o.caps = c }
}

// WithShaderCompilation compiles the embedded WGSL shader at creation.
// A compile failure is logged and leaves Shader nil; the host can still use
// its own pipeline.
func WithShaderCompilation() GPUOption {
	return func(o *gpuOptions) { o.compileShader = true }
}

// WithFallbackWorkers sets the worker count of the CPU fallback.
func WithFallbackWorkers(n int) GPUOption {
	return func(o *gpuOptions) { o.fallbackWorkers = n }
}

// NewGPURenderer creates a renderer that writes through sink.
//
// The DeviceHandle must be provided by the host; NullDeviceHandle is valid.
// A nil sink selects the CPU fallback for every frame.
func NewGPURenderer[F mandel.Float](handle DeviceHandle, sink TextureSink, opts ...GPUOption) (*GPURenderer[F], error) {
	if handle == nil {
		return nil, ErrNilHandle
	}

	o := gpuOptions{caps: DefaultCapabilities()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &GPURenderer[F]{
		handle:          handle,
		sink:            sink,
		caps:            o.caps,
		fallbackWorkers: o.fallbackWorkers,
	}

	if o.compileShader {
		sh, err := CompileShader()
		if err != nil {
			mandel.Logger().Warn("render: shader compilation failed", slog.Any("err", err))
		} else {
			r.shader = sh
			mandel.Logger().Debug("render: shader compiled", slog.Int("words", len(sh.SPIRV)))
		}
	}

	mandel.Logger().Info("render: gpu renderer created",
		slog.Bool("sink", sink != nil),
		slog.Bool("device", handle.Device() != nil),
		slog.String("surface_format", fmt.Sprint(handle.SurfaceFormat())))
	return r, nil
}

// Name implements mandel.RendererInfo.
func (r *GPURenderer[F]) Name() string { return "gpu" }

// IsGPU implements mandel.RendererInfo. It reports false while the CPU
// fallback is in use.
func (r *GPURenderer[F]) IsGPU() bool { return r.sink != nil }

// DeviceHandle returns the host's device handle.
func (r *GPURenderer[F]) DeviceHandle() DeviceHandle { return r.handle }

// Capabilities returns the limits checked before upload.
func (r *GPURenderer[F]) Capabilities() DeviceCapabilities { return r.caps }

// Shader returns the compiled shader, or nil.
func (r *GPURenderer[F]) Shader() *Shader { return r.shader }

// Uploads returns the number of grid uploads performed.
func (r *GPURenderer[F]) Uploads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploads
}

// Render synchronizes the device textures with the frame.
func (r *GPURenderer[F]) Render(f *mandel.Frame[F]) error {
	if err := f.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return mandel.ErrClosed
	}

	if r.sink == nil {
		return r.renderFallback(f)
	}

	w, h := f.Grid.Width(), f.Grid.Height()
	if w == 0 || h == 0 {
		return nil
	}
	if limit := int(r.caps.MaxTextureSize); limit > 0 && (w > limit || h > limit || len(f.Palette) > limit) {
		return fmt.Errorf("%w: %dx%d, limit %d", ErrTextureTooLarge, w, h, limit)
	}

	if len(f.Palette) > 0 && len(f.Palette) != r.paletteLen {
		if err := r.write(PaletteTextureDescriptor(len(f.Palette)), EncodePalette(f.Palette)); err != nil {
			return err
		}
		r.paletteLen = len(f.Palette)
	}

	if r.uploaded && f.Revision == r.uploadedRev {
		return nil
	}
	r.buf = EncodeGrid(f.Grid, r.buf)
	if err := r.write(GridTextureDescriptor(w, h), r.buf); err != nil {
		return err
	}
	r.uploaded = true
	r.uploadedRev = f.Revision
	r.uploads++

	mandel.Logger().Debug("render: grid uploaded",
		slog.Uint64("revision", f.Revision),
		slog.Int("bytes", len(r.buf)))
	return nil
}

func (r *GPURenderer[F]) write(desc TextureDescriptor, data []byte) error {
	region := image.Rect(0, 0, int(desc.Size.Width), int(desc.Size.Height))
	tw, err := NewTextureWrite(desc, region, data)
	if err != nil {
		return err
	}
	if err := r.sink.WriteTexture(tw); err != nil {
		return fmt.Errorf("render: write %s: %w", desc.Label, err)
	}
	return nil
}

func (r *GPURenderer[F]) renderFallback(f *mandel.Frame[F]) error {
	if r.fallback == nil {
		r.fallback = mandel.NewSoftwareRenderer[F](r.fallbackWorkers)
	}
	if !r.warnedFallback {
		mandel.Logger().Warn("render: no texture sink, using CPU fallback")
		r.warnedFallback = true
	}
	return r.fallback.Render(f)
}

// Close releases the fallback renderer if one was started.
func (r *GPURenderer[F]) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.fallback != nil {
		return r.fallback.Close()
	}
	return nil
}

var (
	_ mandel.Renderer[float32] = (*GPURenderer[float32])(nil)
	_ mandel.RendererInfo      = (*GPURenderer[float64])(nil)
)
