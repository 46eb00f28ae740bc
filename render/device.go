// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The renderer RECEIVES the device from the host, it does NOT create one.
// Device and queue lifetime, surface configuration and pipeline creation
// all stay with the host. A headless host passes NullDeviceHandle.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// Texture labels used by the GPU path.
const (
	GridTextureLabel    = "mandel.grid"
	PaletteTextureLabel = "mandel.palette"
)

// TextureDescriptor describes a texture the GPU path writes to.
// This mirrors the WebGPU GPUTextureDescriptor fields the path needs.
type TextureDescriptor struct {
	// Label identifies the texture to the sink.
	Label string

	// Size is the full texture extent.
	Size gputypes.Extent3D

	// Dimension is always 2D for this path.
	Dimension gputypes.TextureDimension

	// Format is the texel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage
}

// GridTextureDescriptor describes the RG32Float sample texture: one texel
// per pixel, real part in R and imaginary part in G.
func GridTextureDescriptor(width, height int) TextureDescriptor {
	return TextureDescriptor{
		Label:     GridTextureLabel,
		Size:      extent(width, height),
		Dimension: gputypes.TextureDimension2D,
		Format:    gputypes.TextureFormatRG32Float,
		Usage:     gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	}
}

// PaletteTextureDescriptor describes the n x 1 RGBA8Unorm palette texture.
func PaletteTextureDescriptor(n int) TextureDescriptor {
	return TextureDescriptor{
		Label:     PaletteTextureLabel,
		Size:      extent(n, 1),
		Dimension: gputypes.TextureDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Usage:     gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	}
}

func extent(width, height int) gputypes.Extent3D {
	//nolint:gosec // G115: dimensions are validated non-negative by the caller
	return gputypes.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}
}

// BytesPerTexel returns the texel size of the formats this path writes, or
// zero for any other format.
func BytesPerTexel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatRG32Float:
		return 8
	case gputypes.TextureFormatRGBA8Unorm:
		return 4
	}
	return 0
}

// DeviceCapabilities describes the limits the GPU path checks before
// uploading.
type DeviceCapabilities struct {
	// MaxTextureSize is the maximum texture dimension supported.
	MaxTextureSize uint32

	// DeviceName is the GPU device name, for logging.
	DeviceName string
}

// DefaultCapabilities returns the WebGPU default limits.
func DefaultCapabilities() DeviceCapabilities {
	return DeviceCapabilities{MaxTextureSize: 8192}
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used when the host owns the device privately (for example a game engine)
// or when running headless.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
