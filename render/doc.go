// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render implements the GPU path of mandel.
//
// # Overview
//
// The GPU path keeps the per-pixel escape loop in a fragment shader and
// only ships data to the device:
//
//   - the complex sample grid as an RG32Float texture, rewritten over the
//     sub-region [0, 0, width, height] every time the grid changes;
//   - the palette as an RGBA8Unorm texture, written once.
//
// [GPURenderer] implements mandel.Renderer, so a Viewer drives it exactly
// like the CPU renderer. The renderer never creates a device: it receives a
// [DeviceHandle] from the host and writes through a [TextureSink] that the
// host backs with real textures.
//
// # Shader
//
// The WGSL source for the evaluation pass is embedded and compiled to
// SPIR-V with naga. See [CompileShader].
//
// # Fallback
//
// A GPURenderer without a sink draws into the frame's pixmap with a
// mandel.SoftwareRenderer and logs a warning once.
package render
