// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/mandelbrot.wgsl
var mandelbrotShaderWGSL string

// Entry points of the evaluation shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

// Shader is the evaluation shader in source and compiled form.
type Shader struct {
	// Source is the WGSL source.
	Source string

	// SPIRV is the compiled module as 32-bit words.
	SPIRV []uint32
}

// ShaderSource returns the embedded WGSL source.
func ShaderSource() string {
	return mandelbrotShaderWGSL
}

// CompileShader compiles the embedded WGSL source to SPIR-V.
func CompileShader() (*Shader, error) {
	spirvBytes, err := naga.Compile(mandelbrotShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("render: failed to compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("render: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return &Shader{Source: mandelbrotShaderWGSL, SPIRV: words}, nil
}
