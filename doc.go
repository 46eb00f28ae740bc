// Package mandel renders the Mandelbrot set interactively.
//
// # Overview
//
// The package keeps a dense grid of complex-plane samples bound one to one
// to screen pixels. Pan and zoom input mutates the grid in place, and a
// renderer turns the grid into an image every time it changes. Two render
// strategies share the same contract:
//
//   - SoftwareRenderer evaluates every pixel on the CPU, split into
//     vertical strips that run in parallel.
//   - render.GPURenderer uploads the grid as an RG32F texture and leaves the
//     per-pixel loop to a fragment shader.
//
// # Quick Start
//
//	cfg := mandel.DefaultConfig()
//	v, err := mandel.NewViewer[float64](cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//
//	// One frame: apply input, re-render if the view changed.
//	res, err := v.Step(mandel.KeyPressed{Key: mandel.KeyLeft})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Redraw {
//	    _ = v.Pixmap().SavePNG("frame.png")
//	}
//
// # Precision
//
// Grid, Engine, Viewer and the renderers are generic over [Float], so the
// same code runs in float32 (what the GPU texture stores) or float64 (what
// deep CPU zooms need). Neither is arbitrary precision: zooming past the
// resolution of the chosen type produces blocky images.
//
// # Coordinate System
//
// Grid rows follow texture orientation: row 0 holds the minimum imaginary
// part. Pixmap rows follow screen orientation: row 0 is the top of the
// window. The CPU renderer flips rows when it writes pixels, and
// [Grid.ScreenToComplex] inverts the Y axis accordingly.
package mandel

// Version is the current version of the module.
const Version = "0.3.0"
