// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenview runs a mandel.Viewer inside an Ebitengine window.
//
// The window system delivers input through ebiten's polling API; Game turns
// it into mandel events once per tick and hands them to Viewer.Step. The
// data flow is:
//
//	ebiten input -> []mandel.Event -> Viewer.Step -> Pixmap -> ebiten.Image
//
// # CPU and GPU paths
//
// By default the viewer's pixmap is copied into an ebiten.Image with
// WritePixels whenever a new frame was rendered.
//
// With WithShaderSink, the viewer is expected to use a render.GPURenderer
// writing into a ShaderSink. The escape loop then runs in a Kage shader on
// the GPU, colored from the uploaded palette, and the pixmap is never read.
//
// # Usage
//
//	v, _ := mandel.NewViewer[float64](cfg)
//	game, _ := ebitenview.New(v, ebitenview.WithHUD())
//	ebiten.SetWindowSize(cfg.Width, cfg.Height)
//	if err := game.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// Game is driven by ebiten's game loop and is NOT safe for concurrent use.
package ebitenview
