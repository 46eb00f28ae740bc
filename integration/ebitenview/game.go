// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenview

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/gogpu/mandel"
)

// ErrNilViewer is returned by New for a nil viewer.
var ErrNilViewer = errors.New("ebitenview: nil viewer")

// Option configures a Game.
type Option func(*gameOptions)

type gameOptions struct {
	hud    bool
	sink   *ShaderSink
	title  string
	inside *mandel.RGB
}

// WithHUD overlays zoom, center and frame statistics.
func WithHUD() Option {
	return func(o *gameOptions) { o.hud = true }
}

// WithShaderSink draws through the Kage shader fed by sink instead of
// copying the viewer's pixmap.
func WithShaderSink(sink *ShaderSink) Option {
	return func(o *gameOptions) { o.sink = sink }
}

// WithTitle sets the window title used by Run.
func WithTitle(title string) Option {
	return func(o *gameOptions) { o.title = title }
}

// WithInsideColor sets the shader color of points that never escape.
func WithInsideColor(c mandel.RGB) Option {
	return func(o *gameOptions) { o.inside = &c }
}

// Game implements ebiten.Game around a mandel.Viewer.
type Game[F mandel.Float] struct {
	viewer *mandel.Viewer[F]
	opts   gameOptions
	image  *ebiten.Image
	dirty  bool
	poll   func() inputState
}

// New wraps v. The Game does not take ownership; close the viewer after
// Run returns.
func New[F mandel.Float](v *mandel.Viewer[F], opts ...Option) (*Game[F], error) {
	if v == nil {
		return nil, ErrNilViewer
	}
	o := gameOptions{title: "mandel"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.inside == nil {
		o.inside = insideColor(v.Frame())
	}
	return &Game[F]{viewer: v, opts: o, poll: pollInput}, nil
}

// insideColor matches the CPU path: Frame.Inside, else the palette's end.
func insideColor[F mandel.Float](f *mandel.Frame[F]) *mandel.RGB {
	if f.Inside != nil {
		return f.Inside
	}
	c := f.Palette.Last()
	return &c
}

// Run opens the window and blocks until it is closed.
func (g *Game[F]) Run() error {
	cfg := g.viewer.Config()
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(g.opts.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(g)
	mandel.Logger().Info("ebitenview: window closed", slog.Int("frames", g.viewer.Stats().Frames))
	return err
}

// Update implements ebiten.Game. It applies one tick of input.
func (g *Game[F]) Update() error {
	res, err := g.viewer.Step(g.poll().events()...)
	if err != nil {
		return err
	}
	if res.Closed {
		return ebiten.Termination
	}
	if res.Redraw {
		g.dirty = true
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game[F]) Draw(screen *ebiten.Image) {
	if g.opts.sink != nil {
		maxIter := g.viewer.Frame().MaxIterations
		if err := g.opts.sink.Draw(screen, maxIter, *g.opts.inside); err != nil {
			mandel.Logger().Error("ebitenview: shader draw failed", slog.Any("err", err))
		}
	} else {
		g.drawPixmap(screen)
	}

	if g.opts.hud {
		lines := mandel.HUDLines(g.viewer.View(), g.viewer.Frame().MaxIterations, g.viewer.Stats())
		lines = append(lines, fmt.Sprintf("fps %.1f", ebiten.ActualFPS()))
		ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
	}
}

func (g *Game[F]) drawPixmap(screen *ebiten.Image) {
	pm := g.viewer.Pixmap()
	if pm.Width() == 0 || pm.Height() == 0 {
		return
	}
	if g.image == nil {
		g.image = ebiten.NewImage(pm.Width(), pm.Height())
		g.dirty = true
	}
	if g.dirty {
		g.image.WritePixels(pm.Data())
		g.dirty = false
	}
	screen.DrawImage(g.image, nil)
}

// Layout implements ebiten.Game. The logical screen always matches the
// grid; ebiten scales it to the window.
func (g *Game[F]) Layout(_, _ int) (int, int) {
	cfg := g.viewer.Config()
	return cfg.Width, cfg.Height
}

var _ ebiten.Game = (*Game[float64])(nil)
