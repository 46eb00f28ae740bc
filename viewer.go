package mandel

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// EventSource supplies input once per frame. PollEvents returns the events
// queued since the previous call, in order.
type EventSource interface {
	PollEvents() []Event
}

// Display presents a completed frame.
type Display interface {
	Present(pm *Pixmap) error
}

// Stats describes rendering so far.
type Stats struct {
	Frames    int
	LastFrame time.Duration
	Revision  uint64
}

// Viewer owns the grid, the engine and the renderer and drives them one
// frame at a time.
//
// Input is applied only between frames: Step renders synchronously, so the
// grid is never transformed while a render pass reads it.
type Viewer[F Float] struct {
	cfg      Config
	grid     *Grid[F]
	engine   *Engine[F]
	renderer Renderer[F]
	pixmap   *Pixmap
	frame    Frame[F]

	revision uint64
	rendered bool
	stats    Stats
	closed   bool
}

// NewViewer builds the grid from cfg and renders nothing yet; the first
// Step draws the initial frame.
func NewViewer[F Float](cfg Config, opts ...Option[F]) (*Viewer[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options[F]
	for _, opt := range opts {
		opt(&o)
	}

	grid, err := NewGrid[F](cfg.Width, cfg.Height, cfg.Bounds())
	if err != nil {
		return nil, err
	}

	pal := o.palette
	if pal == nil {
		pal, err = NewPalette(cfg.Palette, cfg.PaletteSize)
		if err != nil {
			return nil, err
		}
	}

	r := o.renderer
	if r == nil {
		r = NewSoftwareRenderer[F](cfg.Workers)
	}

	engine := NewEngine(grid)
	engine.SetZoom(cfg.Zoom)
	engine.SetZoomAnchor(cfg.ZoomAnchor)
	engine.SetPanMode(cfg.PanMode)

	v := &Viewer[F]{
		cfg:      cfg,
		grid:     grid,
		engine:   engine,
		renderer: r,
		pixmap:   NewPixmap(cfg.Width, cfg.Height),
	}
	v.frame = Frame[F]{
		Grid:          grid,
		Palette:       pal,
		MaxIterations: cfg.MaxIterations,
		Inside:        o.inside,
		Target:        v.pixmap,
	}

	attrs := []any{
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.String("palette", cfg.Palette.String()),
	}
	if info, ok := r.(RendererInfo); ok {
		attrs = append(attrs, slog.String("renderer", info.Name()), slog.Bool("gpu", info.IsGPU()))
	}
	Logger().Info("mandel: viewer created", attrs...)
	return v, nil
}

// Step applies one batch of events and renders if the view changed or no
// frame has been drawn yet.
//
// The returned Result has Redraw set when a new frame is in the pixmap.
// After a Closed event no frame is rendered.
func (v *Viewer[F]) Step(events ...Event) (Result, error) {
	if v.closed {
		return Result{Closed: true}, ErrClosed
	}

	res := v.engine.Apply(events...)
	if res.Closed {
		return res, nil
	}
	if res.Redraw {
		v.revision++
	}
	if !res.Redraw && v.rendered {
		return res, nil
	}

	if err := v.Render(); err != nil {
		return res, err
	}
	res.Redraw = true
	return res, nil
}

// Render draws the current grid unconditionally.
func (v *Viewer[F]) Render() error {
	if v.closed {
		return ErrClosed
	}
	start := time.Now()
	v.frame.Revision = v.revision
	if err := v.renderer.Render(&v.frame); err != nil {
		return fmt.Errorf("mandel: frame %d: %w", v.stats.Frames, err)
	}
	v.rendered = true
	v.stats.Frames++
	v.stats.LastFrame = time.Since(start)
	v.stats.Revision = v.revision
	return nil
}

// Run polls src, steps, and presents every new frame to dst until a
// Closed event arrives or ctx is done.
//
// Cancellation is only observed between frames; a frame that has started
// always completes.
func (v *Viewer[F]) Run(ctx context.Context, src EventSource, dst Display) error {
	interval := v.cfg.FrameInterval
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := v.Step(src.PollEvents()...)
		if err != nil {
			return err
		}
		if res.Closed {
			Logger().Info("mandel: window closed", slog.Int("frames", v.stats.Frames))
			return nil
		}
		if res.Redraw {
			if err := dst.Present(v.pixmap); err != nil {
				return fmt.Errorf("mandel: present: %w", err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Pixmap returns the frame buffer. It is valid until the next Step.
func (v *Viewer[F]) Pixmap() *Pixmap { return v.pixmap }

// Grid returns the sample grid.
func (v *Viewer[F]) Grid() *Grid[F] { return v.grid }

// View returns the current zoom and center.
func (v *Viewer[F]) View() ViewState { return v.engine.View() }

// Frame returns the frame description the renderer sees.
func (v *Viewer[F]) Frame() *Frame[F] { return &v.frame }

// Config returns the startup configuration.
func (v *Viewer[F]) Config() Config { return v.cfg }

// Stats returns frame counters.
func (v *Viewer[F]) Stats() Stats { return v.stats }

// Renderer returns the active renderer.
func (v *Viewer[F]) Renderer() Renderer[F] { return v.renderer }

// Close releases the renderer. It is safe to call more than once.
func (v *Viewer[F]) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	return v.renderer.Close()
}
