package mandel

import (
	"log/slog"
)

// ZoomAnchor selects the fixed point of a wheel zoom.
type ZoomAnchor int

const (
	// ZoomAnchorCenter scales about the center of the grid.
	ZoomAnchorCenter ZoomAnchor = iota
	// ZoomAnchorCursor keeps the complex value under the cursor in place.
	ZoomAnchorCursor
)

func (a ZoomAnchor) String() string {
	if a == ZoomAnchorCursor {
		return "cursor"
	}
	return "center"
}

// ParseZoomAnchor parses "center" or "cursor".
func ParseZoomAnchor(s string) (ZoomAnchor, error) {
	switch s {
	case "center":
		return ZoomAnchorCenter, nil
	case "cursor", "mouse":
		return ZoomAnchorCursor, nil
	}
	return 0, &ParseError{Kind: "zoom anchor", Value: s}
}

// Result is the outcome of applying one batch of events.
type Result struct {
	// Redraw is set when any event in the batch changed the grid.
	Redraw bool
	// Closed is set once a Closed event has been seen. It stays set.
	Closed bool
}

// Engine turns input events into grid transforms and zoom bookkeeping.
//
// The engine is the only writer of its grid. It must not be used while a
// renderer is reading the grid.
type Engine[F Float] struct {
	grid   *Grid[F]
	view   ViewState
	anchor ZoomAnchor
	pan    PanMode
	closed bool
}

// NewEngine binds an engine to a grid. The view center is taken from the
// grid and the zoom starts at 1.
func NewEngine[F Float](grid *Grid[F]) *Engine[F] {
	return &Engine[F]{
		grid: grid,
		view: NewViewState(grid.Center()),
	}
}

// SetZoom seeds the accumulated zoom, for a grid that was built already
// zoomed. Non-positive values are ignored so zoom stays positive.
func (e *Engine[F]) SetZoom(z float64) {
	if z > 0 {
		e.view.Zoom = z
	}
}

// SetZoomAnchor selects where wheel zoom is anchored.
func (e *Engine[F]) SetZoomAnchor(a ZoomAnchor) { e.anchor = a }

// SetPanMode selects how the pan step follows zoom.
func (e *Engine[F]) SetPanMode(m PanMode) { e.pan = m }

// View returns the current zoom and center.
func (e *Engine[F]) View() ViewState { return e.view }

// Grid returns the grid the engine transforms.
func (e *Engine[F]) Grid() *Grid[F] { return e.grid }

// Closed reports whether a Closed event has been applied.
func (e *Engine[F]) Closed() bool { return e.closed }

// Apply processes events in order.
//
// Redraw is the OR of every event in the batch. Once Closed is seen the
// remaining events are dropped and Redraw is cleared: a closing window is
// never redrawn.
func (e *Engine[F]) Apply(events ...Event) Result {
	redraw := false
	for _, ev := range events {
		if e.closed {
			break
		}
		switch ev := ev.(type) {
		case Closed:
			e.closed = true
		case MouseScrolled:
			redraw = e.zoom(ev) || redraw
		case KeyPressed:
			redraw = e.panKey(ev.Key) || redraw
		}
	}
	if e.closed {
		return Result{Closed: true}
	}
	return Result{Redraw: redraw}
}

func (e *Engine[F]) zoom(ev MouseScrolled) bool {
	var factor float64
	switch {
	case ev.Delta > 0:
		factor = ZoomInFactor
	case ev.Delta < 0:
		factor = ZoomOutFactor
	default:
		return false
	}

	var err error
	if e.anchor == ZoomAnchorCursor {
		// Anchor on the value the cursor pixel actually shows, so the
		// rebuilt sample under it lands on the same point.
		p := e.grid.PixelToComplex(ev.X, ev.Y)
		c := e.grid.Center()
		err = e.grid.RebuildFromView(p+(c-p)*complex(factor, 0), 1/factor, e.grid.Width(), e.grid.Height())
	} else {
		err = e.grid.AdjustScaleCentered(F(factor))
	}
	if err != nil {
		return false
	}

	e.view.Zoom *= factor
	e.view.Center = e.grid.Center()
	Logger().Debug("mandel: zoom",
		slog.Float64("zoom", e.view.Zoom),
		slog.String("anchor", e.anchor.String()))
	return true
}

func (e *Engine[F]) panKey(k Key) bool {
	step := F(e.view.PanSpeed(e.pan))
	switch k {
	case KeyLeft:
		e.grid.AdjustReal(-step)
	case KeyRight:
		e.grid.AdjustReal(step)
	case KeyUp:
		e.grid.AdjustImag(-step)
	case KeyDown:
		e.grid.AdjustImag(step)
	default:
		return false
	}
	if e.grid.Empty() {
		return false
	}
	e.view.Center = e.grid.Center()
	return true
}
