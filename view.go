package mandel

import "math"

// Zoom factors applied per wheel notch. Multiplying the visible span by a
// factor below one magnifies the image.
const (
	ZoomInFactor  = 0.9
	ZoomOutFactor = 1.1
)

// BasePanSpeed is the pan step in complex-plane units at zoom 1.
const BasePanSpeed = 0.0025

// PanMode selects how the pan step follows the zoom level.
type PanMode int

const (
	// PanInverseZoom steps BasePanSpeed * |1/zoom| per key press.
	PanInverseZoom PanMode = iota
	// PanSpanRelative steps BasePanSpeed * zoom per key press, a constant
	// fraction of the visible span.
	PanSpanRelative
)

func (m PanMode) String() string {
	if m == PanSpanRelative {
		return "span"
	}
	return "inverse"
}

// ParsePanMode parses "inverse" or "span".
func ParsePanMode(s string) (PanMode, error) {
	switch s {
	case "inverse", "inverse-zoom":
		return PanInverseZoom, nil
	case "span", "span-relative":
		return PanSpanRelative, nil
	}
	return 0, &ParseError{Kind: "pan mode", Value: s}
}

// ViewState is the accumulated zoom and the current center.
//
// Zoom starts at the configured initial zoom (1 by default) and only ever changes by multiplication with a positive
// factor, so it stays positive. It tracks the visible span relative to the
// initial view independently of grid contents: 0.5 means half the span,
// twice the magnification.
type ViewState struct {
	Zoom   float64
	Center complex128
}

// NewViewState returns a view with zoom 1 centered on center.
func NewViewState(center complex128) ViewState {
	return ViewState{Zoom: 1, Center: center}
}

// PanSpeed returns the per-press pan step in complex-plane units.
func (v ViewState) PanSpeed(mode PanMode) float64 {
	if mode == PanSpanRelative {
		return BasePanSpeed * math.Abs(v.Zoom)
	}
	return BasePanSpeed * math.Abs(1/v.Zoom)
}

// Magnification returns 1/Zoom.
func (v ViewState) Magnification() float64 { return 1 / v.Zoom }
