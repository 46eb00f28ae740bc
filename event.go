package mandel

// Event is an abstract input event delivered by a window system.
//
// The engine recognises Closed, MouseScrolled and KeyPressed. Any other
// Event implementation is ignored and does not trigger a redraw.
type Event interface {
	event()
}

// Key identifies a pan direction.
type Key int

// Pan keys.
const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	default:
		return "unknown"
	}
}

// Closed reports that the window was closed. It is terminal.
type Closed struct{}

// MouseScrolled reports wheel movement. A positive Delta zooms in and a
// negative Delta zooms out. X and Y are the cursor position in pixels.
type MouseScrolled struct {
	Delta float64
	X, Y  float64
}

// KeyPressed reports a key press.
type KeyPressed struct {
	Key Key
}

// Resized reports a window size change. The grid has fixed dimensions, so
// the engine ignores it; display adapters scale the image instead.
type Resized struct {
	Width, Height int
}

func (Closed) event()        {}
func (MouseScrolled) event() {}
func (KeyPressed) event()    {}
func (Resized) event()       {}
