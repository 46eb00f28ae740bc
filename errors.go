package mandel

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid is returned by grid transforms that need corner bounds
	// when the grid holds no samples.
	ErrEmptyGrid = errors.New("mandel: empty grid")

	// ErrDimensionMismatch is returned when pixel dimensions passed to a grid
	// or renderer do not match the grid.
	ErrDimensionMismatch = errors.New("mandel: dimension mismatch")

	// ErrInvalidConfig is wrapped by every Config validation failure.
	ErrInvalidConfig = errors.New("mandel: invalid config")

	// ErrClosed is returned by a Viewer or renderer after Close.
	ErrClosed = errors.New("mandel: closed")
)

// ParseError reports an unknown enum spelling on the command line or in
// configuration.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mandel: unknown %s %q", e.Kind, e.Value)
}
