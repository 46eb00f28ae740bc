// Package parallel provides the fork-join infrastructure behind the CPU
// renderer.
//
// A frame is split into vertical strips of columns. Every strip is owned by
// exactly one task, so tasks write to the shared pixel buffer without locks.
// Tasks run on a persistent WorkerPool and the frame is joined before it is
// presented.
package parallel

// Strip is the half-open column range [X0, X1).
type Strip struct {
	X0, X1 int
}

// Width returns the number of columns in the strip.
func (s Strip) Width() int { return s.X1 - s.X0 }

// Strips partitions [0, width) into count vertical strips.
//
// Every strip is width/count columns wide except the last, which also takes
// the remainder. The result is exhaustive and non-overlapping. When count is
// not positive or the strip width would be zero, a single strip covering the
// whole image is returned. A non-positive width yields no strips.
func Strips(width, count int) []Strip {
	if width <= 0 {
		return nil
	}
	if count <= 0 || width/count == 0 {
		return []Strip{{X0: 0, X1: width}}
	}

	stripWidth := width / count
	strips := make([]Strip, count)
	for i := range count {
		strips[i] = Strip{X0: i * stripWidth, X1: (i + 1) * stripWidth}
	}
	strips[count-1].X1 = width
	return strips
}
