package mandel

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/gogpu/mandel/internal/parallel"
)

// SoftwareRenderer evaluates every pixel on the CPU.
//
// The image is split into vertical strips, one per worker. Each strip task
// writes only through a ColumnView over its own columns, so no lock guards
// the pixmap. Render returns after every strip has been joined.
type SoftwareRenderer[F Float] struct {
	pool   *parallel.WorkerPool
	strips int

	mu     sync.Mutex // serializes Render and Close
	closed bool
}

// NewSoftwareRenderer starts a renderer with the given number of workers.
// A non-positive count uses runtime.NumCPU. Each frame is split into one
// strip per worker.
func NewSoftwareRenderer[F Float](workers int) *SoftwareRenderer[F] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &SoftwareRenderer[F]{
		pool:   parallel.NewWorkerPool(workers),
		strips: workers,
	}
}

// Name implements RendererInfo.
func (r *SoftwareRenderer[F]) Name() string { return "software" }

// IsGPU implements RendererInfo.
func (r *SoftwareRenderer[F]) IsGPU() bool { return false }

// Strips returns the number of strips a frame is split into.
func (r *SoftwareRenderer[F]) Strips() int { return r.strips }

// Render fills f.Target.
//
// A panic or error in one strip leaves the other strips intact; all strip
// failures are returned joined.
func (r *SoftwareRenderer[F]) Render(f *Frame[F]) error {
	if err := f.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	start := time.Now()
	strips := parallel.Strips(f.Grid.Width(), r.strips)
	tasks := make([]parallel.Task, len(strips))
	for i, s := range strips {
		view := f.Target.Columns(s.X0, s.X1)
		tasks[i] = func() error {
			renderStrip(f, view)
			return nil
		}
	}

	if err := r.pool.Run(tasks); err != nil {
		return fmt.Errorf("mandel: software render: %w", err)
	}

	Logger().Debug("mandel: frame rendered",
		slog.Int("strips", len(strips)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// renderStrip evaluates the columns of one view. Grid row gy is written to
// pixmap row h-1-gy because the grid stores the minimum imaginary row first.
func renderStrip[F Float](f *Frame[F], view ColumnView) {
	x0, x1, h := view.Bounds()
	g := f.Grid
	for x := x0; x < x1; x++ {
		for gy := range h {
			re, im := g.At(x, gy)
			count := EscapeCount(re, im, f.MaxIterations)
			view.Set(x, h-1-gy, f.Color(count))
		}
	}
}

// Close stops the worker pool after the current frame.
func (r *SoftwareRenderer[F]) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.pool.Close()
	return nil
}

var (
	_ Renderer[float64] = (*SoftwareRenderer[float64])(nil)
	_ RendererInfo      = (*SoftwareRenderer[float32])(nil)
)
