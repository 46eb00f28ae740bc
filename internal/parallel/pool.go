package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned by Run when the pool no longer accepts work.
var ErrPoolClosed = errors.New("parallel: worker pool closed")

// Task is one unit of frame work. A task owns its own output region and
// reports failure through the returned error.
type Task func() error

// WorkerPool is a persistent set of goroutines that executes frame tasks.
//
// Each worker has its own queue and steals from its neighbours when the
// queue runs dry, so a strip that hits the slow interior of the set does not
// hold back the rest of the frame.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one buffered channel per worker.
	queues []chan func()

	done chan struct{}
	wg   sync.WaitGroup

	// mu is held shared while Run enqueues and exclusively while Close
	// stops accepting work, so no task is queued after the workers exit.
	mu      sync.RWMutex
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

func (p *WorkerPool) drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes every task and blocks until all of them have returned.
//
// Panics inside a task are recovered and reported as errors. The errors of
// all failed tasks are combined with errors.Join; a nil result means every
// task succeeded.
func (p *WorkerPool) Run(tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		return ErrPoolClosed
	}

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for i, task := range tasks {
		p.queues[i%p.workers] <- func() {
			defer wg.Done()
			errs[i] = runTask(i, task)
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	return errors.Join(errs...)
}

func runTask(i int, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parallel: task %d panicked: %v", i, r)
		}
	}()
	if task == nil {
		return nil
	}
	return task()
}

// Close stops the workers after queued work has drained. A Run that
// started enqueueing before Close still completes; a later one returns
// ErrPoolClosed. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }

// Queued returns an approximate count of tasks waiting in worker queues.
func (p *WorkerPool) Queued() int {
	total := 0
	for _, q := range p.queues {
		total += len(q)
	}
	return total
}
