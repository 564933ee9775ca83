package pipeline

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"
)

var ErrPoolClosed = errors.New("worker pool closed")

type Task func(ctx context.Context) Result

type Result struct {
	Err   error
	Count int
}

type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
	limiter *rate.Limiter

	closeOnce sync.Once
	closed    chan struct{}
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
		closed:  make(chan struct{}),
	}
}

// SetRateLimit caps task starts per second across all workers. rps <= 0 removes the cap.
// Call before Run.
func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	if rps <= 0 {
		p.limiter = nil
		return
	}
	p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// Submit blocks until a worker slot frees up, ctx ends, or the pool is closed.
func (p *WorkerPool) Submit(ctx context.Context, t Task) error {
	if p == nil || t == nil {
		return nil
	}
	select {
	case <-p.closed:
		return ErrPoolClosed
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- t:
		return nil
	}
}

func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		close(p.closed)
		close(p.tasks)
	})
}

// Run starts the workers. The returned channel closes once every worker has
// exited; callers must drain it.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					if p.limiter != nil {
						if err := p.limiter.Wait(ctx); err != nil {
							return
						}
					}
					res := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
