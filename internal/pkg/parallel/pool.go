// Package parallel provides a process-wide bounded worker pool and an
// order-preserving parallel map built on it. The pool is created once
// at service startup and shut down at teardown; callers never spin up
// their own goroutine fan-out for per-item work.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultSize is max(4, min(available parallelism, 8)).
func DefaultSize() int {
	n := runtime.GOMAXPROCS(0)
	if n > 8 {
		n = 8
	}
	if n < 4 {
		n = 4
	}
	return n
}

type Pool struct {
	tasks   chan func()
	workers *errgroup.Group

	mu     sync.Mutex
	closed bool
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultSize()
	}
	p := &Pool{
		tasks:   make(chan func()),
		workers: &errgroup.Group{},
	}
	for i := 0; i < size; i++ {
		p.workers.Go(func() error {
			for task := range p.tasks {
				task()
			}
			return nil
		})
	}
	return p
}

// Submit schedules fn on the pool. It fails only when the pool has
// already been shut down; a scheduled task always runs.
func (p *Pool) Submit(fn func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("parallel: pool is shut down")
	}
	p.tasks <- fn
	return nil
}

// Shutdown stops accepting work and waits for in-flight tasks.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	_ = p.workers.Wait()
}

// MapOrdered runs task once per item on the pool and returns results in
// input order regardless of completion order. A task error (or panic)
// is converted to a substitute result via fallback instead of failing
// the batch; the whole batch blocks until every task finished. The only
// returned error is a submission failure, in which case no partial
// result is exposed.
func MapOrdered[T any, R any](ctx context.Context, p *Pool, items []T, task func(context.Context, T) (R, error), fallback func(T, error) R) ([]R, error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	results := make([]R, len(items))
	var wg sync.WaitGroup
	wg.Add(len(items))

	for i := range items {
		i := i
		item := items[i]
		err := p.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = fallback(item, fmt.Errorf("parallel: task panic: %v", r))
				}
			}()
			res, err := task(ctx, item)
			if err != nil {
				results[i] = fallback(item, err)
				return
			}
			results[i] = res
		})
		if err != nil {
			// Count it done so the tasks already submitted can be
			// drained by their own completions without leaking the
			// WaitGroup; the batch as a whole is reported failed.
			wg.Done()
			for j := i + 1; j < len(items); j++ {
				wg.Done()
			}
			wg.Wait()
			return nil, fmt.Errorf("parallel: submit item %d: %w", i, err)
		}
	}

	wg.Wait()
	return results, nil
}
