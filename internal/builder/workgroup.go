package builder

import (
	"context"
	"sync"
)

// WorkerGroup tracks the build's rendering goroutines and provides a safe
// join boundary so Add never races Wait. Task errors are collected, never
// propagated between siblings: one failing page must not cancel the rest.
type WorkerGroup struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	joining bool
	errs    []error
}

// Go starts a task unless the group is already joining.
func (g *WorkerGroup) Go(fn func() error) bool {
	if fn == nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.joining {
		return false
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := fn(); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	}()
	return true
}

// Wait prevents new tasks from starting and blocks until all current tasks
// finish, bounded by ctx. It returns the collected task errors.
func (g *WorkerGroup) Wait(ctx context.Context) ([]error, error) {
	g.mu.Lock()
	g.joining = true
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.errs, nil
}
