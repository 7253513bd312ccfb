// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that runs
// multiple workers concurrently and stops them as a group.
package workers

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Worker is the interface that must be implemented by any background worker.
// Run is expected to block until ctx is cancelled or the worker fails.
type Worker interface {
	Run(ctx context.Context) error
}

// Workers runs a set of workers as one unit.
type Workers struct {
	workers []Worker
}

// New builds a Workers aggregate from the given workers.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and blocks until they have
// all returned. The first failure cancels the shared context, asking the
// remaining workers to stop, and is returned to the caller. Cancellation of
// ctx itself is not reported as an error.
func (w *Workers) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		worker := worker
		group.Go(func() error { return worker.Run(ctx) })
	}

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
