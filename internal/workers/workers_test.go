package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingWorker runs until its context is cancelled, counting invocations.
type blockingWorker struct {
	runs atomic.Int64
}

func (w *blockingWorker) Run(ctx context.Context) error {
	w.runs.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

// failingWorker returns err immediately.
type failingWorker struct {
	err error
}

func (w *failingWorker) Run(context.Context) error { return w.err }

func TestWorkers_Run_AllWorkersStart(t *testing.T) {
	w1 := &blockingWorker{}
	w2 := &blockingWorker{}
	w3 := &blockingWorker{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(w1, w2, w3).Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1 && w3.runs.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, New().Run(context.Background()))
}

func TestWorkers_Run_FailureStopsTheGroup(t *testing.T) {
	boom := errors.New("worker exploded")
	blocking := &blockingWorker{}

	err := New(blocking, &failingWorker{err: boom}).Run(context.Background())

	// The failure cancels the sibling, so Run returns instead of hanging
	// on the blocking worker.
	require.ErrorIs(t, err, boom)
}

func TestWorkers_Run_CancellationIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(&blockingWorker{}).Run(ctx)

	assert.NoError(t, err)
}
