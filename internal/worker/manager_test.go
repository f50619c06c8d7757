package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-engine/internal/worker"
)

// loopWorker крутится, пока не получит сигнал остановки
type loopWorker struct {
	*worker.BaseWorker
	started chan struct{}
}

func newLoopWorker(name string) *loopWorker {
	return &loopWorker{
		BaseWorker: worker.NewBaseWorker(name, "test-group", zap.NewNop()),
		started:    make(chan struct{}),
	}
}

func (w *loopWorker) Start(ctx context.Context) error {
	close(w.started)
	for w.Pause(ctx, 10*time.Millisecond) {
	}
	return nil
}

// stuckWorker игнорирует Stop
type stuckWorker struct {
	*worker.BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 0)
	assert.ErrorIs(t, m.Start(context.Background()), worker.ErrNoWorkers)
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	a := newLoopWorker("a")
	b := newLoopWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	for _, w := range []*loopWorker{a, b} {
		select {
		case <-w.started:
		case <-time.After(time.Second):
			t.Fatalf("worker %s did not start", w.Name())
		}
	}

	assert.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 50*time.Millisecond)
	stuck := &stuckWorker{
		BaseWorker: worker.NewBaseWorker("stuck", "test-group", zap.NewNop()),
		release:    make(chan struct{}),
	}
	defer close(stuck.release)
	m.Register(stuck)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Stop())
}

func TestBaseWorker(t *testing.T) {
	w := worker.NewBaseWorker("route-generation", "route-engine", zap.NewNop())

	assert.Equal(t, "route-generation", w.Name())
	assert.Equal(t, "route-engine", w.ConsumerGroup())
	assert.NotEmpty(t, w.ConsumerName())
	assert.True(t, w.Pause(context.Background(), time.Millisecond))

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop(), "stop is idempotent")
	assert.True(t, w.IsStopped())
	assert.False(t, w.Pause(context.Background(), time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	other := worker.NewBaseWorker("other", "g", zap.NewNop())
	assert.False(t, other.Pause(ctx, time.Minute))
}
