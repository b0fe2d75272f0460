package workerPool

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunsAllTasks(t *testing.T) {
	wp := NewWorkerPool(4, 16, context.Background())
	defer wp.Stop()

	var n int64
	for range 1000 {
		assert.True(t, wp.Submit(func() {
			atomic.AddInt64(&n, 1)
		}))
	}
	wp.Wait()
	assert.Equal(t, int64(1000), atomic.LoadInt64(&n))
	assert.Equal(t, 4, wp.Workers())
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	wp := NewWorkerPool(2, 4, ctx)
	cancel()

	assert.False(t, wp.Submit(func() {
		t.Error("task ran after cancel")
	}))
	wp.Wait()
	wp.Stop()
}

func TestSubmitAfterStop(t *testing.T) {
	wp := NewWorkerPool(1, 1, context.Background())
	wp.Stop()
	wp.Stop()
	assert.False(t, wp.Submit(func() {}))
}
