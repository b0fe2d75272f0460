package workerPool

import (
	"context"
	"sync"
	"sync/atomic"
)

// WorkerPool runs submitted tasks on a fixed set of goroutines.
// Tasks queued after ctx is cancelled are skipped but still counted by Wait.
type WorkerPool struct {
	tasks     	chan func()
	wg        	*sync.WaitGroup
	quit      	chan struct{}
	stopOnce 	*sync.Once
	ctx 		context.Context
	workers   	int32
}

func NewWorkerPool(size int, queueCapacity int, ctx context.Context) *WorkerPool {
	wp := &WorkerPool{
		tasks:     	make(chan func(), queueCapacity),
		wg:        	new(sync.WaitGroup),
		quit:      	make(chan struct{}),
		stopOnce: 	new(sync.Once),
		ctx: 		ctx,
	}
	for range max(1, size) {
		atomic.AddInt32(&wp.workers, 1)
		go wp.worker()
	}
	return wp
}

// Submit queues task. It returns false when the pool is stopped or its context is done.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.wg.Add(1)
	wrapped := func() {
		defer wp.wg.Done()
		if wp.ctx.Err() != nil {
			return
		}
		task()
	}
	select {
	case <-wp.quit:
		wp.wg.Done()
		return false
	case <-wp.ctx.Done():
		wp.wg.Done()
		return false
	default:
	}
	select {
	case wp.tasks <- wrapped:
		return true
	case <-wp.quit:
	case <-wp.ctx.Done():
	}
	wp.wg.Done()
	return false
}

func (wp *WorkerPool) worker() {
	defer atomic.AddInt32(&wp.workers, -1)
	for {
		select {
		case task := <-wp.tasks:
			task()
		case <-wp.quit:
			return
		}
	}
}

func (wp *WorkerPool) Workers() int {
	return int(atomic.LoadInt32(&wp.workers))
}

func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) Stop() {
	wp.Wait()
	wp.stopOnce.Do(func() {
		close(wp.quit)
	})
}
