package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type workRequest struct {
	fn     Work[any]
	c      chan Result[any]
	ctx    context.Context
	cancel context.CancelFunc
}

// Scheduler runs work on a fixed number of workers in FIFO order.
type Scheduler struct {
	mu         sync.Mutex
	idle       int
	workQueue  *queue[*workRequest]
	closed     bool
	wg         sync.WaitGroup
	mainCtx    context.Context
	mainCancel context.CancelFunc
}

func NewScheduler(nbWorkers int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		idle:       nbWorkers,
		workQueue:  &queue[*workRequest]{},
		mainCtx:    ctx,
		mainCancel: cancel,
	}
}

// AddWork queues w and returns a future for its result.
// After Close the future resolves immediately with context.Canceled.
func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		c <- Result[any]{Err: context.Canceled}
		return newFuture(c, func() {})
	}

	ctx, cancel := context.WithCancel(s.mainCtx)
	s.workQueue.Push(&workRequest{fn: w, c: c, ctx: ctx, cancel: cancel})
	s.dispatch()

	return newFuture(c, cancel)
}

// AddDelayedWork queues w to run after delay. Stopping the future before the
// delay elapses resolves it with context.Canceled without running w.
// The work occupies a worker while it waits.
func (s *Scheduler) AddDelayedWork(delay time.Duration, w Work[any]) *Future[Result[any]] {
	return s.AddWork(func(ctx context.Context) (any, error) {
		t := time.NewTimer(delay)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}

		return w(ctx)
	})
}

// Close cancels all work, resolves queued work with context.Canceled and
// waits for running workers to return.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mainCancel()
	pending := s.workQueue.Drain()
	s.mu.Unlock()

	for _, r := range pending {
		r.c <- Result[any]{Err: context.Canceled}
		r.cancel()
	}

	s.wg.Wait()
}

// dispatch must be called with the lock held.
func (s *Scheduler) dispatch() {
	for s.idle > 0 && s.workQueue.Len() > 0 {
		r := s.workQueue.Pop()
		s.idle--
		s.wg.Add(1)
		go s.work(r)
	}
}

func (s *Scheduler) work(r *workRequest) {
	defer s.wg.Done()

	v, err := s.safeRun(r)
	r.c <- Result[any]{Data: v, Err: err}
	r.cancel()

	s.mu.Lock()
	s.idle++
	if !s.closed {
		s.dispatch()
	}
	s.mu.Unlock()
}

func (s *Scheduler) safeRun(r *workRequest) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			zap.S().Named("scheduler").Errorw("worker panicked", "panic", p)
			err = fmt.Errorf("worker panicked: %v", p)
		}
	}()
	return r.fn(r.ctx)
}
