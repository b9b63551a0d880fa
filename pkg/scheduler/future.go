package scheduler

import "context"

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future holds the eventual result of a work item.
type Future[T any] struct {
	c      chan T
	cancel context.CancelFunc
}

func newFuture[T any](c chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

// C returns the channel receiving the result. Exactly one value is delivered.
func (f *Future[T]) C() <-chan T {
	return f.c
}

// Stop cancels the context handed to the work function.
// The result is still delivered on C.
func (f *Future[T]) Stop() {
	f.cancel()
}
