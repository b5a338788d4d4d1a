package async

import (
	"fmt"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// If the timeout occurs before completion, returns ErrTimeout. The computation
// itself keeps running and can still be awaited later.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Resolved returns a Future that is already complete with v.
func Resolved[U any](v U) *Future[U] {
	f := &Future[U]{result: v, done: make(chan struct{})}
	close(f.done)
	return f
}

// Go runs fn in its own goroutine and returns a Future for its result.
// A panic inside fn completes the Future with an error wrapping ErrPanic
// instead of crashing the process.
func Go[U any](fn func() (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result = zero
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		f.result, f.err = fn()
	}()

	return f
}

// Then returns a Future completed with fn applied to the result of f.
// If f completes with an error, fn is not called and the error is passed through.
func Then[U, V any](f *Future[U], fn func(U) (V, error)) *Future[V] {
	return Go(func() (V, error) {
		res, err := f.Await()
		if err != nil {
			var zero V
			return zero, err
		}
		return fn(res)
	})
}

// Settled is the final state of a single Future collected by SettleAll.
type Settled[U any] struct {
	Value U
	Err   error
}

// OK reports whether the Future completed without error.
func (s Settled[U]) OK() bool {
	return s.Err == nil
}

// SettleAll waits for every future to complete, successfully or not, and
// returns their outcomes in the order the futures were passed.
// Unlike a fail-fast join it never stops early: one failed future does not
// hide the results of the others.
func SettleAll[U any](futures ...*Future[U]) []Settled[U] {
	settled := make([]Settled[U], len(futures))
	for i, future := range futures {
		if future == nil {
			settled[i].Err = ErrNilFuture
			continue
		}
		settled[i].Value, settled[i].Err = future.Await()
	}
	return settled
}
