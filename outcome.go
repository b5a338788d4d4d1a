package rulekit

import "github.com/dmitrymomot/rulekit/pkg/async"

// Outcome is the result of an adaptive evaluation: either a value computed
// synchronously or a future for a value computed concurrently.
type Outcome[T any] struct {
	value  T
	future *async.Future[T]
}

func immediateOutcome[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

func deferredOutcome[T any](f *async.Future[T]) Outcome[T] {
	return Outcome[T]{future: f}
}

// Deferred reports whether the evaluation took the asynchronous path.
func (o Outcome[T]) Deferred() bool {
	return o.future != nil
}

// Await returns the result, blocking until a deferred evaluation completes.
func (o Outcome[T]) Await() T {
	if o.future == nil {
		return o.value
	}
	v, _ := o.future.Await()
	return v
}

// Future exposes the outcome as a future. Immediate outcomes are returned as
// already resolved futures.
func (o Outcome[T]) Future() *async.Future[T] {
	if o.future == nil {
		return async.Resolved(o.value)
	}
	return o.future
}
