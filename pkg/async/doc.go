// Package async provides small generic helpers for running computations in
// goroutines and joining their results.
//
// The package is centred around the generic type Future that represents the
// eventual result of an asynchronous operation. A Future is obtained from Go,
// which starts the supplied function in its own goroutine, or from Resolved,
// which wraps a value that is already known. The caller waits for completion
// with Await, blocks with a timeout using AwaitWithTimeout, or polls the state
// with IsComplete. Then chains a transformation onto a Future.
//
// SettleAll is a settle-all join: it waits for every future regardless of
// individual failures and returns one Settled value per future, in input
// order. It never aborts early, so a failing task cannot hide the results of
// its siblings.
//
// # Usage
//
//	futures := []*async.Future[bool]{
//	    async.Go(func() (bool, error) { return checkA(), nil }),
//	    async.Go(func() (bool, error) { return checkB() }),
//	}
//	for i, s := range async.SettleAll(futures...) {
//	    if !s.OK() {
//	        log.Printf("task %d failed: %v", i, s.Err)
//	    }
//	}
//
// # Error Handling
//
// A panic inside a function started with Go is recovered and reported as an
// error wrapping ErrPanic. AwaitWithTimeout returns ErrTimeout when the
// deadline passes first; the computation itself is not cancelled.
//
// # Performance Considerations
//
// Futures are lightweight wrappers around goroutines and channels. Avoid
// spawning an excessive number of goroutines if the workload could be better
// handled by a worker pool.
package async
