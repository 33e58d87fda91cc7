// Package future provides a single-assignment Promise/Future pattern in Go.
//
// A Promise is the write end and a Future the read end of a one-shot value
// channel backed by a shared state. The value is set exactly once and may be
// observed any number of times through Future.Get or a SharedFuture, or moved
// out exactly once through Future.Consume. Futures can be chained with Then
// and Next; chained callbacks run synchronously on the goroutine that
// completes the predecessor, so a chain of depth N occupies that goroutine's
// stack. Use an Executor (or executors.Serial) to hop work onto another
// goroutine explicitly.
//
// Inspired by https://github.com/jizhuozhi/go-future
package future

import (
	"sync/atomic"
	"time"
)

// Void is the result type for futures that signal completion without carrying
// a value. A Future[Void] is the "did it happen yet" shape of the pattern.
type Void struct{}

// Promise The Promise provides a facility to store a value or an error that is later
// acquired asynchronously via the Future created by the Promise. The Promise is the
// "push" end of the promise-future communication channel: the operation that completes
// the shared state synchronizes-with (as defined in Go's memory model) the successful
// return from any function that is waiting on the shared state (such as Future.Get).
//
// Each Promise is associated with a fresh shared state and completes it at most once,
// either with a value (Set) or with an error (Fail). Completing twice is a usage error
// and panics; use TrySet/TryFail when several completers may race.
//
// A Promise that is dropped without being completed leaves every waiter blocked
// forever. Producers that may fail must call Fail (or TryFail) on their error paths;
// the Async/Submit constructors do this automatically.
//
// A Promise must not be copied after first use.
type Promise[T any] struct {
	noCopy noCopy

	state *state[T]
	given atomic.Bool
}

// NewPromise creates a new Promise with a fresh, incomplete shared state.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		state: newState[T](),
	}
}

// Future returns the Future associated with the Promise.
// There is exactly one Future per Promise: calling Future twice panics.
func (p *Promise[T]) Future() *Future[T] {
	if p.given.Swap(true) {
		panic("promise: future already retrieved")
	}
	return &Future[T]{state: p.state}
}

// Set completes the shared state with a value, wakes all waiters and runs the
// chained callback, if any, before returning.
// It panics if the Promise is already satisfied.
func (p *Promise[T]) Set(val T) {
	if !p.state.set(val, nil) {
		panic("promise already satisfied")
	}
}

// Fail completes the shared state with a non-nil error. Waiters observe the
// error from Get/Consume; chained callbacks observe it through their input.
// It panics if err is nil or if the Promise is already satisfied.
func (p *Promise[T]) Fail(err error) {
	if err == nil {
		panic("promise: fail with nil error")
	}
	var zero T
	if !p.state.set(zero, err) {
		panic("promise already satisfied")
	}
}

// TrySet completes the shared state with a value, and returns false instead of
// panicking if the state is already completed. The first completion wins.
func (p *Promise[T]) TrySet(val T) bool {
	return p.state.set(val, nil)
}

// TryFail completes the shared state with a non-nil error, and returns false
// instead of panicking if the state is already completed.
func (p *Promise[T]) TryFail(err error) bool {
	if err == nil {
		panic("promise: fail with nil error")
	}
	var zero T
	return p.state.set(zero, err)
}

// Future The Future provides a mechanism to access the result of an asynchronous
// operation:
//
// 1. An asynchronous operation (Async, Submit or a hand-held Promise) hands a Future
// to its creator.
//
// 2. The creator can query (IsReady), wait for (Wait, WaitFor) or extract the result
// (Get, Consume). These methods block until the shared state is completed.
//
// 3. Get returns the result and leaves the shared state readable, so it may be called
// repeatedly. Consume moves the value out and invalidates the Future.
//
// Then, Next and Share transfer the shared state out of the Future: afterwards the
// Future is invalid and only IsValid/IsReady may be called on it. Operating on an
// invalid Future panics.
//
// A Future must not be copied: a copy would keep a stale reference to the shared
// state after the original has been consumed.
type Future[T any] struct {
	noCopy noCopy

	state *state[T]
}

func (f *Future[T]) mustState() *state[T] {
	if f.state == nil {
		panic("future is invalid")
	}
	return f.state
}

// IsValid reports whether the Future still refers to a shared state. Consume,
// Then, Next and Share leave the Future invalid; the zero Future is invalid.
func (f *Future[T]) IsValid() bool {
	return f.state != nil
}

// IsReady reports whether the shared state is completed, without blocking.
// An invalid Future is never ready.
func (f *Future[T]) IsReady() bool {
	return f.state != nil && f.state.isDone()
}

// Get blocks until the shared state is completed and returns its value and
// error. Get does not invalidate the Future and may be called any number of
// times; every call returns the same result.
func (f *Future[T]) Get() (T, error) {
	return f.mustState().get()
}

// Consume blocks until the shared state is completed, moves the value out and
// invalidates the Future. After Consume the value is gone from the shared
// state: only one Consume is possible, and Get must not be used afterwards.
func (f *Future[T]) Consume() (T, error) {
	s := f.mustState()
	f.state = nil
	return s.take()
}

// Wait blocks until the shared state is completed. It does not consume the
// result and does not invalidate the Future.
func (f *Future[T]) Wait() {
	f.mustState().wait()
}

// WaitFor blocks until the shared state is completed or the duration elapses,
// and reports whether it completed. A false result is a normal outcome, not an
// error: the Future stays valid and can be waited on again.
func (f *Future[T]) WaitFor(d time.Duration) bool {
	return f.mustState().waitFor(d)
}

// Share converts the Future into a SharedFuture and invalidates the Future.
// The SharedFuture and all its copies observe the same result; use it when
// several readers need the value.
func (f *Future[T]) Share() SharedFuture[T] {
	s := f.mustState()
	f.state = nil
	return SharedFuture[T]{state: s}
}
