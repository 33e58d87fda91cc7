package future

import (
	"errors"
	"time"

	"github.com/coder/quartz"
)

// ErrTimeout reports that a Timeout/Until bound elapsed before the underlying
// future completed.
var ErrTimeout = errors.New("future timeout")

// Timeout returns a Future that completes with f's result, or fails with
// ErrTimeout if f does not complete within d. f is transferred into the
// combinator and becomes invalid. Whichever side loses the race is discarded:
// when the deadline wins, f's eventual value is dropped on arrival.
//
// Unlike WaitFor, which bounds a single wait, Timeout produces a new future
// that can be handed to other code with the bound already attached.
func Timeout[T any](f *Future[T], d time.Duration) *Future[T] {
	return timeoutWithClock(f, d, quartz.NewReal())
}

// Until is Timeout with an absolute deadline.
func Until[T any](f *Future[T], deadline time.Time) *Future[T] {
	return untilWithClock(f, deadline, quartz.NewReal())
}

func untilWithClock[T any](f *Future[T], deadline time.Time, clk quartz.Clock) *Future[T] {
	return timeoutWithClock(f, clk.Until(deadline), clk)
}

func timeoutWithClock[T any](f *Future[T], d time.Duration, clk quartz.Clock) *Future[T] {
	src := f.mustState()
	f.state = nil
	s := newState[T]()

	// already completed: no timer needed, regardless of d
	if src.isDone() {
		val, err := src.take()
		s.set(val, err)
		return &Future[T]{state: s}
	}

	timer := clk.AfterFunc(d, func() {
		var zero T
		s.set(zero, ErrTimeout)
	})
	src.subscribe(func() {
		timer.Stop()
		val, err := src.take()
		s.set(val, err)
	})
	return &Future[T]{state: s}
}
