package future

import "time"

// SharedFuture is the multi-reader view of a shared state, created by
// Future.Share. Unlike Future it is a small value and is meant to be copied:
// all copies refer to the same shared state and observe the same result, and
// Get may be called from any number of goroutines concurrently.
//
// A SharedFuture can only read. There is no Consume, no chaining and no way
// back to an exclusive Future, so no copy can move the value out from under
// the others.
type SharedFuture[T any] struct {
	state *state[T]
}

// IsValid reports whether the SharedFuture refers to a shared state.
// The zero SharedFuture is invalid.
func (sf SharedFuture[T]) IsValid() bool {
	return sf.state != nil
}

// IsReady reports whether the shared state is completed, without blocking.
func (sf SharedFuture[T]) IsReady() bool {
	return sf.state != nil && sf.state.isDone()
}

// Get blocks until the shared state is completed and returns its value and
// error. Every copy of the SharedFuture returns the same result.
func (sf SharedFuture[T]) Get() (T, error) {
	if sf.state == nil {
		panic("future is invalid")
	}
	return sf.state.get()
}

// Wait blocks until the shared state is completed.
func (sf SharedFuture[T]) Wait() {
	if sf.state == nil {
		panic("future is invalid")
	}
	sf.state.wait()
}

// WaitFor blocks until the shared state is completed or the duration elapses,
// and reports whether it completed.
func (sf SharedFuture[T]) WaitFor(d time.Duration) bool {
	if sf.state == nil {
		panic("future is invalid")
	}
	return sf.state.waitFor(d)
}
