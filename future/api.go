package future

import (
	"context"
	"sync/atomic"

	"github.com/saltfishpr/go-async/routine"
)

// Async runs f on the package executor and returns the Future of its result.
// A panic inside f is captured as a *routine.RecoveredError and fails the
// Future instead of crashing the executing goroutine. The Future is always
// completed eventually, so it cannot be abandoned.
func Async[T any](f func() (T, error)) *Future[T] {
	return Submit(executor, f)
}

// CtxAsync runs f on the package executor with ctx passed through. The context
// is not observed by the framework itself: honoring cancellation is up to f.
func CtxAsync[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Future[T] {
	return CtxSubmit(ctx, executor, f)
}

// Submit runs f on the given executor, see Async.
func Submit[T any](e Executor, f func() (T, error)) *Future[T] {
	s := newState[T]()
	e.Submit(func() {
		var val T
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = routine.NewRecovered(1, r).AsError()
			}
			s.set(val, err)
		}()
		val, err = f()
	})
	return &Future[T]{state: s}
}

// CtxSubmit runs f on the given executor with ctx passed through, see CtxAsync.
func CtxSubmit[T any](ctx context.Context, e Executor, f func(ctx context.Context) (T, error)) *Future[T] {
	s := newState[T]()
	e.Submit(func() {
		var val T
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = routine.NewRecovered(1, r).AsError()
			}
			s.set(val, err)
		}()
		val, err = f(ctx)
	})
	return &Future[T]{state: s}
}

// Done returns an already completed Future holding val.
func Done[T any](val T) *Future[T] {
	return Done2(val, nil)
}

// Done2 returns an already completed Future holding val and err.
func Done2[T any](val T, err error) *Future[T] {
	s := newState[T]()
	s.set(val, err)
	return &Future[T]{state: s}
}

// Then chains cb onto f. When f's shared state completes, cb is invoked with a
// fresh Future view of the completed state and its result completes the
// returned Future. cb always runs, whether the state completed with a value or
// an error; inspect the view (or use Next for the common value-only case).
//
// Then transfers the shared state out of f: f is invalid as soon as Then
// returns, and the callback slot of the state is used up, so a state can be
// chained at most once. The returned Future is available immediately; if f was
// already completed, cb runs synchronously before Then returns, otherwise it
// will run on the goroutine that completes the state, after waiters are woken.
// cb must not block for long: it delays the completer.
//
// A panic inside cb is captured as a *routine.RecoveredError and fails the
// returned Future, so a broken callback never takes down the completing
// goroutine and the chain always completes.
func Then[T any, R any](f *Future[T], cb func(*Future[T]) (R, error)) *Future[R] {
	src := f.mustState()
	f.state = nil
	s := newState[R]()
	src.subscribe(func() {
		var val R
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = routine.NewRecovered(1, r).AsError()
				}
			}()
			val, err = cb(&Future[T]{state: src})
		}()
		s.set(val, err)
	})
	return &Future[R]{state: s}
}

// Next chains cb onto the value of f. The predecessor's value is consumed and
// handed to cb; if the predecessor completed with an error, cb is skipped and
// the error propagates to the returned Future unchanged. Like Then, Next
// invalidates f and returns immediately.
func Next[T any, R any](f *Future[T], cb func(T) (R, error)) *Future[R] {
	return Then(f, func(fut *Future[T]) (R, error) {
		val, err := fut.Consume()
		if err != nil {
			var zero R
			return zero, err
		}
		return cb(val)
	})
}

// AllOf returns a Future completing with the values of all input futures in
// input order, or with the first observed error. The input futures are
// transferred into AllOf and become invalid. An empty input yields an already
// completed Future.
func AllOf[T any](fs ...*Future[T]) *Future[[]T] {
	if len(fs) == 0 {
		return Done[[]T](nil)
	}

	s := newState[[]T]()
	var failed atomic.Bool
	var remaining atomic.Int32
	remaining.Store(int32(len(fs)))
	results := make([]T, len(fs))
	for i, f := range fs {
		src := f.mustState()
		f.state = nil
		src.subscribe(func() {
			val, err := src.get()
			if err != nil {
				if failed.CompareAndSwap(false, true) {
					s.set(nil, err)
				}
				return
			}
			results[i] = val
			if remaining.Add(-1) == 0 {
				s.set(results, nil)
			}
		})
	}
	return &Future[[]T]{state: s}
}
