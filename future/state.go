package future

import (
	"sync/atomic"
	"time"
)

const (
	stateFree uint32 = iota
	stateDoing
	stateDone
)

// state 是 Promise 及其关联的 Future/SharedFuture 共同引用的一次性共享状态。
//
// 状态只会从未完成迁移到已完成一次。val/err 在状态字变为 stateDone 之前写入，
// 因此任何观察到 stateDone（或 done 通道关闭）的读取都能安全地读到结果。
// 共享状态由 GC 管理生命周期：只要还有任意一个句柄引用它，它就存活。
type state[T any] struct {
	noCopy noCopy

	state atomic.Uint32
	done  chan struct{}

	val T
	err error

	// taken 表示值已被移出（Future.Consume 或链式回调消费）。
	// 值被移出后，任何 get/take 都是使用错误。
	taken atomic.Bool

	// cb 是唯一的完成回调槽：nil（未注册）、*callback（已注册）、
	// cbDone（已执行）或 cbNone（完成时没有回调）。
	cb atomic.Pointer[callback]
}

func newState[T any]() *state[T] {
	return &state[T]{done: make(chan struct{})}
}

// set 完成共享状态并唤醒所有等待者。返回 false 表示状态已经完成过。
// 已注册的回调会在当前 goroutine 上同步执行，且在 close(done) 之后、
// set 返回之前完成（包括回调递归触发的后继完成）。
func (s *state[T]) set(val T, err error) bool {
	if !s.state.CompareAndSwap(stateFree, stateDoing) {
		return false
	}
	s.val = val
	s.err = err

	s.state.CompareAndSwap(stateDoing, stateDone)
	close(s.done)

	// resolve the callback slot exactly once
	for {
		cur := s.cb.Load()
		if cur == nil {
			if s.cb.CompareAndSwap(nil, cbNone) {
				return true
			}
			continue // lost the race against subscribe
		}
		if s.cb.CompareAndSwap(cur, cbDone) {
			cur.f()
			return true
		}
	}
}

// subscribe 注册完成回调。每个共享状态最多允许一个回调；若状态已完成，
// 回调立即在调用者的 goroutine 上执行。重复注册说明存在内部使用错误。
func (s *state[T]) subscribe(fn func()) {
	newCb := &callback{f: fn}
	for {
		switch cur := s.cb.Load(); cur {
		case nil:
			if s.cb.CompareAndSwap(nil, newCb) {
				return // set will run it
			}
		case cbNone:
			// completed with no callback; claim the slot and run now
			if s.cb.CompareAndSwap(cbNone, cbDone) {
				fn()
				return
			}
		default:
			panic("future: callback already registered")
		}
	}
}

func (s *state[T]) wait() {
	if s.isDone() {
		return
	}
	<-s.done
}

// waitFor 等待完成或超时，返回状态是否已完成。超时后状态仍可继续等待。
func (s *state[T]) waitFor(d time.Duration) bool {
	if s.isDone() {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.done:
		return true
	case <-t.C:
		// the timer may fire while completion is in flight
		return s.isDone()
	}
}

// get 阻塞等待完成并返回结果，可重复调用，不会移动值。
func (s *state[T]) get() (T, error) {
	s.wait()
	if s.taken.Load() {
		panic("future: value already consumed")
	}
	return s.val, s.err
}

// take 阻塞等待完成并移出值，之后共享状态中的值被清零。只允许调用一次。
func (s *state[T]) take() (T, error) {
	s.wait()
	if !s.taken.CompareAndSwap(false, true) {
		panic("future: value already consumed")
	}
	val, err := s.val, s.err
	var zero T
	s.val = zero
	return val, err
}

func (s *state[T]) isDone() bool {
	return s.state.Load() == stateDone
}

type callback struct {
	f func()
}

var (
	cbDone = new(callback) // slot resolved: the callback has run
	cbNone = new(callback) // slot resolved: completed without a callback
)

// noCopy 可以添加到首次使用后不得被复制的结构体中。
//
// 详情请参见：https://golang.org/issues/8005#issuecomment-190753527
//
// 注意：由于 Lock 和 Unlock 方法，不得嵌入此结构体。
type noCopy struct{}

// Lock 是一个空操作，由 `go vet` 的 -copylocks 检查器使用。
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
