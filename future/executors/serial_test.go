package executors_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltfishpr/go-async/future"
	"github.com/saltfishpr/go-async/future/executors"
)

func TestSerial_RunsInOrder(t *testing.T) {
	s := executors.NewSerial(128)
	require.NoError(t, s.Start())

	var got []int
	for i := 0; i < 100; i++ {
		s.Submit(func() {
			got = append(got, i)
		})
	}

	require.NoError(t, s.Stop())
	s.Join()

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v, "任务必须按提交顺序执行")
	}
}

func TestSerial_NeverRunsConcurrently(t *testing.T) {
	s := executors.NewSerial(64)
	require.NoError(t, s.Start())

	var current, peak atomic.Int32
	for i := 0; i < 20; i++ {
		s.Submit(func() {
			cur := current.Add(1)
			if cur > peak.Load() {
				peak.Store(cur)
			}
			time.Sleep(time.Millisecond)
			current.Add(-1)
		})
	}

	require.NoError(t, s.Stop())
	s.Join()
	assert.Equal(t, int32(1), peak.Load())
}

func TestSerial_Lifecycle(t *testing.T) {
	s := executors.NewSerial(1)

	assert.ErrorIs(t, s.Stop(), executors.ErrSerialNotStarted)

	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), executors.ErrSerialStarted)

	require.NoError(t, s.Stop())
	assert.ErrorIs(t, s.Stop(), executors.ErrSerialNotStarted)
	assert.ErrorIs(t, s.Start(), executors.ErrSerialStarted)

	s.Join()
}

func TestSerial_StopDrainsQueue(t *testing.T) {
	s := executors.NewSerial(32)
	require.NoError(t, s.Start())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		s.Submit(func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		})
	}

	require.NoError(t, s.Stop())
	s.Join()
	assert.Equal(t, int32(10), ran.Load(), "Stop 后队列中的任务仍需执行完")
}

func TestSerial_SubmitWhenNotRunningPanics(t *testing.T) {
	s := executors.NewSerial(1)
	assert.PanicsWithValue(t, "executors: serial executor is not running", func() {
		s.Submit(func() {})
	})

	require.NoError(t, s.Start())
	require.NoError(t, s.Stop())
	s.Join()

	assert.PanicsWithValue(t, "executors: serial executor is not running", func() {
		s.Submit(func() {})
	})
}

func TestNewSerial_NegativeQueuePanics(t *testing.T) {
	assert.Panics(t, func() {
		executors.NewSerial(-1)
	})
}

// 链式回调默认在完成者的 goroutine 上执行；需要固定执行线程时，
// 在回调里把后续工作提交给 Serial。
func TestSerial_HopContinuation(t *testing.T) {
	s := executors.NewSerial(16)
	require.NoError(t, s.Start())

	p := future.NewPromise[int]()
	done := make(chan int, 1)
	_ = future.Then(p.Future(), func(f *future.Future[int]) (future.Void, error) {
		v, err := f.Consume()
		require.NoError(t, err)
		s.Submit(func() {
			done <- v * 2
		})
		return future.Void{}, nil
	})

	p.Set(10)
	assert.Equal(t, 20, <-done)

	require.NoError(t, s.Stop())
	s.Join()
}
