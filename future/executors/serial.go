package executors

import (
	"errors"
	"sync"
)

var (
	ErrSerialStarted    = errors.New("serial executor already started or stopped")
	ErrSerialNotStarted = errors.New("serial executor not started or already stopped")
)

const (
	serialInitialized int32 = iota
	serialStarted
	serialStopped
)

// Serial 在单个常驻 goroutine 上按提交顺序执行任务。
//
// 链式回调默认跟随完成者的 goroutine；当后续工作必须回到某个固定的逻辑线程
// （例如所有状态变更都收敛到一个事件循环）时，在回调中把工作 Submit 给一个
// Serial 即可。future 包内部不会使用 Serial，由调用方自行管理生命周期：
//
//	s := executors.NewSerial(64)
//	_ = s.Start()
//	defer func() { _ = s.Stop(); s.Join() }()
type Serial struct {
	mu    sync.RWMutex
	state int32
	tasks chan func()
	done  chan struct{}
}

// NewSerial 创建队列容量为 queueSize 的串行执行器。队列满时 Submit 阻塞。
func NewSerial(queueSize int) *Serial {
	if queueSize < 0 {
		panic("executors: negative queue size")
	}
	return &Serial{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Start 启动执行 goroutine。只允许从初始状态启动一次，
// 重复 Start 或停止后 Start 返回 ErrSerialStarted。
func (s *Serial) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != serialInitialized {
		return ErrSerialStarted
	}
	s.state = serialStarted
	go s.run()
	return nil
}

// Stop 关闭任务队列。队列中已提交的任务仍会被执行完，用 Join 等待排空。
// 未启动或重复 Stop 返回 ErrSerialNotStarted。
func (s *Serial) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != serialStarted {
		return ErrSerialNotStarted
	}
	s.state = serialStopped
	close(s.tasks)
	return nil
}

// Submit 把 f 追加到队列尾部。队列满时阻塞直到有空位。
// 在非运行状态下提交是使用错误，会 panic。
func (s *Serial) Submit(f func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != serialStarted {
		panic("executors: serial executor is not running")
	}
	s.tasks <- f
}

// Join 阻塞直到 Stop 之后队列中剩余的任务全部执行完毕。
func (s *Serial) Join() {
	<-s.done
}

func (s *Serial) run() {
	defer close(s.done)
	for task := range s.tasks {
		task()
	}
}
