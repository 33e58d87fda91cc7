// Package executors 提供 future.Executor 接口的几种实现：
// GoExecutor（每任务一个 goroutine）、PoolExecutor（限制并发数）
// 和 Serial（单 goroutine 顺序执行）。
package executors

// GoExecutor 每个任务启动一个新的 goroutine，是 future 包的默认执行器。
type GoExecutor struct{}

func (GoExecutor) Submit(f func()) {
	go f()
}

// PoolExecutor 用信号量限制同时运行的 goroutine 数量。
// goroutine 不会被复用，被限制的只是并发度。
type PoolExecutor struct {
	sem chan struct{}
}

// NewPoolExecutor 创建并发上限为 maxWorkers 的执行器。
// maxWorkers 必须大于 0，否则 panic。
func NewPoolExecutor(maxWorkers int) *PoolExecutor {
	if maxWorkers <= 0 {
		panic("executors: max workers must be positive")
	}
	return &PoolExecutor{
		sem: make(chan struct{}, maxWorkers),
	}
}

// Submit 在并发额度可用时启动新的 goroutine 执行 f；额度耗尽时阻塞等待。
func (p *PoolExecutor) Submit(f func()) {
	p.sem <- struct{}{}
	go func() {
		defer func() { <-p.sem }()
		f()
	}()
}
