package future

import "github.com/saltfishpr/go-async/future/executors"

// Executor 定义了 Async/CtxAsync 执行异步任务所用的抽象。
//
// 默认情况下使用标准 Go goroutine（executors.GoExecutor{}）执行任务：
// 轻量、无池化、无并发上限。可以通过 SetExecutor 用任意 Executor 实现
// 覆盖默认执行器，常见做法是换成一个有并发上限的池：
//
//	future.SetExecutor(executors.NewPoolExecutor(100))
//
// 注意 Executor 只负责"在哪里跑"：链式回调（Then/Next）始终在完成共享状态的
// goroutine 上同步执行，不经过 Executor。需要把后续工作挪到固定逻辑线程时，
// 在回调中自行向 executors.Serial 这类执行器提交。
//
// 警告：
//   - 对于 RPC 等可能长时间阻塞的任务，池化执行器会造成任务排队。
//     只有在了解工作负载并经过性能验证后才应替换默认执行器。
//   - 向 SetExecutor 传递 nil 会 panic。
type Executor interface {
	Submit(func())
}

type ExecutorFunc func(func())

func (e ExecutorFunc) Submit(f func()) {
	e(f)
}

var executor Executor = executors.GoExecutor{}

func SetExecutor(e Executor) {
	if e == nil {
		panic("executor is nil")
	}
	executor = e
}
