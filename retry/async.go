package retry

import (
	"context"

	"github.com/saltfishpr/go-async/future"
)

// Async 在 future 包的执行器上异步执行 Do，立即返回结果的 Future。
// 重试之间的退避等待发生在执行器的 goroutine 上，不会阻塞调用者；
// 取消 ctx 会中断等待并让 Future 以 ctx 的错误完成。
func Async[T any](ctx context.Context, f func() (T, error), options ...RetryOption) *future.Future[T] {
	return future.CtxAsync(ctx, func(ctx context.Context) (T, error) {
		return Do(ctx, f, options...)
	})
}
