package retry

import (
	"context"
	"time"
)

type retryOptions struct {
	maxAttempts   int
	retryStrategy RetryStrategy
	shouldRetry   func(err error) bool
}

type RetryOption func(*retryOptions)

// WithMaxAttempts 设置最大尝试次数（含第一次执行），默认 3。
func WithMaxAttempts(maxAttempts int) RetryOption {
	return func(opts *retryOptions) {
		opts.maxAttempts = maxAttempts
	}
}

// WithRetryStrategy 设置重试间隔策略，默认 FixedBackoff(100ms)。
func WithRetryStrategy(strategy RetryStrategy) RetryOption {
	return func(opts *retryOptions) {
		opts.retryStrategy = strategy
	}
}

// WithShouldRetryFunc 设置错误过滤：返回 false 时立即放弃并返回该错误。
func WithShouldRetryFunc(fn func(err error) bool) RetryOption {
	return func(opts *retryOptions) {
		opts.shouldRetry = fn
	}
}

// Do 执行 f 直到成功、放弃或 ctx 取消，返回最后一次的结果。
// ctx 的取消在每次执行前和重试等待期间都会被响应。
func Do[T any](ctx context.Context, f func() (T, error), options ...RetryOption) (T, error) {
	opts := retryOptions{
		maxAttempts:   3,
		retryStrategy: FixedBackoff(100 * time.Millisecond),
	}
	for _, option := range options {
		option(&opts)
	}
	if opts.shouldRetry == nil {
		opts.shouldRetry = func(error) bool { return true }
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt < opts.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := f()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !opts.shouldRetry(err) {
			break
		}

		// 最后一次尝试后不再等待
		if attempt == opts.maxAttempts-1 {
			break
		}

		if err := sleep(ctx, opts.retryStrategy.NextBackoff(attempt)); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
