package retry

import (
	"time"
)

type RetryStrategy interface {
	// attempt starts from 0
	NextBackoff(attempt int) time.Duration
}

type fixedBackoff time.Duration

// FixedBackoff 每次重试间隔固定为 d。
func FixedBackoff(d time.Duration) fixedBackoff {
	return fixedBackoff(d)
}

func (f fixedBackoff) NextBackoff(attempt int) time.Duration {
	return time.Duration(f)
}

type linearBackoff time.Duration

// LinearBackoff 重试间隔按 d、2d、3d……线性增长。
func LinearBackoff(d time.Duration) linearBackoff {
	return linearBackoff(d)
}

func (l linearBackoff) NextBackoff(attempt int) time.Duration {
	return time.Duration(l) * time.Duration(attempt+1)
}

type exponentialBackoff struct {
	baseDuration time.Duration
	maxDuration  time.Duration
}

// ExponentialBackoff 重试间隔按 base、2*base、4*base……指数增长，
// 封顶为 maxDuration。
func ExponentialBackoff(baseDuration time.Duration, maxDuration time.Duration) *exponentialBackoff {
	return &exponentialBackoff{
		baseDuration: baseDuration,
		maxDuration:  maxDuration,
	}
}

func (e *exponentialBackoff) NextBackoff(attempt int) time.Duration {
	d := e.baseDuration << uint(attempt)
	// d <= 0 说明位移溢出
	if d <= 0 || d > e.maxDuration {
		return e.maxDuration
	}
	return d
}
