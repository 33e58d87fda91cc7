// Package futurecache 提供以 SharedFuture 为条目的单飞（single-flight）缓存。
//
// 同一个 key 的并发 GetOrFetch 只会触发一次 fetch：第一个调用者创建条目并
// 提交拉取任务，后续调用者拿到同一个 SharedFuture，等待同一个结果。条目数
// 超过容量时按 LRU 驱逐；被驱逐的条目对已持有 SharedFuture 的读者仍然有效，
// 只是下一次 GetOrFetch 会重新拉取。
package futurecache

import (
	"sync"

	"github.com/saltfishpr/go-async/future"
	"github.com/saltfishpr/go-async/future/executors"
	"github.com/saltfishpr/go-async/futurecache/lru"
	"github.com/saltfishpr/go-async/routine"
)

type options struct {
	executor    future.Executor
	cacheErrors bool
}

// Option 用于在构建时配置 Cache。
type Option func(*options)

// WithExecutor 指定执行 fetch 的执行器。默认每次 fetch 启动一个新 goroutine。
func WithExecutor(e future.Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// WithErrorCaching 让失败的结果也留在缓存中。默认情况下 fetch 失败的条目
// 会在失败时被移除，下一次 GetOrFetch 会重新拉取。
func WithErrorCaching() Option {
	return func(o *options) {
		o.cacheErrors = true
	}
}

// Cache 是键到 SharedFuture 的单飞缓存。
type Cache[K comparable, V any] struct {
	// mu 保证"查找未命中后创建条目"这一序列的原子性，
	// 这是单飞语义的关键；lru 自身的锁只覆盖单个操作。
	mu      sync.Mutex
	entries *lru.Cache[K, future.SharedFuture[V]]
	opts    options
}

// New 创建容量为 capacity 的缓存。capacity 必须大于 0，否则 panic。
func New[K comparable, V any](capacity int, opts ...Option) *Cache[K, V] {
	o := options{
		executor: executors.GoExecutor{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, V]{
		entries: lru.New[K, future.SharedFuture[V]](capacity),
		opts:    o,
	}
}

// GetOrFetch 返回 key 对应的 SharedFuture；条目不存在时创建并提交 fetch。
// 返回的 SharedFuture 可立即用于等待，无论 fetch 是否已经完成。
// fetch 中的 panic 会被转换为 *routine.RecoveredError 作为失败结果。
func (c *Cache[K, V]) GetOrFetch(key K, fetch func() (V, error)) future.SharedFuture[V] {
	c.mu.Lock()
	if sf, ok := c.entries.Get(key); ok {
		c.mu.Unlock()
		return sf
	}

	p := future.NewPromise[V]()
	sf := p.Future().Share()
	c.entries.Put(key, sf)
	c.mu.Unlock()

	// fetch 在锁外提交：内联执行器也不会与 removeEntry 死锁
	c.opts.executor.Submit(func() {
		var val V
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = routine.NewRecovered(1, r).AsError()
				}
			}()
			val, err = fetch()
		}()
		if err != nil {
			if !c.opts.cacheErrors {
				c.removeEntry(key, sf)
			}
			p.Fail(err)
			return
		}
		p.Set(val)
	})
	return sf
}

// Peek 返回 key 对应的 SharedFuture（若存在），不触发 fetch，也不更新访问顺序。
func (c *Cache[K, V]) Peek(key K) (future.SharedFuture[V], bool) {
	return c.entries.Peek(key)
}

// Remove 移除 key 对应的条目，返回是否存在。已经拿到 SharedFuture 的读者不受影响。
func (c *Cache[K, V]) Remove(key K) bool {
	return c.entries.Delete(key)
}

// Len 返回当前条目数。
func (c *Cache[K, V]) Len() int {
	return c.entries.Len()
}

// Purge 清空缓存。
func (c *Cache[K, V]) Purge() {
	c.entries.Purge()
}

// removeEntry 仅在条目仍指向 sf 时移除：失败的 fetch 不应误删
// 并发场景下已被替换的新条目。
func (c *Cache[K, V]) removeEntry(key K, sf future.SharedFuture[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.entries.Peek(key); ok && cur == sf {
		c.entries.Delete(key)
	}
}
