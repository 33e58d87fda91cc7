// Package lru 提供一个并发安全的泛型 LRU 缓存，作为 futurecache 的存储层。
package lru

import (
	"container/list"
	"sync"
)

// item 是挂在访问顺序链表上的键值对。
type item[K comparable, V any] struct {
	key   K
	value V
}

// Cache 是固定容量的 LRU 缓存：哈希映射提供 O(1) 查找，
// 双向链表维护访问顺序，互斥锁保证并发安全。
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	index    map[K]*list.Element
	onEvict  func(key K, value V)
}

// Option 用于在构建时配置 Cache。
type Option[K comparable, V any] func(*Cache[K, V])

// WithOnEvict 注册条目因容量压力被驱逐时的回调。
// 回调在未持有锁的情况下调用；Delete/Purge 主动移除的条目不会触发回调。
func WithOnEvict[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = fn
	}
}

// New 创建最大容量为 capacity 的缓存。capacity 必须大于 0，否则 panic。
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity <= 0 {
		panic("lru: capacity must be positive")
	}
	c := &Cache[K, V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[K]*list.Element, capacity),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get 查找键并把命中的条目标记为最近使用。
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, hit := c.index[key]; hit {
		c.order.MoveToFront(elem)
		return elem.Value.(*item[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Peek 返回键对应的值，但不更新访问顺序。
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, hit := c.index[key]; hit {
		return elem.Value.(*item[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put 插入或更新键值对，必要时先驱逐最久未使用的条目。
// 返回是否发生了驱逐。
func (c *Cache[K, V]) Put(key K, value V) (evicted bool) {
	var victim *item[K, V]

	c.mu.Lock()
	if elem, hit := c.index[key]; hit {
		c.order.MoveToFront(elem)
		elem.Value.(*item[K, V]).value = value
		c.mu.Unlock()
		return false
	}

	if c.order.Len() >= c.capacity {
		victim = c.removeOldest()
	}
	c.index[key] = c.order.PushFront(&item[K, V]{key: key, value: value})
	c.mu.Unlock()

	if victim != nil && c.onEvict != nil {
		c.onEvict(victim.key, victim.value)
	}
	return victim != nil
}

// Delete 移除键对应的条目，返回是否存在。
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, hit := c.index[key]
	if !hit {
		return false
	}
	c.removeElement(elem)
	return true
}

// Len 返回当前条目数。
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge 清空缓存。
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.index = make(map[K]*list.Element, c.capacity)
}

func (c *Cache[K, V]) removeOldest() *item[K, V] {
	back := c.order.Back()
	if back == nil {
		return nil
	}
	c.removeElement(back)
	return back.Value.(*item[K, V])
}

func (c *Cache[K, V]) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.index, elem.Value.(*item[K, V]).key)
}
