package lru_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltfishpr/go-async/futurecache/lru"
)

func TestCache_PutGet(t *testing.T) {
	c := lru.New[string, int](4)

	assert.False(t, c.Put("a", 1))
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_UpdateExisting(t *testing.T) {
	c := lru.New[string, int](4)

	c.Put("a", 1)
	assert.False(t, c.Put("a", 2), "更新已有键不应触发驱逐")

	got, _ := c.Get("a")
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := lru.New[int, string](2)

	c.Put(1, "one")
	c.Put(2, "two")

	// 访问 1，使 2 成为最久未使用
	_, _ = c.Get(1)

	evicted := c.Put(3, "three")
	assert.True(t, evicted)

	_, ok := c.Get(2)
	assert.False(t, ok, "最久未使用的条目被驱逐")
	_, ok = c.Get(1)
	assert.True(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
}

func TestCache_PeekDoesNotPromote(t *testing.T) {
	c := lru.New[int, string](2)

	c.Put(1, "one")
	c.Put(2, "two")

	got, ok := c.Peek(1)
	require.True(t, ok)
	assert.Equal(t, "one", got)

	// Peek 不更新访问顺序，1 仍是最久未使用
	c.Put(3, "three")
	_, ok = c.Peek(1)
	assert.False(t, ok)
}

func TestCache_Delete(t *testing.T) {
	c := lru.New[string, int](4)

	c.Put("a", 1)
	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, 0, c.Len())
}

func TestCache_Purge(t *testing.T) {
	c := lru.New[string, int](4)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_OnEvict(t *testing.T) {
	type kv struct {
		key   int
		value string
	}
	var evicted []kv

	c := lru.New(2, lru.WithOnEvict(func(key int, value string) {
		evicted = append(evicted, kv{key, value})
	}))

	c.Put(1, "one")
	c.Put(2, "two")
	c.Put(3, "three")

	require.Len(t, evicted, 1)
	assert.Equal(t, kv{1, "one"}, evicted[0])

	// 主动删除不触发回调
	c.Delete(2)
	assert.Len(t, evicted, 1)
}

func TestNew_InvalidCapacityPanics(t *testing.T) {
	assert.PanicsWithValue(t, "lru: capacity must be positive", func() {
		lru.New[string, int](0)
	})
}
