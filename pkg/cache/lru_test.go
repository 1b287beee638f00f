package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		var evicted []string
		c := cache.NewLRU[string, int](2, func(k string, _ int) { evicted = append(evicted, k) })

		c.Put("a", 1)
		c.Put("b", 2)
		_, _ = c.Get("a")
		c.Put("c", 3)

		assert.Equal(t, []string{"b"}, evicted)
		_, ok := c.Get("b")
		assert.False(t, ok)
		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get or create", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2, nil)
		calls := 0
		create := func() int { calls++; return 7 }

		v, found := c.GetOrCreate("x", create)
		assert.False(t, found)
		assert.Equal(t, 7, v)

		v, found = c.GetOrCreate("x", create)
		assert.True(t, found)
		assert.Equal(t, 7, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("put replaces without evicting", func(t *testing.T) {
		t.Parallel()
		evictions := 0
		c := cache.NewLRU[string, int](2, func(string, int) { evictions++ })
		c.Put("a", 1)
		c.Put("a", 2)
		v, _ := c.Get("a")
		assert.Equal(t, 2, v)
		assert.Zero(t, evictions)
	})

	t.Run("remove and clear run callback", func(t *testing.T) {
		t.Parallel()
		var evicted []string
		c := cache.NewLRU[string, int](3, func(k string, _ int) { evicted = append(evicted, k) })
		c.Put("a", 1)
		c.Put("b", 2)

		assert.True(t, c.Remove("a"))
		assert.False(t, c.Remove("a"))
		c.Clear()

		assert.ElementsMatch(t, []string{"a", "b"}, evicted)
		assert.Zero(t, c.Len())
	})

	t.Run("callback may reenter", func(t *testing.T) {
		t.Parallel()
		var c *cache.LRU[int, int]
		c = cache.NewLRU[int, int](1, func(int, int) { _ = c.Len() })
		c.Put(1, 1)
		c.Put(2, 2)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("concurrent use", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[int, int](8, nil)
		var wg sync.WaitGroup
		for i := range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.GetOrCreate(i%10, func() int { return i })
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Len(), 8)
	})

	t.Run("zero capacity panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRU[int, int](0, nil) })
	})
}
