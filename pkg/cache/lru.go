package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a bounded map that evicts the least recently used entry once it
// holds more than capacity entries. The evict callback runs without the
// lock held, so it may call back into the cache.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(K, V)
}

// NewLRU panics when capacity is not positive.
func NewLRU[K comparable, V any](capacity int, onEvict func(K, V)) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
		onEvict:  onEvict,
	}
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// GetOrCreate returns the cached value or stores the one built by create.
// create runs under the lock and must not use the cache.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) (V, bool) {
	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		v := el.Value.(*entry[K, V]).value
		c.mu.Unlock()
		return v, true
	}
	v := create()
	evicted := c.insertLocked(key, v)
	c.mu.Unlock()

	c.evict(evicted)
	return v, false
}

// Put stores value, replacing any previous value without evicting it.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		el.Value.(*entry[K, V]).value = value
		c.mu.Unlock()
		return
	}
	evicted := c.insertLocked(key, value)
	c.mu.Unlock()

	c.evict(evicted)
}

// Remove deletes the entry and runs the evict callback for it.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	el, ok := c.items[key]
	if ok {
		c.order.Remove(el)
		delete(c.items, key)
	}
	c.mu.Unlock()

	if ok {
		c.evict([]*entry[K, V]{el.Value.(*entry[K, V])})
	}
	return ok
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache, running the evict callback for every entry.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	evicted := make([]*entry[K, V], 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		evicted = append(evicted, el.Value.(*entry[K, V]))
	}
	c.items = make(map[K]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	c.evict(evicted)
}

func (c *LRU[K, V]) insertLocked(key K, value V) []*entry[K, V] {
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})

	var evicted []*entry[K, V]
	for c.order.Len() > c.capacity {
		el := c.order.Back()
		c.order.Remove(el)
		e := el.Value.(*entry[K, V])
		delete(c.items, e.key)
		evicted = append(evicted, e)
	}
	return evicted
}

func (c *LRU[K, V]) evict(entries []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range entries {
		c.onEvict(e.key, e.value)
	}
}
