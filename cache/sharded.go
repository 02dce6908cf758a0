// Package cache provides a small sharded LRU used by the driver for
// compiled programs and uniform-location lookups.
package cache

import (
	"container/list"
	"hash/fnv"
	"sync"
)

// shardCount is the number of shards. A power of 2 so shard selection
// is a mask.
const shardCount = 8

// Hasher computes the shard hash of a key.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Sharded is a thread-safe sharded LRU cache. Each shard holds at
// most capacity entries; the least recently used entry is evicted
// when a shard fills, invoking the optional eviction hook.
type Sharded[K comparable, V any] struct {
	shards   [shardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int
	onEvict  func(K, V)
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*list.Element
	order   *list.List
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewSharded creates a cache with the given per-shard capacity. The
// eviction hook may be nil; it runs outside the shard lock but must
// not re-enter the cache.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K], onEvict func(K, V)) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = 64
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity, onEvict: onEvict}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*list.Element)
		c.shards[i].order = list.New()
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&(shardCount-1)]
}

// Get returns the cached value for key and marks it recently used.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[key]; ok {
		s.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores a value, evicting the least recently used entry of the
// shard when at capacity.
func (c *Sharded[K, V]) Put(key K, value V) {
	s := c.shardFor(key)
	var evictedKey K
	var evictedVal V
	evicted := false

	s.mu.Lock()
	if el, ok := s.entries[key]; ok {
		el.Value.(*entry[K, V]).value = value
		s.order.MoveToFront(el)
		s.mu.Unlock()
		return
	}
	if s.order.Len() >= c.capacity {
		oldest := s.order.Back()
		if oldest != nil {
			e := oldest.Value.(*entry[K, V])
			evictedKey, evictedVal, evicted = e.key, e.value, true
			delete(s.entries, e.key)
			s.order.Remove(oldest)
		}
	}
	s.entries[key] = s.order.PushFront(&entry[K, V]{key: key, value: value})
	s.mu.Unlock()

	if evicted && c.onEvict != nil {
		c.onEvict(evictedKey, evictedVal)
	}
}

// Len returns the total number of cached entries.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += s.order.Len()
		s.mu.Unlock()
	}
	return n
}
