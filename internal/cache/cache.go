// Package cache holds recent results of remote reads in memory with TTL and
// LRU eviction.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

const defaultMaxEntries = 64

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// Cache stores values in-memory with TTL and LRU eviction. A nil *Cache or
// a cache with a non-positive TTL stores nothing.
type Cache[V any] struct {
	mu         sync.Mutex
	lru        *list.List
	byKey      map[string]*list.Element
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// New creates a new cache with bounds.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Cache[V]{
		lru:        list.New(),
		byKey:      make(map[string]*list.Element),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Key derives a fixed-size cache key from request identity parts, so raw
// request values are never held as map keys.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Put stores value under key if caching is enabled.
func (c *Cache[V]) Put(key string, value V) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl <= 0 {
		return
	}
	if elem, ok := c.byKey[key]; ok {
		c.lru.Remove(elem)
	}
	c.byKey[key] = c.lru.PushFront(entry[V]{key: key, value: value, expiresAt: c.now().Add(c.ttl)})
	c.evictLocked()
}

// Get returns the value stored under key if it has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.byKey[key]
	if !ok {
		return zero, false
	}
	ent := elem.Value.(entry[V])
	if c.now().After(ent.expiresAt) {
		c.lru.Remove(elem)
		delete(c.byKey, key)
		return zero, false
	}
	c.lru.MoveToFront(elem)
	return ent.value, true
}

// Delete drops key.
func (c *Cache[V]) Delete(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.byKey[key]; ok {
		c.lru.Remove(elem)
		delete(c.byKey, key)
	}
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpiredLocked()
	return c.lru.Len()
}

// SetMaxEntries updates the max entries and evicts if needed.
func (c *Cache[V]) SetMaxEntries(maxEntries int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	c.maxEntries = maxEntries
	c.evictLocked()
}

func (c *Cache[V]) evictLocked() {
	c.evictExpiredLocked()
	for c.lru.Len() > c.maxEntries {
		back := c.lru.Back()
		if back == nil {
			return
		}
		delete(c.byKey, back.Value.(entry[V]).key)
		c.lru.Remove(back)
	}
}

func (c *Cache[V]) evictExpiredLocked() {
	now := c.now()
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		ent := elem.Value.(entry[V])
		if now.After(ent.expiresAt) {
			delete(c.byKey, ent.key)
			c.lru.Remove(elem)
		}
		elem = prev
	}
}
