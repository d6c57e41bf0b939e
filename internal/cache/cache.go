// Package cache provides a small in-process TTL cache used to memoize
// roster and organization lookups against the telemetry provider.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache is a mutex-guarded key/value store with per-entry expiry.
// Expired entries are overwritten on the next Set; there is no sweeper.
type TTLCache struct {
	mu    sync.Mutex
	store map[string]entry
	now   func() time.Time
}

// New returns an empty cache.
func New() *TTLCache {
	return &TTLCache{
		store: make(map[string]entry),
		now:   time.Now,
	}
}

// Get returns the cached value for key, or false when absent or expired.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.store[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.store, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl. Non-positive ttl stores nothing.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

// Delete removes key if present.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}
