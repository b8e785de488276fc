package utils

import (
	"sync"
	"time"
)

// cacheItem is a cached value with expiration
type cacheItem struct {
	value      string
	expiration time.Time
}

// RenderCache memoizes sanitized note markup. Entries are keyed by note
// ID plus update timestamp, so a stale entry is never served; expiration
// only bounds memory.
type RenderCache struct {
	items map[string]cacheItem
	mu    sync.RWMutex
	ttl   time.Duration
}

// NewRenderCache creates a cache and starts its cleanup loop
func NewRenderCache(ttl time.Duration) *RenderCache {
	c := &RenderCache{
		items: make(map[string]cacheItem),
		ttl:   ttl,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached rendering
func (c *RenderCache) Get(key string) (string, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(item.expiration) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return "", false
	}
	return item.value, true
}

// Set stores a rendering
func (c *RenderCache) Set(key, value string) {
	c.mu.Lock()
	c.items[key] = cacheItem{value: value, expiration: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *RenderCache) cleanupLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for k, item := range c.items {
			if now.After(item.expiration) {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}
