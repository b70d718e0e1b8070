package client

import (
	"context"
	"strings"
	"sync"
)

// FetchFunc produces a fresh Result for a cache key.
type FetchFunc func(ctx context.Context) Result

// Key joins key parts into the canonical cache key form.
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

type cacheEntry struct {
	result Result
	stale  bool
}

// Cache is a fetch-through cache over action results. A read serves the
// stored envelope unless the key is missing or has been invalidated, in
// which case the fetch runs and its result replaces the entry. Invalidation
// targets exact keys only; there is no prefix or wildcard matching.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Fetch returns the cached envelope for key, running fn first when the entry
// is missing or stale.
func (c *Cache) Fetch(ctx context.Context, key string, fn FetchFunc) Result {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !entry.stale {
		res := entry.result
		c.mu.Unlock()
		return res
	}
	c.mu.Unlock()

	res := fn(ctx)

	c.mu.Lock()
	c.entries[key] = &cacheEntry{result: res}
	c.mu.Unlock()
	return res
}

// Invalidate marks the entry under key stale so the next Fetch refetches.
// Unknown keys are a no-op.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		entry.stale = true
	}
}

// Peek reports the cached result without triggering a fetch.
func (c *Cache) Peek(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || entry.stale {
		return Result{}, false
	}
	return entry.result, true
}
