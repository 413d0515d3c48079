package server

import (
	"sync"
	"time"
)

// cacheKey identifies one cached snapshot: the operation and the page URL
// it was taken from.
type cacheKey struct {
	Op  string
	URL string
}

// cacheEntry holds a serialized snapshot with its timestamp.
type cacheEntry struct {
	payload   []byte
	timestamp time.Time
}

// SnapshotCache provides a TTL-based cache for serialized page snapshots.
type SnapshotCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

// NewSnapshotCache creates a new cache. A ttl of 0 disables caching.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached payload for op on url if it is still within TTL.
func (c *SnapshotCache) Get(op, url string) ([]byte, bool) {
	if c.ttl == 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[cacheKey{Op: op, URL: url}]
	if !ok || time.Since(entry.timestamp) >= c.ttl {
		return nil, false
	}
	return entry.payload, true
}

// Put stores the payload for op on url.
func (c *SnapshotCache) Put(op, url string, payload []byte) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{Op: op, URL: url}] = cacheEntry{payload: payload, timestamp: time.Now()}
}

// InvalidateAll clears the entire cache.
func (c *SnapshotCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
