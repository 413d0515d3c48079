package cmd

import (
	"sync"
	"time"
)

// snapshotKey identifies one cached snapshot: the operation and the page it
// was taken from.
type snapshotKey struct {
	Op  string
	URL string
}

// snapshotEntry holds a serialized snapshot with its timestamp.
type snapshotEntry struct {
	text      string
	timestamp time.Time
}

// snapshotCache provides a TTL-based cache for serialized page snapshots.
// Repeated tool calls within the TTL reuse the previous result instead of
// re-walking the page.
type snapshotCache struct {
	mu      sync.Mutex
	entries map[snapshotKey]snapshotEntry
	ttl     time.Duration
}

// newSnapshotCache creates a new cache. A ttl of 0 disables caching.
func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		entries: make(map[snapshotKey]snapshotEntry),
		ttl:     ttl,
	}
}

// get returns the cached text for op on url if it is still within TTL.
func (c *snapshotCache) get(op, url string) (string, bool) {
	if c.ttl == 0 {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[snapshotKey{Op: op, URL: url}]
	if !ok || time.Since(entry.timestamp) >= c.ttl {
		return "", false
	}
	return entry.text, true
}

// put stores the text for op on url.
func (c *snapshotCache) put(op, url, text string) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[snapshotKey{Op: op, URL: url}] = snapshotEntry{text: text, timestamp: time.Now()}
}

// invalidateAll clears the entire cache.
func (c *snapshotCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[snapshotKey]snapshotEntry)
}
