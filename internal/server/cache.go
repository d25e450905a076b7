package server

import (
	"sync"
	"time"

	"github.com/axlocate/axlocate/internal/axtree"
)

// Key identifies a cached tree: the configured app for live reads, or the
// snapshot path for file reads. Exactly one field is set.
type Key struct {
	App  string
	Path string
}

// cacheEntry holds a captured tree with its timestamp.
type cacheEntry struct {
	root      *axtree.NodeData
	timestamp time.Time
}

// TreeCache provides a TTL-based cache for captured accessibility trees.
// Entries are plain NodeData, safe to share: nothing in the engine or the
// dump mutates a tree.
type TreeCache struct {
	mu      sync.Mutex
	entries map[Key]cacheEntry
	ttl     time.Duration
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[Key]cacheEntry),
		ttl:     ttl,
	}
}

// Read returns the cached tree for key if within TTL, otherwise calls fetch
// and stores the result. fetch runs outside the cache lock.
func (c *TreeCache) Read(key Key, fetch func() (*axtree.NodeData, error)) (*axtree.NodeData, error) {
	if c.ttl == 0 {
		return fetch()
	}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		root := entry.root
		c.mu.Unlock()
		return root, nil
	}
	c.mu.Unlock()

	root, err := fetch()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{root: root, timestamp: time.Now()}
	c.mu.Unlock()

	return root, nil
}

// Invalidate removes the entry for key.
func (c *TreeCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll clears the entire cache.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]cacheEntry)
}
