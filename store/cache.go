package store

import (
	"sync"

	"github.com/google/uuid"
)

// IndexCache is an optional cross-request cache of built indexes, keyed by
// document identity. A given document ID always maps to one consistent
// index: writers replace the whole entry under the write lock, readers
// only ever observe complete indexes.
type IndexCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*MemoryIndex
}

func NewIndexCache() *IndexCache {
	return &IndexCache{entries: make(map[uuid.UUID]*MemoryIndex)}
}

func (c *IndexCache) Get(id uuid.UUID) (*MemoryIndex, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ix, ok := c.entries[id]
	return ix, ok
}

func (c *IndexCache) Put(id uuid.UUID, ix *MemoryIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = ix
}

func (c *IndexCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
