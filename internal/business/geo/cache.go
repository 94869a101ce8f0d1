package geo

import (
	"context"
	"sync"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

// Cache memoizes provider results by provider ID for the life of the process.
// Failed fetches are not stored, so the next call retries.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	mu    sync.Mutex
	geoms []model.StateGeometry
	ready bool
}

var shared = NewCache()

// Shared returns the process-wide cache.
func Shared() *Cache { return shared }

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Get returns the cached geometry for p, fetching it on first use.
// Callers must not modify the returned slice.
func (c *Cache) Get(ctx context.Context, p Provider) ([]model.StateGeometry, error) {
	c.mu.Lock()
	e, ok := c.entries[p.ID()]
	if !ok {
		e = &cacheEntry{}
		c.entries[p.ID()] = e
	}
	c.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		return e.geoms, nil
	}
	geoms, err := p.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	e.geoms = geoms
	e.ready = true
	return geoms, nil
}

// Loaded reports whether p's geometry is already cached.
func (c *Cache) Loaded(id string) bool {
	c.mu.Lock()
	e, ok := c.entries[id]
	c.mu.Unlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}
