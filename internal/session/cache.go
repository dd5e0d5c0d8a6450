package session

import (
	"context"
	"sync"
	"time"
)

// LoadFunc fetches a fresh copy of the source rows.
type LoadFunc func(ctx context.Context) ([][]string, error)

// RowCache memoizes one snapshot of the source rows. The first successful
// load is kept until Invalidate is called; failed loads are not cached, so
// the next Get retries.
type RowCache struct {
	mu       sync.Mutex
	rows     [][]string
	loaded   bool
	loadedAt time.Time
	now      func() time.Time
}

// NewRowCache returns an empty cache.
func NewRowCache() *RowCache {
	return &RowCache{now: time.Now}
}

// Get returns the cached rows, calling load on the first call after
// construction or Invalidate. Concurrent callers wait for a single load.
func (c *RowCache) Get(ctx context.Context, load LoadFunc) ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.rows, nil
	}
	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.rows = rows
	c.loaded = true
	c.loadedAt = c.now()
	return rows, nil
}

// Invalidate drops the cached snapshot; the next Get reloads.
func (c *RowCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rows = nil
	c.loaded = false
	c.loadedAt = time.Time{}
}

// LoadedAt reports when the current snapshot was loaded, and false when the
// cache is empty.
func (c *RowCache) LoadedAt() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadedAt, c.loaded
}
