// Package cache keeps per-file scan results in memory so unchanged files
// are not rescanned in watch mode or across MCP calls.
package cache

import (
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// entry pairs a result with the content hash it was computed from.
type entry struct {
	hash   string
	result *model.Result
}

// Cache is an in-memory per-file scan cache keyed by path. An entry only
// hits when the content hash of the lines still matches.
type Cache struct {
	entries otter.Cache[string, entry]
}

// New creates a cache holding at most capacity files.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}

	entries, err := otter.MustBuilder[string, entry](capacity).
		CollectStats().
		Cost(func(key string, value entry) uint32 { return 1 }).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build cache: %w", err)
	}

	return &Cache{entries: entries}, nil
}

// Get returns the cached result for path if it was stored for identical lines.
// A stale entry is dropped.
func (c *Cache) Get(path string, lines []string) (*model.Result, bool) {
	e, ok := c.entries.Get(path)
	if !ok {
		return nil, false
	}
	if e.hash != ContentHash(lines) {
		c.entries.Delete(path)
		return nil, false
	}
	return e.result, true
}

// Put stores result for path under the hash of lines.
func (c *Cache) Put(path string, lines []string, result *model.Result) {
	if result == nil {
		return
	}
	c.entries.Set(path, entry{hash: ContentHash(lines), result: result})
}

// Invalidate drops the entry for path.
func (c *Cache) Invalidate(path string) {
	c.entries.Delete(path)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.entries.Clear()
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	return c.entries.Size()
}

// Stats reports hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int64) {
	s := c.entries.Stats()
	return s.Hits(), s.Misses()
}

// Close releases the cache's background resources.
func (c *Cache) Close() {
	c.entries.Close()
}
