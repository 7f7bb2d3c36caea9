package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// Test Plan for ScanFiles:
// - Results merge in path order with source file stamped
// - Each file starts with an empty namespace
// - Unreadable files are skipped and counted, the run continues
// - A cancelled context stops before the next file
// - Cache hits skip scanning and are counted
// - Progress callbacks fire per file and once at start and end

type mapReader map[string][]string

func (r mapReader) ReadLines(path string) ([]string, error) {
	lines, ok := r[path]
	if !ok {
		return nil, errors.New("permission denied")
	}
	return lines, nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*model.Result
	puts    int
}

func (c *memoryCache) Get(path string, lines []string) (*model.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[path]
	return r, ok
}

func (c *memoryCache) Put(path string, lines []string, result *model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = result
	c.puts++
}

type countingProgress struct {
	started  int
	scanned  []string
	complete *Stats
}

func (p *countingProgress) OnScanStart(total int)     { p.started = total }
func (p *countingProgress) OnFileScanned(path string) { p.scanned = append(p.scanned, path) }
func (p *countingProgress) OnScanComplete(stats Stats) {
	p.complete = &stats
}

// Test: merge order, per-file namespace and file stamping
func TestScanFiles_MergesInOrder(t *testing.T) {
	t.Parallel()

	reader := mapReader{
		"a.cs": {"namespace A;", "class X {", "}"},
		"b.cs": {"class Y {", "}", "enum E { One }"},
	}
	result, stats := ScanFiles(context.Background(), []string{"a.cs", "b.cs"}, reader, Options{})

	require.Len(t, result.Classes, 2)
	assert.Equal(t, "X", result.Classes[0].Name)
	assert.Equal(t, "A", result.Classes[0].Namespace)
	assert.Equal(t, "a.cs", result.Classes[0].Location.File)
	assert.Equal(t, "Y", result.Classes[1].Name)
	assert.Equal(t, "", result.Classes[1].Namespace)
	assert.Equal(t, "b.cs", result.Enums[0].Location.File)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 2, stats.Scanned)
	assert.Equal(t, 2, stats.Classes)
	assert.Equal(t, 1, stats.Enums)
	assert.False(t, stats.Cancelled)
}

// Test: unreadable files are skipped without aborting
func TestScanFiles_SkipsUnreadable(t *testing.T) {
	t.Parallel()

	reader := mapReader{"ok.cs": {"class Ok {", "}"}}
	result, stats := ScanFiles(context.Background(), []string{"missing.cs", "ok.cs"}, reader, Options{})

	require.Len(t, result.Classes, 1)
	assert.Equal(t, "Ok", result.Classes[0].Name)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Scanned)
}

// Test: cancellation stops between files
func TestScanFiles_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := mapReader{"a.cs": {"class A {", "}"}}
	result, stats := ScanFiles(ctx, []string{"a.cs"}, reader, Options{})

	assert.Equal(t, 0, result.Len())
	assert.True(t, stats.Cancelled)
	assert.Equal(t, 0, stats.Scanned)
}

// Test: second run is served from the cache
func TestScanFiles_Cache(t *testing.T) {
	t.Parallel()

	cache := &memoryCache{entries: map[string]*model.Result{}}
	reader := mapReader{"a.cs": {"class A {", "}"}}

	_, first := ScanFiles(context.Background(), []string{"a.cs"}, reader, Options{Cache: cache})
	assert.Equal(t, 1, first.Scanned)
	assert.Equal(t, 1, cache.puts)

	result, second := ScanFiles(context.Background(), []string{"a.cs"}, reader, Options{Cache: cache})
	assert.Equal(t, 0, second.Scanned)
	assert.Equal(t, 1, second.CacheHits)
	require.Len(t, result.Classes, 1)
	assert.Equal(t, "A", result.Classes[0].Name)
}

// Test: progress callbacks
func TestScanFiles_Progress(t *testing.T) {
	t.Parallel()

	progress := &countingProgress{}
	reader := mapReader{"a.cs": {"class A {", "}"}}
	_, _ = ScanFiles(context.Background(), []string{"a.cs", "gone.cs"}, reader, Options{Progress: progress})

	assert.Equal(t, 2, progress.started)
	assert.Equal(t, []string{"a.cs", "gone.cs"}, progress.scanned)
	require.NotNil(t, progress.complete)
	assert.Equal(t, 1, progress.complete.Skipped)
}
