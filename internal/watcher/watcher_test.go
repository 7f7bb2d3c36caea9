package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Watcher:
// - New fails for a missing root or a file root
// - A single change is delivered after the debounce period
// - Rapid changes are coalesced into one sorted, deduplicated batch
// - Extension filter drops other files
// - Files in new directories are reported
// - Skipped directories are not watched
// - Context cancellation ends Run and Close is idempotent

const testDebounce = 50 * time.Millisecond

func startWatcher(t *testing.T, root string, opts Options) (<-chan []string, context.CancelFunc, <-chan error) {
	t.Helper()

	if opts.Debounce == 0 {
		opts.Debounce = testDebounce
	}
	w, err := New(root, opts)
	require.NoError(t, err)

	batches := make(chan []string, 10)
	done := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		done <- w.Run(ctx, func(files []string) { batches <- files })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return batches, cancel, done
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case files := <-batches:
		return files
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func assertNoBatch(t *testing.T, batches <-chan []string) {
	t.Helper()
	select {
	case files := <-batches:
		t.Fatalf("unexpected batch: %v", files)
	case <-time.After(5 * testDebounce):
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// Test: invalid roots
func TestNew_InvalidRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := New(filepath.Join(root, "missing"), Options{})
	assert.Error(t, err)

	file := filepath.Join(root, "a.cs")
	write(t, file, "")
	_, err = New(file, Options{})
	assert.Error(t, err)
}

// Test: single change after debounce
func TestWatcher_SingleChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches, _, _ := startWatcher(t, root, Options{Extensions: []string{".cs"}})

	path := filepath.Join(root, "Order.cs")
	write(t, path, "class Order {}")

	assert.Equal(t, []string{path}, waitBatch(t, batches))
}

// Test: rapid changes are coalesced and deduplicated
func TestWatcher_Coalesces(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches, _, _ := startWatcher(t, root, Options{Extensions: []string{".cs"}, Debounce: 200 * time.Millisecond})

	b := filepath.Join(root, "B.cs")
	a := filepath.Join(root, "A.cs")
	write(t, b, "1")
	write(t, a, "1")
	write(t, b, "2")

	assert.Equal(t, []string{a, b}, waitBatch(t, batches))
}

// Test: extension filter
func TestWatcher_ExtensionFilter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches, _, _ := startWatcher(t, root, Options{Extensions: []string{".cs"}})

	write(t, filepath.Join(root, "notes.md"), "x")
	assertNoBatch(t, batches)
}

// Test: new directories are watched
func TestWatcher_NewDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches, _, _ := startWatcher(t, root, Options{Extensions: []string{".cs"}})

	dir := filepath.Join(root, "Models")
	require.NoError(t, os.Mkdir(dir, 0755))
	// Give the watcher time to add the directory
	time.Sleep(2 * testDebounce)

	path := filepath.Join(dir, "User.cs")
	write(t, path, "class User {}")

	files := waitBatch(t, batches)
	assert.Contains(t, files, path)
}

// Test: skipped directories
func TestWatcher_SkipDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	skipped := filepath.Join(root, "bin")
	require.NoError(t, os.Mkdir(skipped, 0755))

	batches, _, _ := startWatcher(t, root, Options{Extensions: []string{".cs"}, SkipDirs: []string{"bin"}})

	write(t, filepath.Join(skipped, "Gen.cs"), "x")
	assertNoBatch(t, batches)
}

// Test: cancellation ends Run, Close twice is safe
func TestWatcher_Cancel(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w, err := New(root, Options{Debounce: testDebounce})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func([]string) {}) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.NoError(t, w.Close())
}
