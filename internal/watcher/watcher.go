// Package watcher reports debounced batches of changed source files under a
// directory tree.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Extensions []string      // File extensions to report, e.g. ".cs". Empty reports every file.
	Debounce   time.Duration // Quiet period before a batch is delivered
	SkipDirs   []string      // Directory names never watched, e.g. ".git"
}

// Watcher watches a directory tree recursively. New directories are added as
// they appear.
type Watcher struct {
	fsw        *fsnotify.Watcher
	extensions map[string]bool
	skipDirs   map[string]bool
	debounce   time.Duration

	mu      sync.Mutex
	pending map[string]bool

	closeOnce sync.Once
}

// New creates a Watcher over root.
func New(root string, opts Options) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("watch root is not a directory: " + root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:        fsw,
		extensions: toSet(opts.Extensions),
		skipDirs:   toSet(opts.SkipDirs),
		debounce:   opts.Debounce,
		pending:    make(map[string]bool),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers sorted batches of changed files to onChange until ctx is done.
// onChange runs on the watch goroutine, so events arriving while it runs are
// collected into the next batch. Run closes the Watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func(files []string)) error {
	defer w.Close()

	timer := time.NewTimer(w.debounce)
	stopTimer(timer)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.record(event) {
				continue
			}
			// Restart the quiet period
			stopTimer(timer)
			timer.Reset(w.debounce)

		case <-timer.C:
			if files := w.drain(); len(files) > 0 {
				log.WithField("files", len(files)).Debug("change batch ready")
				onChange(files)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("file watcher error")
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	return err
}

// record adds event to the pending batch and reports whether it counted.
func (w *Watcher) record(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				log.WithFields(log.Fields{"dir": event.Name, "error": err}).Warn("failed to watch new directory")
			}
			return false
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if len(w.extensions) > 0 && !w.extensions[filepath.Ext(event.Name)] {
		return false
	}

	w.mu.Lock()
	w.pending[event.Name] = true
	w.mu.Unlock()
	return true
}

// drain returns and clears the pending batch.
func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	w.pending = make(map[string]bool)
	sort.Strings(files)
	return files
}

// addTree watches root and every directory below it except skipped names.
func (w *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.WithFields(log.Fields{"path": path, "error": err}).Debug("skipping unreadable path")
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && w.skipDirs[info.Name()] {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			log.WithFields(log.Fields{"dir": path, "error": err}).Warn("failed to watch directory")
		}
		return nil
	})
}

// stopTimer stops t and drains a pending tick.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
