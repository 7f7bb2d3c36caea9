// Package pipeline wires discovery, scanning, caching and rendering into the
// single flow shared by the CLI, watch mode and the MCP server.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mvp-joe/classdiagram/internal/cache"
	"github.com/mvp-joe/classdiagram/internal/config"
	"github.com/mvp-joe/classdiagram/internal/diagram"
	"github.com/mvp-joe/classdiagram/internal/files"
	"github.com/mvp-joe/classdiagram/internal/model"
	"github.com/mvp-joe/classdiagram/internal/scanner"
)

// Pipeline scans a root directory. Declarations carry paths relative to the
// root with '/' separators.
type Pipeline struct {
	rootDir  string
	cfg      *config.Config
	reader   scanner.LineReader
	cache    *cache.Cache
	progress scanner.ProgressReporter
}

// New creates a Pipeline over rootDir. A nil cfg uses config.Default().
func New(rootDir string, cfg *config.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	p := &Pipeline{
		rootDir: abs,
		cfg:     cfg,
		reader:  files.FSReader{},
	}

	if cfg.Cache.Enabled {
		p.cache, err = cache.New(cfg.Cache.MaxEntries)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RootDir returns the absolute scan root.
func (p *Pipeline) RootDir() string {
	return p.rootDir
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// SetProgress installs a reporter used by subsequent scans.
func (p *Pipeline) SetProgress(progress scanner.ProgressReporter) {
	p.progress = progress
}

// DiagramOptions returns the configured rendering options.
func (p *Pipeline) DiagramOptions() diagram.Options {
	return diagram.Options{
		Relations: p.cfg.Diagram.Relations,
		Namespace: p.cfg.Diagram.Namespace,
	}
}

// Discover lists candidate files below subDir (relative to the root, "" for
// the root itself) as root-relative slash paths.
func (p *Pipeline) Discover(subDir string) ([]string, error) {
	dir, err := p.resolve(subDir)
	if err != nil {
		return nil, err
	}

	discovery, err := files.NewDiscovery(dir, p.cfg.Scan.Include, p.cfg.Scan.Ignore, p.cfg.Scan.GitIgnore)
	if err != nil {
		return nil, fmt.Errorf("invalid scan patterns: %w", err)
	}
	found, err := discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	rel := make([]string, 0, len(found))
	for _, path := range found {
		r, err := filepath.Rel(p.rootDir, path)
		if err != nil {
			return nil, err
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel, nil
}

// Scan discovers and scans every file below subDir.
func (p *Pipeline) Scan(ctx context.Context, subDir string) (*model.Result, scanner.Stats, error) {
	paths, err := p.Discover(subDir)
	if err != nil {
		return nil, scanner.Stats{}, err
	}

	opts := scanner.Options{Progress: p.progress}
	if p.cache != nil {
		opts.Cache = p.cache
	}

	result, stats := scanner.ScanFiles(ctx, paths, rootReader{root: p.rootDir, inner: p.reader}, opts)
	log.WithFields(log.Fields{
		"files":      stats.Files,
		"cache_hits": stats.CacheHits,
		"skipped":    stats.Skipped,
		"types":      result.Len(),
		"duration":   stats.Duration,
	}).Debug("scan complete")

	if stats.Cancelled {
		return result, stats, ctx.Err()
	}
	return result, stats, nil
}

// Generate scans subDir and renders the diagram with opts.
func (p *Pipeline) Generate(ctx context.Context, subDir string, opts diagram.Options) (string, scanner.Stats, error) {
	result, stats, err := p.Scan(ctx, subDir)
	if err != nil {
		return "", stats, err
	}
	return diagram.RenderWithOptions(result, opts), stats, nil
}

// Invalidate drops cached results for the given absolute or root-relative paths.
func (p *Pipeline) Invalidate(paths []string) {
	if p.cache == nil {
		return
	}
	for _, path := range paths {
		if filepath.IsAbs(path) {
			rel, err := filepath.Rel(p.rootDir, path)
			if err != nil {
				continue
			}
			path = rel
		}
		p.cache.Invalidate(filepath.ToSlash(path))
	}
}

// Close releases the cache.
func (p *Pipeline) Close() {
	if p.cache != nil {
		p.cache.Close()
	}
}

// resolve maps subDir onto the root and rejects paths escaping it.
func (p *Pipeline) resolve(subDir string) (string, error) {
	if subDir == "" || subDir == "." {
		return p.rootDir, nil
	}

	dir := subDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.rootDir, filepath.FromSlash(subDir))
	}
	dir = filepath.Clean(dir)

	rel, err := filepath.Rel(p.rootDir, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the root %s", subDir, p.rootDir)
	}
	return dir, nil
}

// rootReader reads root-relative paths.
type rootReader struct {
	root  string
	inner scanner.LineReader
}

func (r rootReader) ReadLines(path string) ([]string, error) {
	return r.inner.ReadLines(filepath.Join(r.root, filepath.FromSlash(path)))
}
