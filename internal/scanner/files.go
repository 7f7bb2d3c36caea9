package scanner

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// LineReader yields a file's text as lines without trailing newlines.
type LineReader interface {
	ReadLines(path string) ([]string, error)
}

// Cache stores per-file results keyed by path and content.
type Cache interface {
	Get(path string, lines []string) (*model.Result, bool)
	Put(path string, lines []string, result *model.Result)
}

// ProgressReporter receives callbacks while files are scanned.
type ProgressReporter interface {
	// OnScanStart is called once with the number of candidate files.
	OnScanStart(totalFiles int)

	// OnFileScanned is called after each file, including skipped ones.
	OnFileScanned(path string)

	// OnScanComplete is called when the run ends, cancelled or not.
	OnScanComplete(stats Stats)
}

// NoOpProgressReporter discards every callback.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnScanStart(totalFiles int) {}
func (NoOpProgressReporter) OnFileScanned(path string)  {}
func (NoOpProgressReporter) OnScanComplete(stats Stats) {}

// Options configures ScanFiles. Zero values disable caching and progress.
type Options struct {
	Cache    Cache
	Progress ProgressReporter
}

// Stats summarizes a ScanFiles run.
type Stats struct {
	Files      int // Candidate paths
	Scanned    int // Files parsed from source
	CacheHits  int // Files served from the cache
	Skipped    int // Unreadable files
	Classes    int
	Interfaces int
	Enums      int
	Cancelled  bool
	Duration   time.Duration
}

// ScanFiles scans paths one after another and merges their declarations in
// path order. Each file starts from an empty namespace. Unreadable files are
// logged and skipped. Cancellation is checked between files.
func ScanFiles(ctx context.Context, paths []string, reader LineReader, opts Options) (*model.Result, Stats) {
	start := time.Now()
	progress := opts.Progress
	if progress == nil {
		progress = NoOpProgressReporter{}
	}

	result := model.NewResult()
	stats := Stats{Files: len(paths)}
	progress.OnScanStart(len(paths))

	for _, path := range paths {
		if ctx.Err() != nil {
			stats.Cancelled = true
			log.WithField("remaining", len(paths)-stats.Scanned-stats.CacheHits-stats.Skipped).Debug("scan cancelled")
			break
		}

		fileResult, cached, err := scanFile(path, reader, opts.Cache)
		switch {
		case err != nil:
			stats.Skipped++
			log.WithFields(log.Fields{
				"file":  path,
				"error": err,
			}).Warn("skipping unreadable file")
		case cached:
			stats.CacheHits++
			result.Merge(fileResult)
		default:
			stats.Scanned++
			result.Merge(fileResult)
		}
		progress.OnFileScanned(path)
	}

	stats.Classes = len(result.Classes)
	stats.Interfaces = len(result.Interfaces)
	stats.Enums = len(result.Enums)
	stats.Duration = time.Since(start)
	progress.OnScanComplete(stats)

	return result, stats
}

func scanFile(path string, reader LineReader, cache Cache) (*model.Result, bool, error) {
	lines, err := reader.ReadLines(path)
	if err != nil {
		return nil, false, err
	}

	if cache != nil {
		if hit, ok := cache.Get(path, lines); ok {
			return hit, true, nil
		}
	}

	result, _ := Scan(lines, State{})
	stampFile(result, path)
	log.WithFields(log.Fields{
		"file":  path,
		"types": result.Len(),
		"lines": len(lines),
	}).Debug("scanned file")

	if cache != nil {
		cache.Put(path, lines, result)
	}
	return result, false, nil
}

// stampFile records the source path on every declaration of a file result.
func stampFile(result *model.Result, path string) {
	for i := range result.Classes {
		result.Classes[i].Location.File = path
	}
	for i := range result.Interfaces {
		result.Interfaces[i].Location.File = path
	}
	for i := range result.Enums {
		result.Enums[i].Location.File = path
	}
}
