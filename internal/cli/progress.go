package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/classdiagram/internal/scanner"
)

// CLIProgressReporter shows a progress bar while files are scanned and a
// summary line when the scan ends.
type CLIProgressReporter struct {
	quiet   bool
	out     io.Writer
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a reporter writing to out, usually stderr.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet, out: out}
}

func (c *CLIProgressReporter) OnScanStart(totalFiles int) {
	if c.quiet || totalFiles == 0 {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *CLIProgressReporter) OnFileScanned(path string) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnScanComplete(stats scanner.Stats) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	status := "✓ Scan complete"
	if stats.Cancelled {
		status = "✗ Scan cancelled"
	}
	fmt.Fprintf(c.out, "%s: %s classes, %s interfaces, %s enums from %s files in %.1fs\n",
		status,
		formatNumber(stats.Classes),
		formatNumber(stats.Interfaces),
		formatNumber(stats.Enums),
		formatNumber(stats.Files),
		stats.Duration.Seconds())
	if stats.CacheHits > 0 {
		fmt.Fprintf(c.out, "  Cached: %s files\n", formatNumber(stats.CacheHits))
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(c.out, "  Skipped (unreadable): %s files\n", formatNumber(stats.Skipped))
	}
}
