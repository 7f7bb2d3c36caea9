package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/classdiagram/internal/config"
	"github.com/mvp-joe/classdiagram/internal/pipeline"
	"github.com/mvp-joe/classdiagram/internal/storage"
)

var exportDBFlag string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Export the scanned type model to SQLite",
	Long: `Export scans dir (default: current directory) and writes every class,
interface and enum with its members and base types to a SQLite database.
Each export is a new scan run; earlier runs are kept.

Examples:
  classdiagram export
  classdiagram export ./src --db /tmp/model.db
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportDBFlag, "db", "", "Database path (default: storage.path from config)")
	exportCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and summaries")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}
	if exportDBFlag != "" {
		abs, err := filepath.Abs(exportDBFlag)
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
		cfg.Storage.Path = abs
	}

	_, err = executeExport(ctx, rootDir, cfg, quietFlag, cmd.ErrOrStderr())
	return err
}

// executeExport scans rootDir and stores the result as a new run. It returns the run id.
func executeExport(ctx context.Context, rootDir string, cfg *config.Config, quiet bool, stderr io.Writer) (string, error) {
	p, err := pipeline.New(rootDir, cfg)
	if err != nil {
		return "", err
	}
	defer p.Close()
	p.SetProgress(NewCLIProgressReporter(stderr, quiet))

	result, _, err := p.Scan(ctx, "")
	if err != nil {
		return "", err
	}

	dbPath := cfg.StoragePath(rootDir)
	db, err := storage.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	runID := storage.NewRunID()
	if err := storage.NewWriter(db, rootDir).WriteResult(runID, result); err != nil {
		return "", fmt.Errorf("failed to export: %w", err)
	}

	counts, err := storage.NewReader(db).CountTypes(runID)
	if err != nil {
		return "", err
	}
	if !quiet {
		fmt.Fprintf(stderr, "✓ Exported run %s to %s\n", runID, dbPath)
		fmt.Fprintf(stderr, "  Classes:    %s\n", formatNumber(counts.Classes))
		fmt.Fprintf(stderr, "  Interfaces: %s\n", formatNumber(counts.Interfaces))
		fmt.Fprintf(stderr, "  Enums:      %s\n", formatNumber(counts.Enums))
	}
	return runID, nil
}
