package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/classdiagram/internal/config"
	"github.com/mvp-joe/classdiagram/internal/pipeline"
	"github.com/mvp-joe/classdiagram/internal/watcher"
)

var (
	outputFlag    string
	watchFlag     bool
	relationsFlag bool
	namespaceFlag string
	quietFlag     bool
	gitignoreFlag bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Render a Mermaid class diagram for a directory",
	Long: `Generate scans every C# file below dir (default: current directory) and
prints a Mermaid class diagram.

Examples:
  # Print the diagram for the current directory
  classdiagram generate

  # Write to a file and include inheritance edges
  classdiagram generate ./src --output docs/classes.mmd --relations

  # Only one namespace, regenerate on every change
  classdiagram generate --namespace Shop.Models --output classes.mmd --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the diagram to this file instead of stdout")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Regenerate whenever a source file changes")
	generateCmd.Flags().BoolVar(&relationsFlag, "relations", false, "Append inheritance and implementation edges")
	generateCmd.Flags().StringVar(&namespaceFlag, "namespace", "", "Only include this namespace and its children")
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and summaries")
	generateCmd.Flags().BoolVar(&gitignoreFlag, "gitignore", false, "Skip files matched by .gitignore")
}

// generateSettings collects the resolved generate options.
type generateSettings struct {
	rootDir string
	cfg     *config.Config
	quiet   bool
	watch   bool
}

func runGenerate(cmd *cobra.Command, args []string) error {
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
	applyGenerateFlags(cmd, cfg)

	return executeGenerate(ctx, generateSettings{
		rootDir: rootDir,
		cfg:     cfg,
		quiet:   quietFlag,
		watch:   watchFlag,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// applyGenerateFlags lets explicitly set flags override the configuration.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		// Flag paths are relative to the working directory, config paths to the root
		cfg.Output.File = outputFlag
		if abs, err := filepath.Abs(outputFlag); err == nil && outputFlag != "" {
			cfg.Output.File = abs
		}
	}
	if flags.Changed("relations") {
		cfg.Diagram.Relations = relationsFlag
	}
	if flags.Changed("namespace") {
		cfg.Diagram.Namespace = namespaceFlag
	}
	if flags.Changed("gitignore") {
		cfg.Scan.GitIgnore = gitignoreFlag
	}
}

// executeGenerate renders once and, in watch mode, again after every batch
// of changes until ctx is cancelled.
func executeGenerate(ctx context.Context, s generateSettings, stdout, stderr io.Writer) error {
	p, err := pipeline.New(s.rootDir, s.cfg)
	if err != nil {
		return err
	}
	defer p.Close()
	p.SetProgress(NewCLIProgressReporter(stderr, s.quiet))

	if err := renderOnce(ctx, p, stdout); err != nil {
		return err
	}
	if !s.watch {
		return nil
	}

	w, err := watcher.New(s.rootDir, watcher.Options{
		Extensions: s.cfg.Watch.Extensions,
		Debounce:   time.Duration(s.cfg.Watch.DebounceMs) * time.Millisecond,
		SkipDirs:   []string{".git", config.Dir, "bin", "obj", "node_modules"},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	if !s.quiet {
		fmt.Fprintln(stderr, "Watching for changes (Ctrl+C to stop)...")
	}

	err = w.Run(ctx, func(changed []string) {
		log.WithField("files", len(changed)).Debug("regenerating after change")
		p.Invalidate(changed)
		if err := renderOnce(ctx, p, stdout); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("regeneration failed")
		}
	})
	if err != nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}
	if !s.quiet {
		fmt.Fprintln(stderr, "Watch mode stopped")
	}
	return nil
}

// renderOnce scans and writes the diagram to the configured file or stdout.
func renderOnce(ctx context.Context, p *pipeline.Pipeline, stdout io.Writer) error {
	out, _, err := p.Generate(ctx, "", p.DiagramOptions())
	if err != nil {
		return err
	}

	file := p.Config().Output.File
	if file == "" {
		_, err := io.WriteString(stdout, out)
		return err
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(p.RootDir(), file)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(file, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	return nil
}
