package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/classdiagram/internal/mcp"
	"github.com/mvp-joe/classdiagram/internal/pipeline"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [dir]",
	Short: "Start the MCP server exposing the class_diagram tool",
	Long: `Start a Model Context Protocol server on stdio so coding assistants can
request class diagrams of the project in dir (default: current directory).

The server exposes one tool, class_diagram, with optional arguments:
  path       sub directory to scan
  relations  append inheritance edges
  namespace  keep one namespace and its children

Scan results are cached per file, so repeated calls only rescan changed files.

Example:
  classdiagram mcp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	p, err := pipeline.New(rootDir, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Close()

	log.WithField("root", rootDir).Info("serving class diagrams")
	return mcp.NewServer(p, Version).Serve(cmd.Context())
}
