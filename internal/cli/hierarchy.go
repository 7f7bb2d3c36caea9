package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/classdiagram/internal/config"
	"github.com/mvp-joe/classdiagram/internal/graph"
	"github.com/mvp-joe/classdiagram/internal/pipeline"
)

var (
	directionFlag string
	jsonFlag      bool
)

// hierarchyCmd represents the hierarchy command
var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <type> [dir]",
	Short: "Show the supertypes and subtypes of a type",
	Long: `Hierarchy scans dir (default: current directory), builds the inheritance
graph and prints every transitive supertype and subtype of the named type,
nearest first. Generic arguments and namespace qualifiers are ignored when
matching names.

Examples:
  classdiagram hierarchy Order
  classdiagram hierarchy IRepository ./src --direction down
  classdiagram hierarchy Order --json
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runHierarchy,
}

func init() {
	rootCmd.AddCommand(hierarchyCmd)
	hierarchyCmd.Flags().StringVar(&directionFlag, "direction", "both", "Which side to show: up, down or both")
	hierarchyCmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
}

// hierarchyReport is the --json output of the hierarchy command.
type hierarchyReport struct {
	Type       *graph.Node   `json:"type"`
	Supertypes []*graph.Node `json:"supertypes,omitempty"`
	Subtypes   []*graph.Node `json:"subtypes,omitempty"`
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootDir, err := resolveRoot(args[1:])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	return executeHierarchy(ctx, rootDir, cfg, args[0], directionFlag, jsonFlag, cmd.OutOrStdout())
}

func executeHierarchy(ctx context.Context, rootDir string, cfg *config.Config, typeName, direction string, asJSON bool, out io.Writer) error {
	if direction != "up" && direction != "down" && direction != "both" {
		return fmt.Errorf("invalid direction: %s (must be one of: up, down, both)", direction)
	}

	p, err := pipeline.New(rootDir, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	result, _, err := p.Scan(ctx, "")
	if err != nil {
		return err
	}

	h := graph.Build(result)
	node, ok := h.Node(typeName)
	if !ok {
		return fmt.Errorf("type %s not found", typeName)
	}

	report := hierarchyReport{Type: node}
	if direction != "down" {
		report.Supertypes = h.Supertypes(typeName)
	}
	if direction != "up" {
		report.Subtypes = h.Subtypes(typeName)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "%s (%s)%s\n", node.Name, node.Kind, location(node))
	if direction != "down" {
		printNodes(out, "Supertypes", report.Supertypes)
	}
	if direction != "up" {
		printNodes(out, "Subtypes", report.Subtypes)
	}
	return nil
}

func printNodes(out io.Writer, title string, nodes []*graph.Node) {
	fmt.Fprintf(out, "%s:\n", title)
	if len(nodes) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	for _, n := range nodes {
		fmt.Fprintf(out, "  %s (%s)%s\n", n.Name, n.Kind, location(n))
	}
}

func location(n *graph.Node) string {
	if n.File == "" {
		return ""
	}
	return fmt.Sprintf(" %s:%d", n.File, n.Line)
}
