package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/mvp-joe/classdiagram/internal/diagram"
	"github.com/mvp-joe/classdiagram/internal/scanner"
)

// ToolName is the MCP tool exposed by the server.
const ToolName = "class_diagram"

// Generator produces diagram text for a directory below the project root.
type Generator interface {
	Generate(ctx context.Context, subDir string, opts diagram.Options) (string, scanner.Stats, error)
	DiagramOptions() diagram.Options
}

// ClassDiagramRequest represents the class_diagram tool parameters.
// Unset optional fields fall back to the project configuration.
type ClassDiagramRequest struct {
	Path      string  `json:"path"`      // Sub directory of the root, "" for all
	Relations *bool   `json:"relations"` // Append inheritance edges
	Namespace *string `json:"namespace"` // Keep one namespace and its children
}

// AddClassDiagramTool registers the class_diagram tool with an MCP server.
func AddClassDiagramTool(s *server.MCPServer, gen Generator) {
	tool := mcp.NewTool(
		ToolName,
		mcp.WithDescription(`Render a Mermaid class diagram of the C# classes, interfaces and enums in the project.

Output starts with "classDiagram" followed by one block per type:
- class blocks list properties as "type name" and methods as "returnType name()"
- interface blocks list methods
- enum blocks list values
With relations enabled, "Base <|-- Derived" and "IFace <|.. Impl" lines follow the blocks.`),
		mcp.WithString("path",
			mcp.Description("Directory to scan, relative to the project root (default: whole project)")),
		mcp.WithBoolean("relations",
			mcp.Description("Append inheritance and implementation edges (default: from config)")),
		mcp.WithString("namespace",
			mcp.Description("Only include this namespace and its children, e.g. 'Shop.Models' (default: from config)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createClassDiagramHandler(gen))
}

// createClassDiagramHandler creates the handler function for the class_diagram tool.
func createClassDiagramHandler(gen Generator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req ClassDiagramRequest
		if err := BindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		opts := gen.DiagramOptions()
		if req.Relations != nil {
			opts.Relations = *req.Relations
		}
		if req.Namespace != nil {
			opts.Namespace = *req.Namespace
		}

		out, stats, err := gen.Generate(ctx, req.Path, opts)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			// Bad paths are the caller's problem, not a protocol failure
			return mcp.NewToolResultError(err.Error()), nil
		}

		log.WithFields(log.Fields{
			"path":    req.Path,
			"files":   stats.Files,
			"skipped": stats.Skipped,
		}).Debug("class_diagram served")

		return mcp.NewToolResultText(out), nil
	}
}
