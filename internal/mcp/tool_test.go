package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/classdiagram/internal/diagram"
	"github.com/mvp-joe/classdiagram/internal/pipeline"
	"github.com/mvp-joe/classdiagram/internal/scanner"
)

// Test Plan for class_diagram tool:
// - Missing arguments use the configured options and the whole root
// - Explicit arguments override configured options
// - String-typed booleans are coerced
// - Generator failures become tool errors, cancellation stays a Go error
// - NewServer registers the tool
// - End to end with a real pipeline over a temp tree

type fakeGenerator struct {
	defaults diagram.Options
	gotPath  string
	gotOpts  diagram.Options
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, subDir string, opts diagram.Options) (string, scanner.Stats, error) {
	f.gotPath = subDir
	f.gotOpts = opts
	if f.err != nil {
		return "", scanner.Stats{}, f.err
	}
	return "classDiagram\n", scanner.Stats{Files: 1}, nil
}

func (f *fakeGenerator) DiagramOptions() diagram.Options {
	return f.defaults
}

func callTool(t *testing.T, gen Generator, args map[string]interface{}) (*mcp.CallToolResult, error) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      ToolName,
			Arguments: args,
		},
	}
	return createClassDiagramHandler(gen)(context.Background(), request)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	return text.Text
}

// Test: configured defaults apply when arguments are absent
func TestClassDiagramHandler_Defaults(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{defaults: diagram.Options{Relations: true, Namespace: "Shop"}}
	result, err := callTool(t, gen, nil)
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Equal(t, "classDiagram\n", resultText(t, result))
	assert.Equal(t, "", gen.gotPath)
	assert.Equal(t, diagram.Options{Relations: true, Namespace: "Shop"}, gen.gotOpts)
}

// Test: explicit arguments override defaults
func TestClassDiagramHandler_Overrides(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{defaults: diagram.Options{Relations: true, Namespace: "Shop"}}
	_, err := callTool(t, gen, map[string]interface{}{
		"path":      "src/Models",
		"relations": false,
		"namespace": "",
	})
	require.NoError(t, err)

	assert.Equal(t, "src/Models", gen.gotPath)
	assert.Equal(t, diagram.Options{}, gen.gotOpts)
}

// Test: string booleans from loose clients
func TestClassDiagramHandler_StringBoolean(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	_, err := callTool(t, gen, map[string]interface{}{"relations": "true"})
	require.NoError(t, err)
	assert.True(t, gen.gotOpts.Relations)
}

// Test: error mapping
func TestClassDiagramHandler_Errors(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New(`path "../x" is outside the root`)}
	result, err := callTool(t, gen, map[string]interface{}{"path": "../x"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "outside the root")

	cancelled := &fakeGenerator{err: context.Canceled}
	_, err = callTool(t, cancelled, nil)
	assert.ErrorIs(t, err, context.Canceled)

	result, err = callTool(t, &fakeGenerator{}, map[string]interface{}{"relations": []interface{}{1, 2}})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

// Test: server registration
func TestNewServer_RegistersTool(t *testing.T) {
	t.Parallel()

	s := NewServer(&fakeGenerator{}, "test")
	require.NotNil(t, s.MCPServer())

	response := s.MCPServer().HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(response)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"class_diagram"`)
}

// Test: end to end through the pipeline
func TestClassDiagramHandler_Pipeline(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Shape.cs"), []byte(`namespace Geo
{
    public interface IShape
    {
        double Area();
    }

    public class Circle : IShape
    {
        public double Radius { get; set; }
        public double Area() => 3.14 * Radius * Radius;
    }
}
`), 0644))

	p, err := pipeline.New(root, nil)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	result, err := callTool(t, p, map[string]interface{}{"path": "src", "relations": true})
	require.NoError(t, err)
	assert.Equal(t, `classDiagram
class Circle {
  double Radius
  double Area()
}
interface IShape {
  double Area()
}
IShape <|.. Circle
`, resultText(t, result))
}
