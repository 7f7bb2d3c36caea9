// Package diagram renders a scan result as Mermaid class diagram text.
package diagram

import (
	"strings"

	"github.com/mvp-joe/classdiagram/internal/graph"
	"github.com/mvp-joe/classdiagram/internal/model"
)

// Header is the first line of every diagram.
const Header = "classDiagram"

// Options controls RenderWithOptions. The zero value renders exactly what
// Render does.
type Options struct {
	// Relations appends inheritance edges after all blocks.
	Relations bool

	// Namespace keeps only declarations in this namespace or its children.
	Namespace string
}

// Render writes classes, then interfaces, then enums in the given order.
// Classes list properties as "type name" and methods as "returnType name()".
// Interfaces list methods only. Enum values end with a comma.
func Render(classes []model.Class, interfaces []model.Interface, enums []model.Enum) string {
	var b strings.Builder
	writeBlocks(&b, classes, interfaces, enums)
	return b.String()
}

// RenderWithOptions renders result with optional filtering and relations.
func RenderWithOptions(result *model.Result, opts Options) string {
	if result == nil {
		result = model.NewResult()
	}
	if opts.Namespace != "" {
		result = result.FilterNamespace(opts.Namespace)
	}

	var b strings.Builder
	writeBlocks(&b, result.Classes, result.Interfaces, result.Enums)

	if opts.Relations {
		for _, edge := range graph.Build(result).Relations() {
			b.WriteString(relationLine(edge))
		}
	}
	return b.String()
}

func writeBlocks(b *strings.Builder, classes []model.Class, interfaces []model.Interface, enums []model.Enum) {
	b.WriteString(Header + "\n")

	for _, c := range classes {
		b.WriteString("class " + c.Name + " {\n")
		for _, p := range c.Properties {
			b.WriteString("  " + p.TypeName + " " + p.Name + "\n")
		}
		for _, m := range c.Methods {
			b.WriteString("  " + m.ReturnTypeName + " " + m.Name + "()\n")
		}
		b.WriteString("}\n")
	}

	for _, i := range interfaces {
		b.WriteString("interface " + i.Name + " {\n")
		for _, m := range i.Methods {
			b.WriteString("  " + m.ReturnTypeName + " " + m.Name + "()\n")
		}
		b.WriteString("}\n")
	}

	for _, e := range enums {
		b.WriteString("enum " + e.Name + " {\n")
		for _, v := range e.Values {
			b.WriteString("  " + v + ",\n")
		}
		b.WriteString("}\n")
	}
}

// relationLine uses Mermaid inheritance for extends and realization for
// implements, supertype on the left.
func relationLine(edge graph.Edge) string {
	arrow := " <|-- "
	if edge.Type == graph.EdgeImplements {
		arrow = " <|.. "
	}
	return edge.To + arrow + edge.From + "\n"
}
