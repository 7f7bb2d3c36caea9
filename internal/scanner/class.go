package scanner

import (
	"strings"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// ExtractClass reads the class header at c, splits its inheritance list and
// classifies members from the brace-balanced body that follows.
func ExtractClass(c Cursor, namespace string) (model.Class, Cursor) {
	header, last := joinHeader(c)
	cls := model.Class{
		Name:                  ParseDeclName(header, "class").Resolve(model.KindClass),
		Namespace:             namespace,
		AccessModifier:        ClassifyModifier(header),
		BaseTypes:             []string{},
		ImplementedInterfaces: []string{},
		Location:              model.Location{Line: c.Pos() + 1},
	}

	for _, ref := range parseInheritance(header, "class") {
		if IsInterfaceName(ref) {
			cls.ImplementedInterfaces = append(cls.ImplementedInterfaces, ref)
		} else {
			cls.BaseTypes = append(cls.BaseTypes, ref)
		}
	}

	opens := strings.Count(header, "{")
	closes := strings.Count(header, "}")

	// class Point { public int X { get; set; } }
	if opens > 0 && opens == closes {
		inner := header[strings.Index(header, "{")+1 : strings.LastIndex(header, "}")]
		cls.Properties, cls.Methods = classifyMembers(strings.TrimSpace(inner))
		return cls, last.Next()
	}

	if opens == 0 && strings.HasSuffix(header, ";") {
		return cls, last.Next()
	}

	depth := 0
	if opens > 0 {
		depth = 1
	}
	body, next := ExtractBlock(depth, last.Next())
	cls.Properties, cls.Methods = classifyMembers(strings.Join(body, "\n"))
	return cls, next
}
