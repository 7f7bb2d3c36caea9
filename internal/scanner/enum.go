package scanner

import (
	"strings"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// ExtractEnum reads the enum header at c and its values up to the first line
// containing '}'. The returned cursor points after that line.
func ExtractEnum(c Cursor, namespace string) (model.Enum, Cursor) {
	header := headerLine(c.Line())
	e := model.Enum{
		Name:           ParseDeclName(header, "enum").Resolve(model.KindEnum),
		Namespace:      namespace,
		AccessModifier: ClassifyModifier(header),
		Values:         []string{},
		Location:       model.Location{Line: c.Pos() + 1},
	}

	// enum Color { Red, Green }
	if open := strings.Index(header, "{"); open >= 0 {
		inline := header[open+1:]
		closed := false
		if end := strings.Index(inline, "}"); end >= 0 {
			inline = inline[:end]
			closed = true
		}
		if i := strings.Index(inline, "//"); i >= 0 {
			inline = inline[:i]
		}
		for _, part := range strings.Split(inline, ",") {
			if v := enumValue(part); v != "" {
				e.Values = append(e.Values, v)
			}
		}
		if closed {
			return e, c.Next()
		}
	}

	var filter commentFilter
	for c = c.Next(); !c.Done(); c = c.Next() {
		t, ok := filter.strip(c.Line())
		if !ok {
			continue
		}
		if strings.Contains(t, "}") {
			return e, c.Next()
		}
		if t == "{" {
			continue
		}
		t = stripAttributes(t)
		if i := strings.IndexAny(t, ",/"); i >= 0 {
			t = t[:i]
		}
		if v := enumValue(t); v != "" {
			e.Values = append(e.Values, v)
		}
	}
	return e, c
}

// stripAttributes removes leading [Attribute] groups from a line. Brackets
// inside an attribute argument are matched by depth.
func stripAttributes(t string) string {
	for strings.HasPrefix(t, "[") {
		end := closingBracket(t)
		if end < 0 {
			return ""
		}
		t = strings.TrimSpace(t[end+1:])
	}
	return t
}

// closingBracket returns the index of the ']' matching the '[' at t[0].
func closingBracket(t string) int {
	depth := 0
	for i, r := range t {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// enumValue trims a value entry and drops any "= initializer".
func enumValue(s string) string {
	if i := strings.Index(s, "="); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
