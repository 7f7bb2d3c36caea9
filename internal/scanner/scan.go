package scanner

import (
	"strings"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// State is carried from line to line while scanning one file.
type State struct {
	Namespace string
}

// Scan walks lines, tracking the namespace and dispatching each class,
// interface or enum header to its extractor. It never fails; malformed input
// produces partial declarations.
func Scan(lines []string, state State) (*model.Result, State) {
	result := model.NewResult()
	var filter commentFilter

	c := NewCursor(lines)
	for !c.Done() {
		t, ok := filter.strip(c.Line())
		if !ok {
			c = c.Next()
			continue
		}
		if i := strings.Index(t, "//"); i >= 0 {
			t = t[:i]
		}

		tokens := strings.Fields(stripAttributes(strings.TrimSpace(t)))
		if len(tokens) == 0 {
			c = c.Next()
			continue
		}

		if tokens[0] == "namespace" {
			state = foldNamespace(state, tokens)
			c = c.Next()
			continue
		}

		kind, ok := declKeyword(tokens)
		if !ok {
			c = c.Next()
			continue
		}

		switch kind {
		case model.KindClass:
			var cls model.Class
			cls, c = ExtractClass(c, state.Namespace)
			result.AddClass(cls)
		case model.KindInterface:
			var iface model.Interface
			iface, c = ExtractInterface(c, state.Namespace)
			result.AddInterface(iface)
		case model.KindEnum:
			var e model.Enum
			e, c = ExtractEnum(c, state.Namespace)
			result.AddEnum(e)
		}
	}

	return result, state
}

// foldNamespace applies a namespace header: "namespace A.B", "namespace A.B;"
// or "namespace A.B {".
func foldNamespace(state State, tokens []string) State {
	if len(tokens) < 2 {
		return state
	}
	ns := strings.TrimRight(tokens[1], ";{")
	if ns == "" {
		return state
	}
	return State{Namespace: ns}
}
