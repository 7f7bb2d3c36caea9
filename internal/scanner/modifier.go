package scanner

import (
	"strings"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// ClassifyModifier returns the access modifier a declaration line starts with.
// Compound modifiers are tested first. A keyword only counts when at least one
// more token follows it; anything else is Internal.
func ClassifyModifier(line string) model.AccessModifier {
	tokens := strings.Fields(line)

	if len(tokens) >= 3 {
		switch {
		case tokens[0] == "protected" && tokens[1] == "internal":
			return model.ProtectedInternal
		case tokens[0] == "private" && tokens[1] == "protected":
			return model.PrivateProtected
		}
	}

	if len(tokens) >= 2 {
		switch tokens[0] {
		case "public":
			return model.Public
		case "private":
			return model.Private
		case "protected":
			return model.Protected
		}
	}

	return model.DefaultAccess
}

// accessWords are the keywords that may form an access modifier.
var accessWords = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
}

// declModifiers may precede class/interface/enum on a declaration line.
var declModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
	"static":    true,
	"sealed":    true,
	"abstract":  true,
	"partial":   true,
	"unsafe":    true,
	"new":       true,
	"file":      true,
	"readonly":  true,
}

// reserved words can never be a member's type or name. Matching them
// rejects statements and constructors that look like declarations.
var reserved = map[string]bool{
	"if": true, "else": true, "return": true, "new": true, "await": true,
	"throw": true, "while": true, "for": true, "foreach": true, "switch": true,
	"catch": true, "using": true, "lock": true, "yield": true, "do": true,
	"case": true, "goto": true, "try": true, "finally": true, "base": true,
	"this": true, "typeof": true, "nameof": true, "sizeof": true, "default": true,
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "readonly": true, "async": true, "virtual": true,
	"override": true, "abstract": true, "sealed": true, "const": true,
	"event": true, "delegate": true, "class": true, "interface": true,
	"enum": true, "struct": true, "namespace": true, "operator": true,
	"partial": true, "extern": true, "unsafe": true, "volatile": true,
	"required": true, "implicit": true, "explicit": true, "where": true,
}
