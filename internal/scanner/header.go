package scanner

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mvp-joe/classdiagram/internal/model"
)

var whereClause = regexp.MustCompile(`\bwhere\b`)

// ParseDeclName reads the identifier that follows keyword on a header line.
// Generic parameter lists split by whitespace are joined back into the name.
// A keyword that is absent or last yields Unresolved.
func ParseDeclName(line string, keyword string) model.DeclName {
	tokens := strings.Fields(line)
	idx := keywordIndex(tokens, keyword)
	if idx < 0 || idx == len(tokens)-1 {
		return model.Unresolved()
	}

	name := tokens[idx+1]
	for i := idx + 2; strings.Count(name, "<") > strings.Count(name, ">") && i < len(tokens); i++ {
		name += " " + tokens[i]
	}
	if cut := strings.IndexAny(name, ":{(;"); cut >= 0 {
		name = name[:cut]
	}
	return model.Resolved(strings.TrimSpace(name))
}

func keywordIndex(tokens []string, keyword string) int {
	for i, tok := range tokens {
		if tok == keyword {
			return i
		}
	}
	return -1
}

// parseInheritance returns the comma separated list after the first ':'
// following keyword. Generic constraints and the opening brace are cut first.
func parseInheritance(header string, keyword string) []string {
	out := []string{}

	rest := header
	if i := strings.Index(rest, keyword); i >= 0 {
		rest = rest[i+len(keyword):]
	}
	if i := strings.Index(rest, "{"); i >= 0 {
		rest = rest[:i]
	}
	if loc := whereClause.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}

	// A primary constructor parameter list may contain ':' of its own.
	colon := -1
	depth := 0
	for i, r := range rest {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ':':
			if depth == 0 && colon < 0 {
				colon = i
			}
		}
	}
	if colon < 0 {
		return out
	}

	for _, part := range splitTopLevel(rest[colon+1:]) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsInterfaceName reports whether a referenced type looks like an interface:
// a leading 'I' followed by an uppercase letter. Only the last dotted segment
// is considered. Base classes such as IOStream are misread as interfaces.
func IsInterfaceName(name string) bool {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	runes := []rune(name)
	return len(runes) >= 2 && runes[0] == 'I' && unicode.IsUpper(runes[1])
}

// splitTopLevel splits on commas that are not nested in <>, () or [].
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// splitParams turns a raw parameter list into trimmed entries.
// Newlines and repeated whitespace inside one parameter collapse to a space.
func splitParams(raw string) []string {
	params := []string{}
	for _, p := range splitTopLevel(raw) {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}

// declKeyword returns the first class/interface/enum token on a line when
// every token before it is a declaration modifier or an attribute.
func declKeyword(tokens []string) (model.Kind, bool) {
	for _, tok := range tokens {
		switch tok {
		case "class":
			return model.KindClass, true
		case "interface":
			return model.KindInterface, true
		case "enum":
			return model.KindEnum, true
		}
		if !declModifiers[tok] && !strings.HasPrefix(tok, "[") {
			return "", false
		}
	}
	return "", false
}

// headerLine trims a declaration line and drops comments and leading
// attributes around the code.
func headerLine(line string) string {
	t := strings.TrimSpace(line)
	if strings.HasPrefix(t, "/*") {
		if end := strings.Index(t[2:], "*/"); end >= 0 {
			t = strings.TrimSpace(t[2+end+2:])
		}
	}
	if i := strings.Index(t, "//"); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return stripAttributes(t)
}

// joinHeader reads the declaration header at c. A base list continued on
// following lines ("class A : B," then "IC") is joined into one header. The
// returned cursor points at the last header line.
func joinHeader(c Cursor) (string, Cursor) {
	header := headerLine(c.Line())
	for !strings.ContainsAny(header, "{;") {
		next := c.Next()
		for !next.Done() && strings.TrimSpace(next.Line()) == "" {
			next = next.Next()
		}
		if next.Done() {
			break
		}
		cont := headerLine(next.Line())
		if !continuesHeader(header, cont) {
			break
		}
		header += " " + cont
		c = next
	}
	return header, c
}

func continuesHeader(header, next string) bool {
	if strings.HasSuffix(header, ",") || strings.HasSuffix(header, ":") {
		return next != ""
	}
	return strings.HasPrefix(next, ":") || strings.HasPrefix(next, ",") || strings.HasPrefix(next, "where ")
}
