package scanner

import "strings"

// commentFilter tracks /* ... */ regions across lines.
type commentFilter struct {
	inBlock bool
}

// strip returns the trimmed code part of a line, or ok=false when the line
// is blank or entirely comment. A block comment opened at the start of a line
// runs until a line ending in */.
func (f *commentFilter) strip(line string) (string, bool) {
	t := strings.TrimSpace(line)

	if f.inBlock {
		if strings.HasSuffix(t, "*/") {
			f.inBlock = false
		}
		return "", false
	}

	if t == "" || strings.HasPrefix(t, "//") {
		return "", false
	}

	if strings.HasPrefix(t, "/*") {
		end := strings.Index(t[2:], "*/")
		if end < 0 {
			f.inBlock = true
			return "", false
		}
		rest := strings.TrimSpace(t[2+end+2:])
		if rest == "" || strings.HasPrefix(rest, "//") {
			return "", false
		}
		return rest, true
	}

	return t, true
}

// ExtractBlock collects trimmed lines from c until the line that brings depth
// to zero, that line included. Only lines that are exactly "{" or "}" change
// depth. Comment lines are dropped and not counted. Reaching the end of input
// returns everything accumulated so far.
func ExtractBlock(depth int, c Cursor) ([]string, Cursor) {
	out := []string{}
	var filter commentFilter

	for ; !c.Done(); c = c.Next() {
		t, ok := filter.strip(c.Line())
		if !ok {
			continue
		}
		out = append(out, t)

		switch t {
		case "{":
			depth++
		case "}":
			depth--
			if depth <= 0 {
				return out, c.Next()
			}
		}
	}
	return out, c
}
