package scanner

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// accessorProperty matches interface properties such as "int Count { get; }".
var accessorProperty = regexp.MustCompile(`^(.+?)[ \t]+([A-Za-z_]\w*)[ \t]*\{[ \t]*((?:get|set|init)\b[^{}]*)\}[ \t]*;?$`)

// ExtractInterface reads the interface header at c and the method signatures
// up to the first line containing '}'. Single-line accessor properties do not
// end the body. Members take the interface's own access modifier.
func ExtractInterface(c Cursor, namespace string) (model.Interface, Cursor) {
	header, last := joinHeader(c)
	access := ClassifyModifier(header)
	iface := model.Interface{
		Name:           ParseDeclName(header, "interface").Resolve(model.KindInterface),
		Namespace:      namespace,
		AccessModifier: access,
		BaseInterfaces: parseInheritance(header, "interface"),
		Properties:     []model.Property{},
		Methods:        []model.Method{},
		Location:       model.Location{Line: c.Pos() + 1},
	}

	// interface IMarker { }
	if open := strings.Index(header, "{"); open >= 0 && strings.Contains(header[open:], "}") {
		return iface, last.Next()
	}

	var filter commentFilter
	for c = last.Next(); !c.Done(); c = c.Next() {
		t, ok := filter.strip(c.Line())
		if !ok {
			continue
		}
		if i := strings.Index(t, "//"); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		t = stripAttributes(t)

		if m := accessorProperty.FindStringSubmatch(t); m != nil {
			if prop, ok := interfaceProperty(m, access); ok {
				iface.Properties = append(iface.Properties, prop)
				continue
			}
		}
		if strings.Contains(t, "}") {
			return iface, c.Next()
		}
		if t == "" || t == "{" {
			continue
		}

		t = strings.TrimSuffix(t, ",")
		if method, ok := parseSignature(t, access); ok {
			iface.Methods = append(iface.Methods, method)
		}
	}
	return iface, c
}

func interfaceProperty(m []string, access model.AccessModifier) (model.Property, bool) {
	head := strings.Fields(m[1])
	_, flags, rest := splitModifiers(head)
	if len(rest) == 0 {
		return model.Property{}, false
	}
	typeName := strings.Join(rest, " ")
	if reserved[typeName] || reserved[m[2]] {
		return model.Property{}, false
	}
	return model.Property{
		Name:           m[2],
		TypeName:       typeName,
		AccessModifier: access,
		IsStatic:       flags.static,
		IsReadOnly:     flags.readonly || !hasSetter(m[3]),
	}, true
}

// parseSignature reads "<returnType> <name>(<params>)" with an optional
// trailing ';'. Leading modifier keywords are skipped.
func parseSignature(sig string, access model.AccessModifier) (model.Method, bool) {
	sig = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sig), ";"))
	open := strings.Index(sig, "(")
	if open < 0 {
		return model.Method{}, false
	}

	_, flags, head := splitModifiers(strings.Fields(sig[:open]))
	if len(head) < 2 {
		return model.Method{}, false
	}
	name := head[len(head)-1]
	returnType := strings.Join(head[:len(head)-1], " ")
	if reserved[name] || reserved[returnType] {
		return model.Method{}, false
	}

	return model.Method{
		Name:           name,
		ReturnTypeName: returnType,
		Parameters:     splitParams(matchingParen(sig[open+1:])),
		AccessModifier: access,
		IsStatic:       flags.static,
		IsAsync:        flags.async,
	}, true
}

// matchingParen returns s up to the ')' that closes an already opened '('.
// Without one, all of s is returned.
func matchingParen(s string) string {
	depth := 1
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i]
			}
		}
	}
	return s
}
