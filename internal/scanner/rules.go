package scanner

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// RuleKind tags a member rule.
type RuleKind int

const (
	RuleSingleLineProperty RuleKind = iota
	RuleSingleLineMethod
	RuleMultiLineMethod
	RuleMultiLineProperty
)

func (k RuleKind) String() string {
	switch k {
	case RuleSingleLineProperty:
		return "single-line-property"
	case RuleSingleLineMethod:
		return "single-line-method"
	case RuleMultiLineMethod:
		return "multi-line-method"
	case RuleMultiLineProperty:
		return "multi-line-property"
	}
	return "unknown"
}

// Member is what a rule recovers from one match: a property or a method.
type Member struct {
	Property *model.Property
	Method   *model.Method
}

// Rule pairs a pattern over joined class body text with the builder that
// turns a submatch into a member. Build rejects matches that only look like
// declarations.
//
// Submatch groups: 1 access words, 2 other modifiers, 3 type, 4 name,
// 5 parameter list or accessor list.
type Rule struct {
	Kind    RuleKind
	Pattern *regexp.Regexp
	Build   func(m []string) (Member, bool)
}

// Apply returns the members recovered from body in match order.
func (r Rule) Apply(body string) []Member {
	var members []Member
	for _, m := range r.Pattern.FindAllStringSubmatch(body, -1) {
		if member, ok := r.Build(m); ok {
			members = append(members, member)
		}
	}
	return members
}

const (
	accessPart  = `((?:(?:public|private|protected|internal)[ \t]+){0,2})`
	modsPart    = `((?:(?:static|readonly|async|virtual|override|abstract|sealed|new|extern|unsafe|volatile|required|partial|const)[ \t]+)*)`
	typePart    = `([A-Za-z_][\w.]*(?:<[^;{}()\n]*?>)?(?:\[[, ]*\])*\??)`
	namePart    = `([A-Za-z_]\w*)`
	methodName  = `([A-Za-z_]\w*(?:<[^()\n]*?>)?)`
	head        = `(?m)^[ \t]*` + accessPart + modsPart + typePart + `[ \t]+`
	accessorSet = `(?:(?:public|private|protected|internal)[ \t]+)*(?:get|set|init)\b`
	bodyOpener  = `[ \t]*(?:\{|=>|where\b|;|$)`
)

var (
	singleLinePropertyPattern = regexp.MustCompile(head + namePart +
		`[ \t]*\{[ \t]*(` + accessorSet + `[^{}\n]*)\}[ \t]*(?:=[^\n]*)?(?://[^\n]*)?$`)

	singleLineMethodPattern = regexp.MustCompile(head + methodName +
		`[ \t]*\(([^()\n]*)\)` + bodyOpener)

	multiLineMethodPattern = regexp.MustCompile(head + methodName +
		`[ \t]*\(([^()]*\n[^()]*)\)` + bodyOpener)

	multiLinePropertyPattern = regexp.MustCompile(head + namePart +
		`[ \t]*\n?\{[ \t]*\n((?:[ \t]*` + accessorSet + `[^\n]*\n)+)[ \t]*\}`)

	setterWord = regexp.MustCompile(`\b(?:set|init)\b`)
)

// Rules runs in this order; members are appended in the order found.
var Rules = []Rule{
	{Kind: RuleSingleLineProperty, Pattern: singleLinePropertyPattern, Build: buildProperty},
	{Kind: RuleSingleLineMethod, Pattern: singleLineMethodPattern, Build: buildMethod},
	{Kind: RuleMultiLineMethod, Pattern: multiLineMethodPattern, Build: buildMethod},
	{Kind: RuleMultiLineProperty, Pattern: multiLinePropertyPattern, Build: buildProperty},
}

func buildProperty(m []string) (Member, bool) {
	typeName, name := m[3], m[4]
	if reserved[typeName] || reserved[name] {
		return Member{}, false
	}
	flags := modifierFlags(strings.Fields(m[2]))
	return Member{Property: &model.Property{
		Name:           name,
		TypeName:       typeName,
		AccessModifier: ClassifyModifier(m[0]),
		IsStatic:       flags.static,
		IsReadOnly:     flags.readonly || !hasSetter(m[5]),
	}}, true
}

func buildMethod(m []string) (Member, bool) {
	returnType, name := m[3], m[4]
	if reserved[returnType] || reserved[baseName(name)] {
		return Member{}, false
	}
	flags := modifierFlags(strings.Fields(m[2]))
	return Member{Method: &model.Method{
		Name:           name,
		ReturnTypeName: returnType,
		Parameters:     splitParams(m[5]),
		AccessModifier: ClassifyModifier(m[0]),
		IsStatic:       flags.static,
		IsAsync:        flags.async,
	}}, true
}

// classifyMembers runs every rule over body.
func classifyMembers(body string) ([]model.Property, []model.Method) {
	props := []model.Property{}
	methods := []model.Method{}
	for _, rule := range Rules {
		for _, member := range rule.Apply(body) {
			switch {
			case member.Property != nil:
				props = append(props, *member.Property)
			case member.Method != nil:
				methods = append(methods, *member.Method)
			}
		}
	}
	return props, methods
}

type memberFlags struct {
	static   bool
	readonly bool
	async    bool
}

var memberModifiers = map[string]bool{
	"static": true, "readonly": true, "async": true, "virtual": true,
	"override": true, "abstract": true, "sealed": true, "new": true,
	"extern": true, "unsafe": true, "volatile": true, "required": true,
	"partial": true, "const": true,
}

func modifierFlags(words []string) memberFlags {
	var f memberFlags
	for _, w := range words {
		switch w {
		case "static":
			f.static = true
		case "readonly":
			f.readonly = true
		case "async":
			f.async = true
		}
	}
	return f
}

// splitModifiers consumes leading access and member modifier tokens.
func splitModifiers(tokens []string) ([]string, memberFlags, []string) {
	i := 0
	for i < len(tokens) && (accessWords[tokens[i]] || memberModifiers[tokens[i]]) {
		i++
	}
	return tokens[:i], modifierFlags(tokens[:i]), tokens[i:]
}

func hasSetter(accessors string) bool {
	return setterWord.MatchString(accessors)
}

// baseName strips a generic parameter list from a method name.
func baseName(name string) string {
	if i := strings.Index(name, "<"); i >= 0 {
		return name[:i]
	}
	return name
}
