package model

// AccessModifier is the declared visibility of a type or member.
// Values use the source keyword spelling so they serialize as-is.
type AccessModifier string

const (
	Public            AccessModifier = "public"
	Private           AccessModifier = "private"
	Protected         AccessModifier = "protected"
	Internal          AccessModifier = "internal"
	ProtectedInternal AccessModifier = "protected internal"
	PrivateProtected  AccessModifier = "private protected"
)

// DefaultAccess applies when a declaration carries no modifier keyword.
const DefaultAccess = Internal

// String returns the keyword form of the modifier.
func (a AccessModifier) String() string {
	if a == "" {
		return string(DefaultAccess)
	}
	return string(a)
}

// Kind identifies the declaration keyword that introduced a type.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindEnum      Kind = "enum"
)

// Keyword returns the source keyword for the kind.
func (k Kind) Keyword() string {
	return string(k)
}

// Sentinel returns the placeholder name used when a header has no identifier.
func (k Kind) Sentinel() string {
	switch k {
	case KindClass:
		return "UnknownClass"
	case KindInterface:
		return "UnknownInterface"
	case KindEnum:
		return "UnknownEnum"
	}
	return "Unknown"
}

// DeclName is the outcome of reading a name from a declaration header.
// An unresolved name carries no value; callers pick the display form via Resolve.
type DeclName struct {
	value    string
	resolved bool
}

// Resolved wraps a name that was found in the header.
func Resolved(name string) DeclName {
	if name == "" {
		return Unresolved()
	}
	return DeclName{value: name, resolved: true}
}

// Unresolved marks a header without a usable identifier.
func Unresolved() DeclName {
	return DeclName{}
}

// IsResolved reports whether the header carried a name.
func (n DeclName) IsResolved() bool {
	return n.resolved
}

// Resolve returns the parsed name, or the sentinel for kind.
func (n DeclName) Resolve(kind Kind) string {
	if n.resolved {
		return n.value
	}
	return kind.Sentinel()
}

// Location points at the header line of a declaration.
type Location struct {
	File string `json:"file,omitempty"` // Source path as given to the scanner
	Line int    `json:"line"`           // 1-indexed header line
}

// Property is a get/set accessor member of a class or interface.
type Property struct {
	Name           string         `json:"name"`
	TypeName       string         `json:"type"` // Raw token, not resolved
	AccessModifier AccessModifier `json:"access"`
	IsStatic       bool           `json:"is_static"`
	IsReadOnly     bool           `json:"is_readonly"`
}

// Method is a method signature found in a class or interface body.
type Method struct {
	Name           string         `json:"name"`
	ReturnTypeName string         `json:"return_type"` // Raw token, not resolved
	Parameters     []string       `json:"parameters"`  // Raw text, e.g. "int x"
	AccessModifier AccessModifier `json:"access"`
	IsStatic       bool           `json:"is_static"`
	IsAsync        bool           `json:"is_async"`
}

// Class is a class declaration and the members recovered from its body.
type Class struct {
	Name                  string         `json:"name"`
	Namespace             string         `json:"namespace"`
	AccessModifier        AccessModifier `json:"access"`
	BaseTypes             []string       `json:"base_types"`
	ImplementedInterfaces []string       `json:"implemented_interfaces"`
	Properties            []Property     `json:"properties"`
	Methods               []Method       `json:"methods"`
	Location              Location       `json:"location"`
}

// Interface is an interface declaration. Members inherit the interface's modifier.
type Interface struct {
	Name           string         `json:"name"`
	Namespace      string         `json:"namespace"`
	AccessModifier AccessModifier `json:"access"`
	BaseInterfaces []string       `json:"base_interfaces"`
	Properties     []Property     `json:"properties"`
	Methods        []Method       `json:"methods"`
	Location       Location       `json:"location"`
}

// Enum is an enum declaration with its values in source order.
// Duplicate values are kept.
type Enum struct {
	Name           string         `json:"name"`
	Namespace      string         `json:"namespace"`
	AccessModifier AccessModifier `json:"access"`
	Values         []string       `json:"values"`
	Location       Location       `json:"location"`
}

// QualifiedName joins namespace and name with a dot.
func QualifiedName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
