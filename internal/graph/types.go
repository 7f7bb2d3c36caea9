package graph

// NodeKind represents the kind of a type in the hierarchy.
type NodeKind string

const (
	NodeClass     NodeKind = "class"
	NodeInterface NodeKind = "interface"
	NodeEnum      NodeKind = "enum"
	NodeExternal  NodeKind = "external" // Referenced but not declared in the scanned files
)

// Node represents one type in the hierarchy.
type Node struct {
	ID        string   `json:"id"`        // Lookup key: unqualified name without generic arguments
	Name      string   `json:"name"`      // Name as declared or first referenced
	Kind      NodeKind `json:"kind"`      // Type of node
	Namespace string   `json:"namespace"` // Declared namespace, empty for external nodes
	File      string   `json:"file"`      // Source file of the declaration
	Line      int      `json:"line"`      // Header line number (1-indexed)
}

// EdgeType represents the kind of inheritance between two types.
type EdgeType string

const (
	EdgeExtends    EdgeType = "extends"    // Class extends class, interface extends interface
	EdgeImplements EdgeType = "implements" // Class implements interface
)

// Edge points from the derived type to its supertype.
type Edge struct {
	From string   `json:"from"` // Derived node ID
	To   string   `json:"to"`   // Supertype node ID
	Type EdgeType `json:"type"` // Relationship type
}
