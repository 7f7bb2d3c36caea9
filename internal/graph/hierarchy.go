package graph

import (
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/classdiagram/internal/model"
)

const edgeTypeAttr = "type"

// Hierarchy is the inheritance graph of a scan result. Edges point from a
// derived type to its supertype.
type Hierarchy struct {
	graph graph.Graph[string, *Node]
	edges []Edge // Insertion order, used for rendering
}

// Build creates the hierarchy for result. Declarations are added first so
// that declared kinds win over external references. Duplicate names, such as
// partial classes, share one node.
func Build(result *model.Result) *Hierarchy {
	h := &Hierarchy{
		graph: graph.New(func(n *Node) string { return n.ID }, graph.Directed()),
		edges: []Edge{},
	}
	if result == nil {
		return h
	}

	for _, c := range result.Classes {
		h.addNode(c.Name, NodeClass, c.Namespace, c.Location)
	}
	for _, i := range result.Interfaces {
		h.addNode(i.Name, NodeInterface, i.Namespace, i.Location)
	}
	for _, e := range result.Enums {
		h.addNode(e.Name, NodeEnum, e.Namespace, e.Location)
	}

	for _, c := range result.Classes {
		for _, base := range c.BaseTypes {
			h.addEdge(c.Name, base, EdgeExtends)
		}
		for _, iface := range c.ImplementedInterfaces {
			h.addEdge(c.Name, iface, EdgeImplements)
		}
	}
	for _, i := range result.Interfaces {
		for _, base := range i.BaseInterfaces {
			h.addEdge(i.Name, base, EdgeExtends)
		}
	}

	return h
}

// TypeID normalizes a type reference to its node key: namespace qualifiers
// and generic arguments are dropped.
func TypeID(name string) string {
	if i := strings.Index(name, "<"); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}

func (h *Hierarchy) addNode(name string, kind NodeKind, namespace string, loc model.Location) {
	node := &Node{
		ID:        TypeID(name),
		Name:      name,
		Kind:      kind,
		Namespace: namespace,
		File:      loc.File,
		Line:      loc.Line,
	}
	// Already present: first declaration wins
	_ = h.graph.AddVertex(node)
}

func (h *Hierarchy) addEdge(derived, super string, edgeType EdgeType) {
	from, to := TypeID(derived), TypeID(super)
	if from == "" || to == "" || from == to {
		return
	}

	h.addNode(super, NodeExternal, "", model.Location{})

	// Repeated partial declarations produce ErrEdgeAlreadyExists
	if err := h.graph.AddEdge(from, to, graph.EdgeAttribute(edgeTypeAttr, string(edgeType))); err != nil {
		return
	}
	h.edges = append(h.edges, Edge{From: from, To: to, Type: edgeType})
}

// Node returns the node for a type name.
func (h *Hierarchy) Node(name string) (*Node, bool) {
	node, err := h.graph.Vertex(TypeID(name))
	if err != nil {
		return nil, false
	}
	return node, true
}

// EdgeType returns the relationship between derived and super, if any.
func (h *Hierarchy) EdgeType(derived, super string) (EdgeType, bool) {
	edge, err := h.graph.Edge(TypeID(derived), TypeID(super))
	if err != nil {
		return "", false
	}
	return EdgeType(edge.Properties.Attributes[edgeTypeAttr]), true
}

// Relations returns every edge in the order the declarations listed them.
func (h *Hierarchy) Relations() []Edge {
	out := make([]Edge, len(h.edges))
	copy(out, h.edges)
	return out
}

// Supertypes returns all transitive supertypes of name in breadth-first
// order. Siblings at the same depth are sorted by ID.
func (h *Hierarchy) Supertypes(name string) []*Node {
	adjacency, err := h.graph.AdjacencyMap()
	if err != nil {
		return nil
	}
	return h.walk(TypeID(name), adjacency)
}

// Subtypes returns all transitive subtypes of name in breadth-first order.
func (h *Hierarchy) Subtypes(name string) []*Node {
	predecessors, err := h.graph.PredecessorMap()
	if err != nil {
		return nil
	}
	return h.walk(TypeID(name), predecessors)
}

func (h *Hierarchy) walk(start string, next map[string]map[string]graph.Edge[string]) []*Node {
	if _, ok := next[start]; !ok {
		return nil
	}

	var out []*Node
	visited := map[string]bool{start: true}
	queue := []string{start}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		neighbors := make([]string, 0, len(next[id]))
		for n := range next[id] {
			neighbors = append(neighbors, n)
		}
		sort.Strings(neighbors)

		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			if node, err := h.graph.Vertex(n); err == nil {
				out = append(out, node)
			}
			queue = append(queue, n)
		}
	}
	return out
}

// Stats returns the number of nodes and edges.
func (h *Hierarchy) Stats() (nodes, edges int) {
	nodes, _ = h.graph.Order()
	edges, _ = h.graph.Size()
	return nodes, edges
}
