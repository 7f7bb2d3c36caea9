package model

// Result holds the declarations recovered by a scan, in discovery order.
type Result struct {
	Classes    []Class     `json:"classes"`
	Interfaces []Interface `json:"interfaces"`
	Enums      []Enum      `json:"enums"`
}

// NewResult returns an empty result with non-nil collections.
func NewResult() *Result {
	return &Result{
		Classes:    []Class{},
		Interfaces: []Interface{},
		Enums:      []Enum{},
	}
}

// AddClass appends a finished class declaration.
func (r *Result) AddClass(c Class) {
	r.Classes = append(r.Classes, c)
}

// AddInterface appends a finished interface declaration.
func (r *Result) AddInterface(i Interface) {
	r.Interfaces = append(r.Interfaces, i)
}

// AddEnum appends a finished enum declaration.
func (r *Result) AddEnum(e Enum) {
	r.Enums = append(r.Enums, e)
}

// Merge appends every declaration of other after the ones already present.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Classes = append(r.Classes, other.Classes...)
	r.Interfaces = append(r.Interfaces, other.Interfaces...)
	r.Enums = append(r.Enums, other.Enums...)
}

// Len returns the total number of declarations.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Classes) + len(r.Interfaces) + len(r.Enums)
}

// FilterNamespace returns a copy keeping only declarations in namespace ns
// or one of its children. An empty ns keeps everything.
func (r *Result) FilterNamespace(ns string) *Result {
	out := NewResult()
	if r == nil {
		return out
	}
	if ns == "" {
		out.Merge(r)
		return out
	}
	for _, c := range r.Classes {
		if inNamespace(c.Namespace, ns) {
			out.AddClass(c)
		}
	}
	for _, i := range r.Interfaces {
		if inNamespace(i.Namespace, ns) {
			out.AddInterface(i)
		}
	}
	for _, e := range r.Enums {
		if inNamespace(e.Namespace, ns) {
			out.AddEnum(e)
		}
	}
	return out
}

func inNamespace(declared, ns string) bool {
	if declared == ns {
		return true
	}
	return len(declared) > len(ns) && declared[:len(ns)] == ns && declared[len(ns)] == '.'
}
