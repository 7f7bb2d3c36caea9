package storage

import "time"

// Relationship types stored in type_relationships.
const (
	RelationshipExtends    = "extends"
	RelationshipImplements = "implements"
)

// Member kinds stored in type_members.
const (
	MemberProperty = "property"
	MemberMethod   = "method"
)

// ScanRun represents one row of scan_runs.
type ScanRun struct {
	ID        string
	RootDir   string
	CreatedAt time.Time
	FileCount int
	TypeCount int
}

// TypeCounts holds per-kind declaration counts for a run.
type TypeCounts struct {
	Classes    int
	Interfaces int
	Enums      int
}

// Total returns the number of declarations of every kind.
func (c TypeCounts) Total() int {
	return c.Classes + c.Interfaces + c.Enums
}
