package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SchemaVersion is written to schema_metadata on creation.
const SchemaVersion = "1.0"

// CreateSchema creates all tables and indexes for the scan export.
// Existing tables are left untouched, so calling it on an opened database is safe.
//
// Tables:
//   - scan_runs: one row per export
//   - types: classes, interfaces and enums of a run
//   - type_members: properties and methods
//   - member_parameters: raw parameter declarations of methods
//   - enum_values: enum members in source order
//   - type_relationships: base types and implemented interfaces as written
//
// Must be called with SQLite PRAGMA foreign_keys = ON.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"schema_metadata", createSchemaMetadataTable},
		{"scan_runs", createScanRunsTable},
		{"types", createTypesTable},
		{"type_members", createTypeMembersTable},
		{"member_parameters", createMemberParametersTable},
		{"enum_values", createEnumValuesTable},
		{"type_relationships", createTypeRelationshipsTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO schema_metadata (key, value, updated_at) VALUES ('schema_version', ?, ?)`,
		SchemaVersion, now,
	); err != nil {
		return fmt.Errorf("failed to bootstrap schema_metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// GetSchemaVersion retrieves the schema version.
// Returns "0" if the metadata table doesn't exist (new database).
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_metadata'").Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check schema_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow("SELECT value FROM schema_metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

const createSchemaMetadataTable = `
CREATE TABLE IF NOT EXISTS schema_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
)
`

const createScanRunsTable = `
CREATE TABLE IF NOT EXISTS scan_runs (
    run_id TEXT PRIMARY KEY,                     -- UUID
    root_dir TEXT NOT NULL,
    created_at TEXT NOT NULL,                    -- RFC3339
    file_count INTEGER NOT NULL DEFAULT 0,       -- Distinct source files with declarations
    type_count INTEGER NOT NULL DEFAULT 0
)
`

const createTypesTable = `
CREATE TABLE IF NOT EXISTS types (
    type_id TEXT PRIMARY KEY,                    -- UUID
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,                   -- Order within its kind
    kind TEXT NOT NULL,                          -- class, interface, enum
    name TEXT NOT NULL,
    namespace TEXT NOT NULL DEFAULT '',
    access TEXT NOT NULL,
    file_path TEXT NOT NULL DEFAULT '',
    line INTEGER NOT NULL DEFAULT 0,             -- 1-based header line
    FOREIGN KEY (run_id) REFERENCES scan_runs(run_id) ON DELETE CASCADE
)
`

const createTypeMembersTable = `
CREATE TABLE IF NOT EXISTS type_members (
    member_id TEXT PRIMARY KEY,                  -- UUID
    type_id TEXT NOT NULL,
    position INTEGER NOT NULL,                   -- Order within its member kind
    member_kind TEXT NOT NULL,                   -- property, method
    name TEXT NOT NULL,
    type_name TEXT NOT NULL,                     -- Property type or method return type
    access TEXT NOT NULL,
    is_static INTEGER NOT NULL DEFAULT 0,
    is_readonly INTEGER NOT NULL DEFAULT 0,
    is_async INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (type_id) REFERENCES types(type_id) ON DELETE CASCADE
)
`

const createMemberParametersTable = `
CREATE TABLE IF NOT EXISTS member_parameters (
    parameter_id TEXT PRIMARY KEY,               -- UUID
    member_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    declaration TEXT NOT NULL,                   -- Raw "type name" text
    FOREIGN KEY (member_id) REFERENCES type_members(member_id) ON DELETE CASCADE
)
`

const createEnumValuesTable = `
CREATE TABLE IF NOT EXISTS enum_values (
    value_id TEXT PRIMARY KEY,                   -- UUID
    type_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    value TEXT NOT NULL,
    FOREIGN KEY (type_id) REFERENCES types(type_id) ON DELETE CASCADE
)
`

const createTypeRelationshipsTable = `
CREATE TABLE IF NOT EXISTS type_relationships (
    relationship_id TEXT PRIMARY KEY,            -- UUID
    type_id TEXT NOT NULL,                       -- Declaring type
    position INTEGER NOT NULL,
    relationship_type TEXT NOT NULL,             -- extends, implements
    target_name TEXT NOT NULL,                   -- As written, may be unresolved
    FOREIGN KEY (type_id) REFERENCES types(type_id) ON DELETE CASCADE
)
`

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_types_run_kind ON types(run_id, kind, position)`,
	`CREATE INDEX IF NOT EXISTS idx_types_name ON types(name)`,
	`CREATE INDEX IF NOT EXISTS idx_type_members_type ON type_members(type_id, member_kind, position)`,
	`CREATE INDEX IF NOT EXISTS idx_member_parameters_member ON member_parameters(member_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_enum_values_type ON enum_values(type_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_type_relationships_type ON type_relationships(type_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_type_relationships_target ON type_relationships(target_name)`,
}
