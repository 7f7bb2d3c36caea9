package storage

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// NewRunID returns a fresh scan run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// Writer writes scan results to SQLite. The schema must already exist.
type Writer struct {
	db      *sql.DB
	rootDir string
}

// NewWriter creates a Writer recording rootDir on every run it writes.
func NewWriter(db *sql.DB, rootDir string) *Writer {
	return &Writer{db: db, rootDir: rootDir}
}

// statements holds the prepared inserts of one WriteResult transaction.
type statements struct {
	typ      *sql.Stmt
	member   *sql.Stmt
	param    *sql.Stmt
	enumVal  *sql.Stmt
	relation *sql.Stmt
}

func (s *statements) close() {
	for _, stmt := range []*sql.Stmt{s.typ, s.member, s.param, s.enumVal, s.relation} {
		if stmt != nil {
			stmt.Close()
		}
	}
}

// WriteResult stores result as run runID in a single transaction.
// Writing the same runID twice fails on the scan_runs primary key.
func (w *Writer) WriteResult(runID string, result *model.Result) error {
	if runID == "" {
		return fmt.Errorf("run id cannot be empty")
	}
	if result == nil {
		result = model.NewResult()
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	_, err = sq.Insert("scan_runs").
		Columns("run_id", "root_dir", "created_at", "file_count", "type_count").
		Values(runID, w.rootDir, time.Now().UTC().Format(time.RFC3339), countFiles(result), result.Len()).
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert scan run: %w", err)
	}

	stmts, err := prepare(tx)
	if err != nil {
		return err
	}
	defer stmts.close()

	for i, c := range result.Classes {
		typeID, err := stmts.insertType(runID, i, model.KindClass, c.Name, c.Namespace, c.AccessModifier, c.Location)
		if err != nil {
			return err
		}
		if err := stmts.insertRelations(typeID, RelationshipExtends, c.BaseTypes, 0); err != nil {
			return err
		}
		if err := stmts.insertRelations(typeID, RelationshipImplements, c.ImplementedInterfaces, len(c.BaseTypes)); err != nil {
			return err
		}
		if err := stmts.insertMembers(typeID, c.Properties, c.Methods); err != nil {
			return err
		}
	}

	for i, iface := range result.Interfaces {
		typeID, err := stmts.insertType(runID, i, model.KindInterface, iface.Name, iface.Namespace, iface.AccessModifier, iface.Location)
		if err != nil {
			return err
		}
		if err := stmts.insertRelations(typeID, RelationshipExtends, iface.BaseInterfaces, 0); err != nil {
			return err
		}
		if err := stmts.insertMembers(typeID, iface.Properties, iface.Methods); err != nil {
			return err
		}
	}

	for i, e := range result.Enums {
		typeID, err := stmts.insertType(runID, i, model.KindEnum, e.Name, e.Namespace, e.AccessModifier, e.Location)
		if err != nil {
			return err
		}
		for pos, v := range e.Values {
			if _, err := stmts.enumVal.Exec(uuid.New().String(), typeID, pos, v); err != nil {
				return fmt.Errorf("failed to insert enum value %s.%s: %w", e.Name, v, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"run":   runID,
		"types": result.Len(),
	}).Debug("wrote scan result")
	return nil
}

func prepare(tx *sql.Tx) (*statements, error) {
	builders := []struct {
		name    string
		builder sq.InsertBuilder
		target  func(*statements) **sql.Stmt
	}{
		{
			"type",
			sq.Insert("types").
				Columns("type_id", "run_id", "position", "kind", "name", "namespace", "access", "file_path", "line").
				Values("", "", 0, "", "", "", "", "", 0),
			func(s *statements) **sql.Stmt { return &s.typ },
		},
		{
			"member",
			sq.Insert("type_members").
				Columns("member_id", "type_id", "position", "member_kind", "name", "type_name", "access", "is_static", "is_readonly", "is_async").
				Values("", "", 0, "", "", "", "", false, false, false),
			func(s *statements) **sql.Stmt { return &s.member },
		},
		{
			"parameter",
			sq.Insert("member_parameters").
				Columns("parameter_id", "member_id", "position", "declaration").
				Values("", "", 0, ""),
			func(s *statements) **sql.Stmt { return &s.param },
		},
		{
			"enum value",
			sq.Insert("enum_values").
				Columns("value_id", "type_id", "position", "value").
				Values("", "", 0, ""),
			func(s *statements) **sql.Stmt { return &s.enumVal },
		},
		{
			"relationship",
			sq.Insert("type_relationships").
				Columns("relationship_id", "type_id", "position", "relationship_type", "target_name").
				Values("", "", 0, "", ""),
			func(s *statements) **sql.Stmt { return &s.relation },
		},
	}

	stmts := &statements{}
	for _, b := range builders {
		query, _, err := b.builder.ToSql()
		if err != nil {
			stmts.close()
			return nil, fmt.Errorf("failed to build %s SQL: %w", b.name, err)
		}
		stmt, err := tx.Prepare(query)
		if err != nil {
			stmts.close()
			return nil, fmt.Errorf("failed to prepare %s statement: %w", b.name, err)
		}
		*b.target(stmts) = stmt
	}
	return stmts, nil
}

func (s *statements) insertType(runID string, position int, kind model.Kind, name, namespace string, access model.AccessModifier, loc model.Location) (string, error) {
	typeID := uuid.New().String()
	_, err := s.typ.Exec(typeID, runID, position, string(kind), name, namespace, access.String(), loc.File, loc.Line)
	if err != nil {
		return "", fmt.Errorf("failed to insert %s %s: %w", kind, name, err)
	}
	return typeID, nil
}

// insertRelations writes targets starting at position offset so extends and
// implements rows of one type keep their header order.
func (s *statements) insertRelations(typeID, relType string, targets []string, offset int) error {
	for i, target := range targets {
		if _, err := s.relation.Exec(uuid.New().String(), typeID, offset+i, relType, target); err != nil {
			return fmt.Errorf("failed to insert relationship %s: %w", target, err)
		}
	}
	return nil
}

func (s *statements) insertMembers(typeID string, props []model.Property, methods []model.Method) error {
	for i, p := range props {
		_, err := s.member.Exec(uuid.New().String(), typeID, i, MemberProperty, p.Name, p.TypeName, p.AccessModifier.String(), p.IsStatic, p.IsReadOnly, false)
		if err != nil {
			return fmt.Errorf("failed to insert property %s: %w", p.Name, err)
		}
	}

	for i, m := range methods {
		memberID := uuid.New().String()
		_, err := s.member.Exec(memberID, typeID, i, MemberMethod, m.Name, m.ReturnTypeName, m.AccessModifier.String(), m.IsStatic, false, m.IsAsync)
		if err != nil {
			return fmt.Errorf("failed to insert method %s: %w", m.Name, err)
		}
		for pos, param := range m.Parameters {
			if _, err := s.param.Exec(uuid.New().String(), memberID, pos, param); err != nil {
				return fmt.Errorf("failed to insert parameter of %s: %w", m.Name, err)
			}
		}
	}
	return nil
}

// countFiles returns the number of distinct source files in result.
func countFiles(result *model.Result) int {
	seen := make(map[string]bool)
	for _, c := range result.Classes {
		seen[c.Location.File] = true
	}
	for _, i := range result.Interfaces {
		seen[i.Location.File] = true
	}
	for _, e := range result.Enums {
		seen[e.Location.File] = true
	}
	delete(seen, "")
	return len(seen)
}
