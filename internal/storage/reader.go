package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// ErrRunNotFound is returned when no scan run matches.
var ErrRunNotFound = errors.New("scan run not found")

// Reader queries exported scan runs.
type Reader struct {
	db *sql.DB
}

// NewReader creates a Reader over an opened database.
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// Runs returns every scan run, newest first.
func (r *Reader) Runs() ([]ScanRun, error) {
	rows, err := sq.Select("run_id", "root_dir", "created_at", "file_count", "type_count").
		From("scan_runs").
		OrderBy("created_at DESC", "rowid DESC").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer rows.Close()

	var runs []ScanRun
	for rows.Next() {
		var run ScanRun
		var createdAt string
		if err := rows.Scan(&run.ID, &run.RootDir, &createdAt, &run.FileCount, &run.TypeCount); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recent run or ErrRunNotFound.
func (r *Reader) LatestRun() (ScanRun, error) {
	runs, err := r.Runs()
	if err != nil {
		return ScanRun{}, err
	}
	if len(runs) == 0 {
		return ScanRun{}, ErrRunNotFound
	}
	return runs[0], nil
}

// CountTypes returns per-kind declaration counts for runID.
func (r *Reader) CountTypes(runID string) (TypeCounts, error) {
	rows, err := sq.Select("kind", "COUNT(*)").
		From("types").
		Where(sq.Eq{"run_id": runID}).
		GroupBy("kind").
		RunWith(r.db).
		Query()
	if err != nil {
		return TypeCounts{}, fmt.Errorf("failed to count types: %w", err)
	}
	defer rows.Close()

	var counts TypeCounts
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return TypeCounts{}, fmt.Errorf("failed to scan count row: %w", err)
		}
		switch model.Kind(kind) {
		case model.KindClass:
			counts.Classes = n
		case model.KindInterface:
			counts.Interfaces = n
		case model.KindEnum:
			counts.Enums = n
		}
	}
	return counts, rows.Err()
}

// TypeNames returns the names of kind declared in runID, in scan order.
func (r *Reader) TypeNames(runID string, kind model.Kind) ([]string, error) {
	rows, err := sq.Select("name").
		From("types").
		Where(sq.Eq{"run_id": runID, "kind": string(kind)}).
		OrderBy("position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query type names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan type name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// typeRow is one row of types with its id.
type typeRow struct {
	id        string
	kind      model.Kind
	name      string
	namespace string
	access    model.AccessModifier
	loc       model.Location
}

// ReadResult rebuilds the model of runID in its original order.
func (r *Reader) ReadResult(runID string) (*model.Result, error) {
	var exists int
	if err := sq.Select("COUNT(*)").From("scan_runs").Where(sq.Eq{"run_id": runID}).
		RunWith(r.db).QueryRow().Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to look up run: %w", err)
	}
	if exists == 0 {
		return nil, ErrRunNotFound
	}

	types, err := r.readTypes(runID)
	if err != nil {
		return nil, err
	}

	result := model.NewResult()
	for _, t := range types {
		rels, err := r.readRelations(t.id)
		if err != nil {
			return nil, err
		}

		switch t.kind {
		case model.KindClass:
			props, methods, err := r.readMembers(t.id)
			if err != nil {
				return nil, err
			}
			result.AddClass(model.Class{
				Name:                  t.name,
				Namespace:             t.namespace,
				AccessModifier:        t.access,
				BaseTypes:             rels[RelationshipExtends],
				ImplementedInterfaces: rels[RelationshipImplements],
				Properties:            props,
				Methods:               methods,
				Location:              t.loc,
			})
		case model.KindInterface:
			props, methods, err := r.readMembers(t.id)
			if err != nil {
				return nil, err
			}
			result.AddInterface(model.Interface{
				Name:           t.name,
				Namespace:      t.namespace,
				AccessModifier: t.access,
				BaseInterfaces: rels[RelationshipExtends],
				Properties:     props,
				Methods:        methods,
				Location:       t.loc,
			})
		case model.KindEnum:
			values, err := r.readEnumValues(t.id)
			if err != nil {
				return nil, err
			}
			result.AddEnum(model.Enum{
				Name:           t.name,
				Namespace:      t.namespace,
				AccessModifier: t.access,
				Values:         values,
				Location:       t.loc,
			})
		}
	}
	return result, nil
}

func (r *Reader) readTypes(runID string) ([]typeRow, error) {
	// class < enum < interface alphabetically, so order by an explicit rank
	rows, err := sq.Select("type_id", "kind", "name", "namespace", "access", "file_path", "line").
		From("types").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("CASE kind WHEN 'class' THEN 0 WHEN 'interface' THEN 1 ELSE 2 END", "position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query types: %w", err)
	}
	defer rows.Close()

	var out []typeRow
	for rows.Next() {
		var t typeRow
		var kind, access string
		if err := rows.Scan(&t.id, &kind, &t.name, &t.namespace, &access, &t.loc.File, &t.loc.Line); err != nil {
			return nil, fmt.Errorf("failed to scan type row: %w", err)
		}
		t.kind = model.Kind(kind)
		t.access = model.AccessModifier(access)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Reader) readRelations(typeID string) (map[string][]string, error) {
	rows, err := sq.Select("relationship_type", "target_name").
		From("type_relationships").
		Where(sq.Eq{"type_id": typeID}).
		OrderBy("position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()

	rels := map[string][]string{
		RelationshipExtends:    {},
		RelationshipImplements: {},
	}
	for rows.Next() {
		var relType, target string
		if err := rows.Scan(&relType, &target); err != nil {
			return nil, fmt.Errorf("failed to scan relationship row: %w", err)
		}
		rels[relType] = append(rels[relType], target)
	}
	return rels, rows.Err()
}

func (r *Reader) readMembers(typeID string) ([]model.Property, []model.Method, error) {
	rows, err := sq.Select("member_id", "member_kind", "name", "type_name", "access", "is_static", "is_readonly", "is_async").
		From("type_members").
		Where(sq.Eq{"type_id": typeID}).
		OrderBy("member_kind DESC", "position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query members: %w", err)
	}

	props := []model.Property{}
	methods := []model.Method{}
	var methodIDs []string
	for rows.Next() {
		var id, kind, name, typeName, access string
		var isStatic, isReadOnly, isAsync bool
		if err := rows.Scan(&id, &kind, &name, &typeName, &access, &isStatic, &isReadOnly, &isAsync); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		if kind == MemberProperty {
			props = append(props, model.Property{
				Name:           name,
				TypeName:       typeName,
				AccessModifier: model.AccessModifier(access),
				IsStatic:       isStatic,
				IsReadOnly:     isReadOnly,
			})
			continue
		}
		methods = append(methods, model.Method{
			Name:           name,
			ReturnTypeName: typeName,
			AccessModifier: model.AccessModifier(access),
			IsStatic:       isStatic,
			IsAsync:        isAsync,
		})
		methodIDs = append(methodIDs, id)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, nil, err
	}

	// Parameters are read after the member cursor is closed; Open allows one connection
	for i, id := range methodIDs {
		params, err := r.readParameters(id)
		if err != nil {
			return nil, nil, err
		}
		methods[i].Parameters = params
	}
	return props, methods, nil
}

func (r *Reader) readParameters(memberID string) ([]string, error) {
	rows, err := sq.Select("declaration").
		From("member_parameters").
		Where(sq.Eq{"member_id": memberID}).
		OrderBy("position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query parameters: %w", err)
	}
	defer rows.Close()

	params := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan parameter row: %w", err)
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

func (r *Reader) readEnumValues(typeID string) ([]string, error) {
	rows, err := sq.Select("value").
		From("enum_values").
		Where(sq.Eq{"type_id": typeID}).
		OrderBy("position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query enum values: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan enum value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
