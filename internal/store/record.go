// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"thememarket/internal/schema"
)

// Record is one row read through an entity descriptor, keyed by column.
type Record map[string]any

// ID returns the row's surrogate key.
func (r Record) ID() int64 {
	switch v := r["id"].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	}
	return 0
}

// ListQuery narrows an admin listing. Filters compare columns for
// equality; unknown columns are ignored. Search matches any of the
// SearchFields case-insensitively.
type ListQuery struct {
	Filters      map[string]string
	Search       string
	SearchFields []string
	Limit        int
	Offset       int
}

// RecordStore performs descriptor-driven CRUD on any registered entity.
type RecordStore struct {
	db *sqlx.DB
}

// NewRecordStore creates a new RecordStore with the given database connection.
func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

func selectColumns(e *schema.Entity) string {
	cols := e.Columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = schema.Quote(c)
	}
	return strings.Join(quoted, ", ")
}

func scanRecords(rows *sqlx.Rows) ([]Record, error) {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		r := make(map[string]any)
		if err := rows.MapScan(r); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, Record(r))
	}
	return out, rows.Err()
}

// List returns the entity's rows in default order.
func (s *RecordStore) List(ctx context.Context, e *schema.Entity, q ListQuery) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	names := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		f, ok := e.Field(name)
		if !ok {
			continue
		}
		val := q.Filters[name]
		args = append(args, filterArg(f, val))
		where = append(where, fmt.Sprintf("%s = $%d", schema.Quote(name), len(args)))
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		var ors []string
		for _, name := range q.SearchFields {
			if _, ok := e.Field(name); !ok {
				continue
			}
			args = append(args, "%"+term+"%")
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", schema.Quote(name), len(args)))
		}
		if len(ors) > 0 {
			where = append(where, "("+strings.Join(ors, " OR ")+")")
		}
	}

	query := "SELECT " + selectColumns(e) + " FROM " + schema.Quote(e.Table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + e.OrderBy()
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", q.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", e.Table, err)
	}
	return scanRecords(rows)
}

func filterArg(f *schema.Field, val string) any {
	if f.Kind == schema.KindBool {
		return val == "true" || val == "1" || val == "on"
	}
	return val
}

// Count returns the number of rows of the entity.
func (s *RecordStore) Count(ctx context.Context, e *schema.Entity) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+schema.Quote(e.Table)); err != nil {
		return 0, fmt.Errorf("count %s: %w", e.Table, err)
	}
	return n, nil
}

// Get returns one row by ID. Returns nil if not found.
func (s *RecordStore) Get(ctx context.Context, e *schema.Entity, id int64) (Record, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+selectColumns(e)+" FROM "+schema.Quote(e.Table)+" WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", e.Table, err)
	}
	recs, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", e.Table, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// Children returns the rows of a child entity owned by parentID.
func (s *RecordStore) Children(ctx context.Context, child *schema.Entity, parentID int64) ([]Record, error) {
	if child.Parent == nil {
		return nil, fmt.Errorf("children: %s has no parent", child.Name)
	}
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+selectColumns(child)+" FROM "+schema.Quote(child.Table)+
			" WHERE "+schema.Quote(child.Parent.Column)+" = $1 ORDER BY "+child.OrderBy(), parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", child.Table, err)
	}
	return scanRecords(rows)
}

// execer is satisfied by both *sqlx.DB and *sqlx.Tx.
type execer interface {
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func sortedKeys(v schema.Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func insert(ctx context.Context, x execer, e *schema.Entity, v schema.Values) (int64, error) {
	keys := sortedKeys(v)
	var query string
	args := make([]any, len(keys))
	if len(keys) == 0 {
		query = "INSERT INTO " + schema.Quote(e.Table) + " DEFAULT VALUES RETURNING id"
	} else {
		cols := make([]string, len(keys))
		marks := make([]string, len(keys))
		for i, k := range keys {
			cols[i] = schema.Quote(k)
			marks[i] = fmt.Sprintf("$%d", i+1)
			args[i] = v[k]
		}
		query = "INSERT INTO " + schema.Quote(e.Table) + " (" + strings.Join(cols, ", ") +
			") VALUES (" + strings.Join(marks, ", ") + ") RETURNING id"
	}
	var id int64
	if err := x.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", e.Table, mapError(err))
	}
	return id, nil
}

func update(ctx context.Context, x execer, e *schema.Entity, id int64, v schema.Values) error {
	keys := sortedKeys(v)
	sets := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		args = append(args, v[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", schema.Quote(k), len(args)))
	}
	if _, ok := e.Field("updated_at"); ok {
		sets = append(sets, `"updated_at" = NOW()`)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := x.ExecContext(ctx, "UPDATE "+schema.Quote(e.Table)+" SET "+strings.Join(sets, ", ")+
		fmt.Sprintf(" WHERE id = $%d", len(args)), args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", e.Table, mapError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update %s %d: %w", e.Table, id, ErrNotFound)
	}
	return nil
}

// syncChildren reconciles the child rows of one parent with rows. A row
// carrying the "id" of an existing child updates that child in place, so
// columns absent from the row keep their values. Rows without a known id
// are inserted. Existing children not named by any row are deleted.
func syncChildren(ctx context.Context, x execer, child *schema.Entity, parentID int64, rows []schema.Values) error {
	var existing []int64
	if err := x.SelectContext(ctx, &existing,
		"SELECT id FROM "+schema.Quote(child.Table)+" WHERE "+schema.Quote(child.Parent.Column)+" = $1", parentID); err != nil {
		return fmt.Errorf("list %s: %w", child.Table, err)
	}
	owned := make(map[int64]bool, len(existing))
	for _, id := range existing {
		owned[id] = true
	}

	kept := make(map[int64]bool, len(rows))
	for _, r := range rows {
		row := make(schema.Values, len(r)+1)
		for k, val := range r {
			if k != "id" {
				row[k] = val
			}
		}
		row[child.Parent.Column] = parentID

		id, _ := r["id"].(int64)
		if owned[id] && !kept[id] {
			if err := update(ctx, x, child, id, row); err != nil {
				return err
			}
			kept[id] = true
			continue
		}
		if _, err := insert(ctx, x, child, row); err != nil {
			return err
		}
	}

	for _, id := range existing {
		if kept[id] {
			continue
		}
		if _, err := x.ExecContext(ctx, "DELETE FROM "+schema.Quote(child.Table)+" WHERE id = $1", id); err != nil {
			return fmt.Errorf("delete %s %d: %w", child.Table, id, mapError(err))
		}
	}
	return nil
}

// Create inserts a row and, in the same transaction, the inline children
// keyed by child entity name.
func (s *RecordStore) Create(ctx context.Context, e *schema.Entity, v schema.Values, children map[string][]schema.Values) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create %s: %w", e.Table, err)
	}
	defer tx.Rollback()

	id, err := insert(ctx, tx, e, v)
	if err != nil {
		return 0, err
	}
	if err := s.writeChildren(ctx, tx, e, id, children); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create %s: %w", e.Table, err)
	}
	return id, nil
}

// Update rewrites a row. Child entities present in children are synced
// with the given rows: rows carrying an existing child "id" update it in
// place, the rest are inserted and unlisted children are deleted. Absent
// child entities are left alone. Everything happens in one transaction.
func (s *RecordStore) Update(ctx context.Context, e *schema.Entity, id int64, v schema.Values, children map[string][]schema.Values) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update %s: %w", e.Table, err)
	}
	defer tx.Rollback()

	if err := update(ctx, tx, e, id, v); err != nil {
		return err
	}
	if err := s.writeChildren(ctx, tx, e, id, children); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update %s: %w", e.Table, err)
	}
	return nil
}

func (s *RecordStore) writeChildren(ctx context.Context, x execer, e *schema.Entity, parentID int64, children map[string][]schema.Values) error {
	for name, rows := range children {
		child, ok := schema.Default.Get(name)
		if !ok || child.Parent == nil || child.Parent.Entity != e.Name {
			return fmt.Errorf("%s is not a child of %s", name, e.Name)
		}
		if err := syncChildren(ctx, x, child, parentID, rows); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMany writes a subset of columns of several rows, keyed by ID, in
// one transaction, as done by the list-editable admin view. Rows that no
// longer exist are skipped. On any other error nothing is written and the
// failing ID is returned alongside it.
func (s *RecordStore) UpdateMany(ctx context.Context, e *schema.Entity, rows map[int64]schema.Values) (int64, error) {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin update %s: %w", e.Table, err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		err := update(ctx, tx, e, id, rows[id])
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return id, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit update %s: %w", e.Table, err)
	}
	return 0, nil
}

// Delete removes a row and, through ON DELETE CASCADE, its children.
// Rows of singleton entities cannot be deleted.
func (s *RecordStore) Delete(ctx context.Context, e *schema.Entity, id int64) error {
	if e.Singleton {
		return fmt.Errorf("delete %s: %w", e.Table, ErrProtected)
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+schema.Quote(e.Table)+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", e.Table, mapError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete %s %d: %w", e.Table, id, ErrNotFound)
	}
	return nil
}

// LookupID finds the ID of the first row whose column equals value.
func (s *RecordStore) LookupID(ctx context.Context, e *schema.Entity, column string, value any) (int64, bool, error) {
	if _, ok := e.Field(column); !ok {
		return 0, false, fmt.Errorf("lookup %s: unknown column %q", e.Table, column)
	}
	var id int64
	err := s.db.GetContext(ctx, &id,
		"SELECT id FROM "+schema.Quote(e.Table)+" WHERE "+schema.Quote(column)+" = $1 ORDER BY id LIMIT 1", value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup %s: %w", e.Table, err)
	}
	return id, true, nil
}

// Upsert writes a row identified by the entity's natural key, inserting it
// when no row matches. Entities without a natural key match their first
// row. It reports the row ID and whether a row was inserted.
func (s *RecordStore) Upsert(ctx context.Context, e *schema.Entity, v schema.Values) (int64, bool, error) {
	var (
		id    int64
		found bool
		err   error
	)
	if e.NaturalKey == "" {
		err = s.db.GetContext(ctx, &id, "SELECT id FROM "+schema.Quote(e.Table)+" ORDER BY id LIMIT 1")
		switch {
		case err == sql.ErrNoRows:
			err = nil
		case err == nil:
			found = true
		}
		if err != nil {
			return 0, false, fmt.Errorf("upsert %s: %w", e.Table, err)
		}
	} else {
		key, ok := v[e.NaturalKey]
		if !ok {
			return 0, false, fmt.Errorf("upsert %s: missing natural key %q", e.Table, e.NaturalKey)
		}
		id, found, err = s.LookupID(ctx, e, e.NaturalKey, key)
		if err != nil {
			return 0, false, err
		}
	}

	if found {
		if err := update(ctx, s.db, e, id, v); err != nil {
			return 0, false, err
		}
		return id, false, nil
	}
	id, err = insert(ctx, s.db, e, v)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// ReplaceChildren swaps the child rows of one parent in a transaction.
func (s *RecordStore) ReplaceChildren(ctx context.Context, child *schema.Entity, parentID int64, rows []schema.Values) error {
	if child.Parent == nil {
		return fmt.Errorf("replace children: %s has no parent", child.Name)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", child.Table, err)
	}
	defer tx.Rollback()

	if err := syncChildren(ctx, tx, child, parentID, rows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", child.Table, err)
	}
	return nil
}
