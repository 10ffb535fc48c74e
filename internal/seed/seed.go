// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seed loads storefront content from a YAML fixture. Rows pass
// through the same parsing and validation as admin form submissions and
// are written in dependency order, so categories exist before the themes
// that reference them.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"gopkg.in/yaml.v3"

	"thememarket/internal/schema"
	"thememarket/internal/store"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Row is one fixture entry: column values plus child rows keyed by child
// entity name.
type Row map[string]any

// Fixture maps entity names to the rows to seed.
type Fixture map[string][]Row

// Default returns the embedded storefront fixture.
func Default() (Fixture, error) {
	return Parse(defaultFixture)
}

// Parse decodes a YAML fixture and checks that every entity it names
// exists in the registry.
func Parse(data []byte) (Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for name := range fx {
		e, ok := schema.Default.Get(name)
		if !ok {
			return nil, fmt.Errorf("fixture: unknown entity %q", name)
		}
		if e.Parent != nil {
			return nil, fmt.Errorf("fixture: %s must be nested under %s", name, e.Parent.Entity)
		}
	}
	return fx, nil
}

// Options tunes a seed run.
type Options struct {
	// Overwrite rewrites rows that already exist, replacing their
	// children. By default existing rows are left untouched.
	Overwrite bool
}

// Report counts what a run did per entity.
type Report struct {
	Created map[string]int
	Updated map[string]int
	Skipped map[string]int
}

func newReport() *Report {
	return &Report{Created: map[string]int{}, Updated: map[string]int{}, Skipped: map[string]int{}}
}

// Seeder writes fixtures through a RecordStore.
type Seeder struct {
	records *store.RecordStore
	reg     *schema.Registry
}

// New creates a Seeder over the given record store.
func New(records *store.RecordStore) *Seeder {
	return &Seeder{records: records, reg: schema.Default}
}

// Run seeds every entity of fx. Running it twice creates nothing the
// second time.
func (s *Seeder) Run(ctx context.Context, fx Fixture, opts Options) (*Report, error) {
	rep := newReport()
	for _, e := range s.reg.DependencyOrder() {
		rows, ok := fx[e.Name]
		if !ok {
			continue
		}
		for i, row := range rows {
			if err := s.seedRow(ctx, e, row, opts, rep); err != nil {
				return rep, fmt.Errorf("seed %s[%d]: %w", e.Name, i, err)
			}
		}
		slog.Info("seeded entity", "entity", e.Name,
			"created", rep.Created[e.Name], "updated", rep.Updated[e.Name], "skipped", rep.Skipped[e.Name])
	}
	return rep, nil
}

func (s *Seeder) seedRow(ctx context.Context, e *schema.Entity, row Row, opts Options, rep *Report) error {
	values, children, err := s.convert(ctx, e, row)
	if err != nil {
		return err
	}

	if opts.Overwrite {
		id, created, err := s.records.Upsert(ctx, e, values)
		if err != nil {
			return err
		}
		for _, child := range s.reg.Children(e.Name) {
			rows, ok := children[child.Name]
			if !ok {
				continue
			}
			if err := s.records.ReplaceChildren(ctx, child, id, rows); err != nil {
				return err
			}
		}
		if created {
			rep.Created[e.Name]++
		} else {
			rep.Updated[e.Name]++
		}
		return nil
	}

	exists, err := s.existing(ctx, e, values)
	if err != nil {
		return err
	}
	if exists {
		rep.Skipped[e.Name]++
		return nil
	}
	if _, err := s.records.Create(ctx, e, values, children); err != nil {
		return err
	}
	rep.Created[e.Name]++
	return nil
}

// existing reports whether a fixture entry is already stored: by natural
// key when the entity has one, otherwise when the entity has any row.
func (s *Seeder) existing(ctx context.Context, e *schema.Entity, values schema.Values) (bool, error) {
	if e.NaturalKey == "" {
		n, err := s.records.Count(ctx, e)
		return n > 0, err
	}
	_, ok, err := s.records.LookupID(ctx, e, e.NaturalKey, values[e.NaturalKey])
	return ok, err
}

// convert parses a fixture row into validated values and child rows.
func (s *Seeder) convert(ctx context.Context, e *schema.Entity, row Row) (schema.Values, map[string][]schema.Values, error) {
	childEntities := make(map[string]*schema.Entity)
	for _, c := range s.reg.Children(e.Name) {
		childEntities[c.Name] = c
	}

	form := url.Values{}
	children := make(map[string][]schema.Values)
	for key, raw := range row {
		if child, ok := childEntities[key]; ok {
			list, ok := raw.([]any)
			if !ok && raw != nil {
				return nil, nil, fmt.Errorf("%s: expected a list", key)
			}
			parsed := make([]schema.Values, 0, len(list))
			for i, item := range list {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, nil, fmt.Errorf("%s[%d]: expected a mapping", key, i)
				}
				v, _, err := s.convert(ctx, child, Row(m))
				if err != nil {
					return nil, nil, fmt.Errorf("%s[%d]: %w", key, i, err)
				}
				parsed = append(parsed, v)
			}
			children[child.Name] = parsed
			continue
		}

		f, ok := e.Field(key)
		if !ok || !f.Writable() {
			return nil, nil, fmt.Errorf("unknown field %q", key)
		}
		str, err := s.scalar(ctx, f, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", key, err)
		}
		form.Set(key, str)
	}

	values, err := e.Parse(form)
	if err != nil {
		return nil, nil, err
	}
	return values, children, nil
}

// scalar renders a YAML value the way a form would submit it. Foreign keys
// given as text are resolved through the target's natural key.
func (s *Seeder) scalar(ctx context.Context, f *schema.Field, raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		if f.Kind == schema.KindForeignKey {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				return s.resolve(ctx, f, v)
			}
		}
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("unsupported value %T", raw)
}

func (s *Seeder) resolve(ctx context.Context, f *schema.Field, key string) (string, error) {
	target := s.reg.MustGet(f.Ref)
	if target.NaturalKey == "" {
		return "", fmt.Errorf("%s has no natural key to resolve %q", target.Name, key)
	}
	id, ok, err := s.records.LookupID(ctx, target, target.NaturalKey, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no %s with %s %q", target.Name, target.NaturalKey, key)
	}
	return strconv.FormatInt(id, 10), nil
}
