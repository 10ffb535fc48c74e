// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package schema

import (
	"fmt"
	"sort"
	"strings"
)

// ParentRef links a child entity to the entity that owns it. Child rows
// are deleted together with their parent.
type ParentRef struct {
	Entity string // owning entity name
	Column string // foreign key column on the child table
}

// Entity describes one content model and the table backing it.
type Entity struct {
	Name       string // canonical identifier, e.g. "SiteSettings"
	Table      string
	Verbose    string
	Plural     string
	Fields     []Field
	Ordering   []string // column names; a leading "-" sorts descending
	Parent     *ParentRef
	Singleton  bool
	NaturalKey string // column used by seeds to find an existing row
	Display    string // column shown as the row's title
}

// Slug returns the lowercase canonical name used in admin URLs.
func (e *Entity) Slug() string {
	return strings.ToLower(e.Name)
}

// Field returns the named field.
func (e *Entity) Field(name string) (*Field, bool) {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i], true
		}
	}
	return nil, false
}

// WritableFields returns the fields forms and seeds may set, in
// declaration order. The parent foreign key of a child entity is excluded
// since it is supplied by the owning row.
func (e *Entity) WritableFields() []Field {
	var out []Field
	for _, f := range e.Fields {
		if !f.Writable() {
			continue
		}
		if e.Parent != nil && f.Name == e.Parent.Column {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Columns returns every column of the table, id first.
func (e *Entity) Columns() []string {
	cols := []string{"id"}
	for _, f := range e.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// OrderBy renders the entity's default ordering as an SQL ORDER BY list.
// The id column is always appended so rows with equal sort keys keep
// insertion order.
func (e *Entity) OrderBy() string {
	var parts []string
	for _, o := range e.Ordering {
		if strings.HasPrefix(o, "-") {
			parts = append(parts, quote(o[1:])+" DESC")
			continue
		}
		parts = append(parts, quote(o)+" ASC")
	}
	if len(e.Ordering) > 0 && strings.HasPrefix(e.Ordering[0], "-") {
		parts = append(parts, "id DESC")
	} else {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", ")
}

// Quote wraps an identifier in double quotes for use in generated SQL.
func Quote(ident string) string {
	return quote(ident)
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Registry indexes entities by canonical name and by URL slug.
type Registry struct {
	byName map[string]*Entity
	bySlug map[string]*Entity
	order  []string
}

// NewRegistry builds a registry from the given entities. It panics on
// duplicate names or dangling references, since those are programming
// errors in the entity table.
func NewRegistry(entities ...*Entity) *Registry {
	r := &Registry{
		byName: make(map[string]*Entity),
		bySlug: make(map[string]*Entity),
	}
	for _, e := range entities {
		if _, dup := r.byName[e.Name]; dup {
			panic(fmt.Sprintf("schema: duplicate entity %q", e.Name))
		}
		r.byName[e.Name] = e
		r.bySlug[e.Slug()] = e
		r.order = append(r.order, e.Name)
	}
	for _, e := range entities {
		if e.Parent != nil {
			if _, ok := r.byName[e.Parent.Entity]; !ok {
				panic(fmt.Sprintf("schema: %s has unknown parent %q", e.Name, e.Parent.Entity))
			}
		}
		for _, f := range e.Fields {
			if f.Kind == KindForeignKey {
				if _, ok := r.byName[f.Ref]; !ok {
					panic(fmt.Sprintf("schema: %s.%s references unknown entity %q", e.Name, f.Name, f.Ref))
				}
			}
		}
	}
	return r
}

// Get returns an entity by canonical name.
func (r *Registry) Get(name string) (*Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// MustGet returns an entity by canonical name and panics when missing.
func (r *Registry) MustGet(name string) *Entity {
	e, ok := r.byName[name]
	if !ok {
		panic(fmt.Sprintf("schema: unknown entity %q", name))
	}
	return e
}

// Lookup returns an entity by its lowercase URL slug.
func (r *Registry) Lookup(slug string) (*Entity, bool) {
	e, ok := r.bySlug[strings.ToLower(slug)]
	return e, ok
}

// All returns every entity in registration order.
func (r *Registry) All() []*Entity {
	out := make([]*Entity, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byName[n])
	}
	return out
}

// Children returns the entities owned by the named entity, in
// registration order.
func (r *Registry) Children(name string) []*Entity {
	var out []*Entity
	for _, n := range r.order {
		e := r.byName[n]
		if e.Parent != nil && e.Parent.Entity == name {
			out = append(out, e)
		}
	}
	return out
}

// DependencyOrder returns every top-level entity ordered so that the
// targets of foreign keys come before the entities referencing them.
// Entities without dependencies keep registration order.
func (r *Registry) DependencyOrder() []*Entity {
	rank := make(map[string]int)
	var depth func(name string, seen map[string]bool) int
	depth = func(name string, seen map[string]bool) int {
		if d, ok := rank[name]; ok {
			return d
		}
		if seen[name] {
			return 0
		}
		seen[name] = true
		d := 0
		for _, f := range r.byName[name].Fields {
			if f.Kind == KindForeignKey && f.Ref != name {
				if fd := depth(f.Ref, seen) + 1; fd > d {
					d = fd
				}
			}
		}
		rank[name] = d
		return d
	}

	var top []*Entity
	for _, n := range r.order {
		e := r.byName[n]
		if e.Parent != nil {
			continue
		}
		depth(n, map[string]bool{})
		top = append(top, e)
	}
	sort.SliceStable(top, func(i, j int) bool {
		return rank[top[i].Name] < rank[top[j].Name]
	})
	return top
}
