// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package schema declares every content entity of the storefront: its
// table, fields, constraints, ordering, and ownership. The admin UI, the
// seed pipeline, and the record store are all driven from these
// descriptors, so a field constraint is defined exactly once.
package schema

import "github.com/shopspring/decimal"

// Kind identifies how a field is stored, edited, and validated.
type Kind int

const (
	KindString Kind = iota
	KindText
	KindRichText
	KindSlug
	KindInt
	KindBool
	KindDecimal
	KindURL
	KindEmail
	KindColor
	KindChoice
	KindImage
	KindForeignKey
	KindTimestamp
)

// String returns the lowercase kind name used by admin templates to pick
// an input widget.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindRichText:
		return "richtext"
	case KindSlug:
		return "slug"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindDecimal:
		return "decimal"
	case KindURL:
		return "url"
	case KindEmail:
		return "email"
	case KindColor:
		return "color"
	case KindChoice:
		return "choice"
	case KindImage:
		return "image"
	case KindForeignKey:
		return "fk"
	case KindTimestamp:
		return "timestamp"
	}
	return "unknown"
}

// Choice is one allowed value of a KindChoice field.
type Choice struct {
	Value string
	Label string
}

// Range bounds a numeric field. A nil bound is open.
type Range struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// Field describes a single column of an entity.
type Field struct {
	Name     string // column name, also the form field name
	Label    string
	Kind     Kind
	MaxLen   int  // in runes; 0 means unbounded
	Required bool // blank values are rejected
	Nullable bool // blank values are stored as NULL
	Unique   bool
	Choices  []Choice
	Range    *Range
	Digits   int // total digits of a KindDecimal column
	Places   int // fractional digits of a KindDecimal column
	Default  any
	Help     string
	Ref      string // target entity name for KindForeignKey
	ReadOnly bool   // assigned by the database, never written by forms
}

// Writable reports whether forms and seeds may set this field.
func (f *Field) Writable() bool {
	return !f.ReadOnly && f.Kind != KindTimestamp
}

// ChoiceLabel returns the display label for a choice value, or the value
// itself when it is not a known choice.
func (f *Field) ChoiceLabel(value string) string {
	for _, c := range f.Choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func between(lo, hi int64) *Range {
	return &Range{Min: bound(lo), Max: bound(hi)}
}

func atLeast(lo int64) *Range {
	return &Range{Min: bound(lo)}
}
