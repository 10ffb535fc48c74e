// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package schema

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"thememarket/internal/slug"
)

// Values holds parsed column values ready to be written. Strings, int64,
// bool, decimal.Decimal and nil are the only value types produced.
type Values map[string]any

// ValidationError collects per-field messages for a rejected write.
type ValidationError struct {
	Fields map[string]string
}

// Add records a message for a field. The first message for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+": "+e.Fields[n])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

var (
	colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

const msgRequired = "This field is required."

// Parse converts submitted form values into typed column values for every
// writable field and validates them. Fields absent from the form take
// their declared default, so callers may submit partial data.
func (e *Entity) Parse(form url.Values) (Values, error) {
	return e.parse(form, e.WritableFields())
}

// ParseFields is Parse restricted to the named fields. It is used for
// list-editable saves where only a few columns are submitted.
func (e *Entity) ParseFields(form url.Values, names []string) (Values, error) {
	var fields []Field
	for _, n := range names {
		f, ok := e.Field(n)
		if !ok || !f.Writable() {
			return nil, fmt.Errorf("schema: %s has no writable field %q", e.Name, n)
		}
		fields = append(fields, *f)
	}
	return e.parse(form, fields)
}

func (e *Entity) parse(form url.Values, fields []Field) (Values, error) {
	out := make(Values, len(fields))
	verr := &ValidationError{}
	for i := range fields {
		f := &fields[i]
		raw, present := form[f.Name]
		v, msg := f.convert(raw, present)
		if msg != "" {
			verr.Add(f.Name, msg)
			continue
		}
		if msg := f.check(v); msg != "" {
			verr.Add(f.Name, msg)
			continue
		}
		out[f.Name] = v
	}
	if !verr.empty() {
		return nil, verr
	}
	return out, nil
}

// Validate checks already typed values against the entity's constraints.
// Fields missing from v are only reported when required.
func (e *Entity) Validate(v Values) error {
	verr := &ValidationError{}
	for _, f := range e.WritableFields() {
		val, ok := v[f.Name]
		if !ok {
			if f.Required && f.Default == nil && f.Kind != KindBool {
				verr.Add(f.Name, msgRequired)
			}
			continue
		}
		if msg := f.check(val); msg != "" {
			verr.Add(f.Name, msg)
		}
	}
	if !verr.empty() {
		return verr
	}
	return nil
}

// convert turns raw form strings into the field's Go value. The returned
// message is non-empty when the input cannot be converted.
func (f *Field) convert(raw []string, present bool) (any, string) {
	if f.Kind == KindBool {
		if !present || len(raw) == 0 {
			if b, ok := f.Default.(bool); ok {
				return b, ""
			}
			return false, ""
		}
		// Checkboxes post a hidden "false" followed by the checked value.
		switch strings.ToLower(strings.TrimSpace(raw[len(raw)-1])) {
		case "true", "on", "1", "yes":
			return true, ""
		}
		return false, ""
	}

	if !present {
		if f.Default != nil {
			return normalizeDefault(f.Default), ""
		}
		if f.Nullable {
			return nil, ""
		}
		if f.Required {
			return nil, msgRequired
		}
		return "", ""
	}

	s := ""
	if len(raw) > 0 {
		s = strings.TrimSpace(raw[len(raw)-1])
	}
	if s == "" {
		switch {
		case f.Required:
			return nil, msgRequired
		case f.Nullable:
			return nil, ""
		case f.Kind == KindInt || f.Kind == KindDecimal || f.Kind == KindForeignKey:
			if f.Default != nil {
				return normalizeDefault(f.Default), ""
			}
			return nil, msgRequired
		}
		return "", ""
	}

	switch f.Kind {
	case KindInt, KindForeignKey:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, "Enter a whole number."
		}
		return n, ""
	case KindDecimal:
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, "Enter a number."
		}
		return d, ""
	}
	return s, ""
}

func normalizeDefault(v any) any {
	switch d := v.(type) {
	case int:
		return int64(d)
	case string, int64, bool, decimal.Decimal:
		return d
	}
	return v
}

// check validates a converted value. nil passes unless the field is
// required.
func (f *Field) check(v any) string {
	if v == nil {
		if f.Required {
			return msgRequired
		}
		return ""
	}
	switch val := v.(type) {
	case string:
		return f.checkString(val)
	case int64:
		return f.checkRange(decimal.NewFromInt(val))
	case decimal.Decimal:
		if f.Places > 0 && -val.Exponent() > int32(f.Places) && !val.Equal(val.Truncate(int32(f.Places))) {
			return fmt.Sprintf("Ensure that there are no more than %d decimal places.", f.Places)
		}
		if f.Digits > 0 {
			whole := f.Digits - f.Places
			if len(val.Abs().Truncate(0).String()) > whole && !val.Abs().Truncate(0).IsZero() {
				return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", whole)
			}
		}
		return f.checkRange(val)
	}
	return ""
}

func (f *Field) checkString(s string) string {
	if s == "" {
		if f.Required {
			return msgRequired
		}
		return ""
	}
	if n := utf8.RuneCountInString(s); f.MaxLen > 0 && n > f.MaxLen {
		return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", f.MaxLen, n)
	}
	switch f.Kind {
	case KindURL:
		if !validURL(s) {
			return "Enter a valid URL."
		}
	case KindEmail:
		if a, err := mail.ParseAddress(s); err != nil || a.Address != s {
			return "Enter a valid email address."
		}
	case KindColor:
		if !colorRe.MatchString(s) {
			return "Enter a valid hex color, e.g. #5c2dd5."
		}
	case KindSlug:
		if !slug.Valid(s) {
			return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
		}
	case KindChoice:
		for _, c := range f.Choices {
			if c.Value == s {
				return ""
			}
		}
		return fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", s)
	}
	return ""
}

func (f *Field) checkRange(d decimal.Decimal) string {
	if f.Range == nil {
		return ""
	}
	if f.Range.Min != nil && d.LessThan(*f.Range.Min) {
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", f.Range.Min.String())
	}
	if f.Range.Max != nil && d.GreaterThan(*f.Range.Max) {
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", f.Range.Max.String())
	}
	return ""
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
