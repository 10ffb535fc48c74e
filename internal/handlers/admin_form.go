// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"thememarket/internal/admin"
	"thememarket/internal/schema"
	"thememarket/internal/slug"
	"thememarket/internal/store"
)

// option is one entry of a select widget or list filter.
type option struct {
	Value    string
	Label    string
	Selected bool
}

// formField is the view model of one input, shared by edit forms, inline
// rows and list-editable cells.
type formField struct {
	Name        string
	Label       string
	Widget      string
	Value       string
	Checked     bool
	Options     []option
	Required    bool
	Help        string
	Error       string
	MaxLen      int
	Prepopulate string
	Uploadable  bool
}

type formFieldset struct {
	Name   string
	Fields []formField
}

type inlineRow struct {
	Fields     []formField
	IDName     string
	ID         string
	DeleteName string
}

type inlineForm struct {
	Entity  string
	Label   string
	Headers []string
	Rows    []inlineRow
}

// values is the string form of a row: what a browser would submit.
type values map[string]string

// fkChoices maps a referenced entity name to its selectable rows.
type fkChoices map[string][]option

// widget picks the input widget of a field.
func widget(f *schema.Field) string {
	switch f.Kind {
	case schema.KindBool:
		return "bool"
	case schema.KindText:
		return "textarea"
	case schema.KindRichText:
		return "richtext"
	case schema.KindChoice, schema.KindForeignKey:
		return "select"
	case schema.KindColor:
		return "color"
	case schema.KindImage:
		return "image"
	case schema.KindTimestamp:
		return "readonly"
	case schema.KindInt, schema.KindDecimal:
		return "number"
	case schema.KindURL:
		return "url"
	case schema.KindEmail:
		return "email"
	}
	return "text"
}

// formatValue renders a stored or default value the way it is posted back.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case decimal.Decimal:
		return val.String()
	case time.Time:
		return val.Format("2006-01-02 15:04")
	}
	return fmt.Sprint(v)
}

// recordValues converts a stored row into form values.
func recordValues(e *schema.Entity, rec store.Record) values {
	out := make(values, len(e.Fields)+1)
	out["id"] = formatValue(rec["id"])
	for _, f := range e.Fields {
		out[f.Name] = formatValue(rec[f.Name])
	}
	return out
}

// defaultValues returns the initial values of a new row.
func defaultValues(e *schema.Entity) values {
	out := make(values, len(e.Fields))
	for _, f := range e.Fields {
		if f.Default != nil {
			out[f.Name] = formatValue(f.Default)
		}
	}
	return out
}

// formValues keeps the last submitted value of each key under prefix,
// with the prefix stripped.
func formValues(form url.Values, prefix string) values {
	out := make(values)
	for k, v := range form {
		if !strings.HasPrefix(k, prefix) || len(v) == 0 {
			continue
		}
		out[strings.TrimPrefix(k, prefix)] = v[len(v)-1]
	}
	return out
}

// newFormField builds the view model of field f named name.
func newFormField(f *schema.Field, name string, v values, fks fkChoices, errs map[string]string) formField {
	val := v[f.Name]
	ff := formField{
		Name:     name,
		Label:    f.Label,
		Widget:   widget(f),
		Value:    val,
		Required: f.Required,
		Help:     f.Help,
		Error:    errs[name],
		MaxLen:   f.MaxLen,
	}
	switch f.Kind {
	case schema.KindBool:
		ff.Checked = val == "true" || val == "on"
	case schema.KindChoice:
		for _, c := range f.Choices {
			ff.Options = append(ff.Options, option{Value: c.Value, Label: c.Label, Selected: c.Value == val})
		}
	case schema.KindForeignKey:
		for _, o := range fks[f.Ref] {
			o.Selected = o.Value == val
			ff.Options = append(ff.Options, o)
		}
	}
	return ff
}

// displayText renders a list cell.
func displayText(f *schema.Field, v any, fks fkChoices) string {
	s := formatValue(v)
	switch f.Kind {
	case schema.KindBool:
		if b, ok := v.(bool); ok && b {
			return "Yes"
		}
		return "No"
	case schema.KindChoice:
		return f.ChoiceLabel(s)
	case schema.KindForeignKey:
		for _, o := range fks[f.Ref] {
			if o.Value == s {
				return o.Label
			}
		}
	case schema.KindText, schema.KindRichText:
		return truncate(s, 60)
	}
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + "…"
}

// fkRefs returns the entities referenced by foreign keys among names.
func fkRefs(e *schema.Entity, names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range names {
		f, ok := e.Field(n)
		if !ok || f.Kind != schema.KindForeignKey || seen[f.Ref] {
			continue
		}
		seen[f.Ref] = true
		out = append(out, f.Ref)
	}
	return out
}

// prepopulate fills blank slug targets from their source fields.
func prepopulate(e *schema.Entity, opts admin.Options, form url.Values) {
	for target, source := range opts.Prepopulated {
		if strings.TrimSpace(form.Get(target)) != "" {
			continue
		}
		src := strings.TrimSpace(form.Get(source))
		if src == "" {
			continue
		}
		max := 0
		if f, ok := e.Field(target); ok {
			max = f.MaxLen
		}
		form.Set(target, slug.GenerateMax(src, max))
	}
}

// inlineName is the form name of one inline cell.
func inlineName(child string, i int, field string) string {
	return fmt.Sprintf("%s-%d-%s", child, i, field)
}

// inlineRowValues returns the submitted rows of one inline, blank rows
// included, so the form can be re-rendered as posted.
func inlineRowValues(form url.Values, child string) []values {
	total, _ := strconv.Atoi(form.Get(child + "-TOTAL"))
	rows := make([]values, 0, total)
	for i := 0; i < total; i++ {
		rows = append(rows, formValues(form, fmt.Sprintf("%s-%d-", child, i)))
	}
	return rows
}

// blankRow reports whether an inline row was left untouched. Checkboxes
// alone do not make a row.
func blankRow(child *schema.Entity, fields []string, v values) bool {
	for _, n := range fields {
		f, ok := child.Field(n)
		if !ok || f.Kind == schema.KindBool {
			continue
		}
		if strings.TrimSpace(v[n]) != "" {
			return false
		}
	}
	return true
}

// parseInline validates the submitted rows of one inline. Deleted and
// blank rows are dropped. A row posted with the id of a stored child keeps
// it under "id" so the child is updated in place. Field errors are keyed
// by the cell's form name.
func parseInline(form url.Values, child *schema.Entity, in admin.Inline, verr *schema.ValidationError) []schema.Values {
	var out []schema.Values
	for i, row := range inlineRowValues(form, child.Name) {
		if row["DELETE"] == "true" || blankRow(child, in.Fields, row) {
			continue
		}
		sub := make(url.Values, len(row))
		for k, v := range row {
			sub.Set(k, v)
		}
		parsed, err := child.ParseFields(sub, in.Fields)
		if ve, ok := err.(*schema.ValidationError); ok {
			for field, msg := range ve.Fields {
				verr.Add(inlineName(child.Name, i, field), msg)
			}
			continue
		}
		if err != nil {
			verr.Add(inlineName(child.Name, i, in.Fields[0]), err.Error())
			continue
		}
		if id, err := strconv.ParseInt(row["id"], 10, 64); err == nil && id > 0 {
			parsed["id"] = id
		}
		out = append(out, parsed)
	}
	return out
}

// listEditableValues extracts the list-editable columns of one row from a
// list save, where cells are named "<id>-<field>".
func listEditableValues(form url.Values, id string, fields []string) url.Values {
	out := make(url.Values, len(fields))
	for _, f := range fields {
		if v, ok := form[id+"-"+f]; ok {
			out[f] = v
		}
	}
	return out
}

// safeNext returns next when it is a local admin path, the dashboard
// otherwise.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, admin.Prefix+"/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return admin.Prefix + "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return admin.Prefix + "/"
	}
	return next
}
