// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"thememarket/internal/admin"
	"thememarket/internal/schema"
	"thememarket/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type listFilter struct {
	Name    string
	Label   string
	Options []option
}

type listColumn struct {
	Label string
}

type listCell struct {
	RowID    int64
	Editable bool
	Input    formField
	Text     string
}

type listRow struct {
	Cells []listCell
}

// listFilters builds the sidebar filters of a change list. Only choice,
// boolean and foreign key columns can be filtered.
func listFilters(e *schema.Entity, opts admin.Options, query url.Values, fks fkChoices) []listFilter {
	var out []listFilter
	for _, name := range opts.ListFilter {
		f, ok := e.Field(name)
		if !ok {
			continue
		}
		lf := listFilter{Name: name, Label: f.Label}
		selected := query.Get(name)
		switch f.Kind {
		case schema.KindChoice:
			for _, c := range f.Choices {
				lf.Options = append(lf.Options, option{Value: c.Value, Label: c.Label, Selected: c.Value == selected})
			}
		case schema.KindBool:
			lf.Options = []option{
				{Value: "true", Label: "Yes", Selected: selected == "true"},
				{Value: "false", Label: "No", Selected: selected == "false"},
			}
		case schema.KindForeignKey:
			for _, o := range fks[f.Ref] {
				o.Selected = o.Value == selected
				lf.Options = append(lf.Options, o)
			}
		case schema.KindInt:
			if f.Range != nil && f.Range.Min != nil && f.Range.Max != nil {
				lo, hi := f.Range.Min.IntPart(), f.Range.Max.IntPart()
				for v := hi; v >= lo && hi-lo <= 10; v-- {
					s := strconv.FormatInt(v, 10)
					lf.Options = append(lf.Options, option{Value: s, Label: s, Selected: s == selected})
				}
			}
		}
		out = append(out, lf)
	}
	return out
}

func listColumns(e *schema.Entity, opts admin.Options) []listColumn {
	out := make([]listColumn, 0, len(opts.ListDisplay))
	for _, name := range opts.ListDisplay {
		label := name
		if f, ok := e.Field(name); ok {
			label = f.Label
		}
		out = append(out, listColumn{Label: label})
	}
	return out
}

// listRows builds the change list table. The first column links to the
// edit form and is never editable; list-editable cells are named
// "<id>-<field>".
func listRows(e *schema.Entity, opts admin.Options, rows []store.Record, fks fkChoices) []listRow {
	out := make([]listRow, 0, len(rows))
	for _, rec := range rows {
		id := rec.ID()
		v := recordValues(e, rec)
		row := listRow{Cells: make([]listCell, 0, len(opts.ListDisplay))}
		for i, name := range opts.ListDisplay {
			cell := listCell{RowID: id}
			f, ok := e.Field(name)
			if !ok {
				cell.Text = formatValue(rec[name])
				row.Cells = append(row.Cells, cell)
				continue
			}
			if i > 0 && opts.Editable(name) {
				cell.Editable = true
				cell.Input = newFormField(f, fmt.Sprintf("%d-%s", id, name), v, fks, nil)
				cell.Input.Label = ""
			}
			cell.Text = displayText(f, rec[name], fks)
			row.Cells = append(row.Cells, cell)
		}
		out = append(out, row)
	}
	return out
}

// exportValue converts a stored value into a spreadsheet cell value.
func exportValue(f *schema.Field, v any, fks fkChoices) any {
	if v == nil {
		return ""
	}
	switch f.Kind {
	case schema.KindBool:
		if b, ok := v.(bool); ok && b {
			return "Yes"
		}
		return "No"
	case schema.KindForeignKey:
		return displayText(f, v, fks)
	case schema.KindChoice:
		return f.ChoiceLabel(formatValue(v))
	case schema.KindDecimal:
		if d, err := decimal.NewFromString(formatValue(v)); err == nil {
			return d.InexactFloat64()
		}
	case schema.KindTimestamp:
		if t, ok := v.(time.Time); ok {
			return t.UTC()
		}
	case schema.KindInt:
		if n, ok := v.(int64); ok {
			return n
		}
	}
	return formatValue(v)
}

// sheetName trims a name to the 31 characters a worksheet allows.
func sheetName(s string) string {
	if r := []rune(s); len(r) > 31 {
		return string(r[:31])
	}
	return s
}

// exportWorkbook lays out rows as one worksheet with a bold header row.
func exportWorkbook(e *schema.Entity, rows []store.Record, fks fkChoices) (*excelize.File, error) {
	book := excelize.NewFile()
	sheet := sheetName(e.Plural)
	if err := book.SetSheetName("Sheet1", sheet); err != nil {
		book.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := []any{"ID"}
	for _, f := range e.Fields {
		header = append(header, f.Label)
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		book.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		book.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := book.SetRowStyle(sheet, 1, 1, bold); err != nil {
		book.Close()
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, rec := range rows {
		line := []any{rec.ID()}
		for j := range e.Fields {
			f := &e.Fields[j]
			line = append(line, exportValue(f, rec[f.Name], fks))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			book.Close()
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := book.SetSheetRow(sheet, cell, &line); err != nil {
			book.Close()
			return nil, fmt.Errorf("write row %d: %w", rec.ID(), err)
		}
	}
	return book, nil
}
