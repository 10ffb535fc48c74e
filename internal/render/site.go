// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
)

// Site renders public storefront pages. Every page template is parsed
// together with the shared layout and partials.
type Site struct {
	templates map[string]*template.Template
}

// sharedSiteTemplates are parsed into every page template.
var sharedSiteTemplates = []string{
	"templates/site/base.html",
	"templates/site/partials.html",
}

// NewSite parses all public page templates from the embedded filesystem.
// Templates are keyed by file name, e.g. "home.html".
func NewSite(devMode bool) (*Site, error) {
	s := &Site{templates: make(map[string]*template.Template)}
	funcs := siteFuncs(devMode)

	pages, err := fs.Glob(templateFS, "templates/site/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob site templates: %w", err)
	}
	for _, page := range pages {
		name := path.Base(page)
		if isShared(page) {
			continue
		}
		files := append(append([]string{}, sharedSiteTemplates...), page)
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse site template %s: %w", name, err)
		}
		s.templates[name] = tmpl
	}
	return s, nil
}

func isShared(page string) bool {
	for _, s := range sharedSiteTemplates {
		if s == page {
			return true
		}
	}
	return false
}

// Render executes the page template templateID with the page context and
// writes the result to w. Output is buffered so a failing template never
// produces a partial page.
func (s *Site) Render(w io.Writer, templateID string, ctx map[string]any) error {
	tmpl, ok := s.templates[templateID]
	if !ok {
		return fmt.Errorf("site template %q not found", templateID)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", ctx); err != nil {
		return fmt.Errorf("render %s: %w", templateID, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Templates returns the sorted names of all parsed page templates.
func (s *Site) Templates() []string {
	out := make([]string, 0, len(s.templates))
	for name := range s.templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Has reports whether a page template exists.
func (s *Site) Has(templateID string) bool {
	_, ok := s.templates[templateID]
	return ok
}
