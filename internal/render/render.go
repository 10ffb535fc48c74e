// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the admin interface
// and the public storefront. Admin pages support full-page and HTMX partial
// rendering, detecting the request type via the HX-Request header.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"

	"thememarket/internal/admin"
	"thememarket/internal/middleware"
	"thememarket/internal/session"
)

//go:embed templates/admin/*.html templates/site/*.html
var templateFS embed.FS

// Flash is a one-time notification message displayed to the user.
type Flash = session.Flash

// PageData holds all data passed to admin templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active navigation entity (e.g. "Theme")
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms and HTMX headers
	Nav       []admin.Group  // Sidebar groups
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
	Status    int            // Response status; 0 means 200
}

// Renderer handles template parsing and execution for admin pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_verify": true,
}

// New creates a Renderer by parsing all admin templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, templates use CDN-hosted assets (TailwindCSS, HTMX);
// when false, they reference local static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap:   adminFuncs(devMode),
	}

	pages, err := fs.Glob(templateFS, "templates/admin/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmplName := name[:len(name)-len(".html")]

		var (
			tmpl     *template.Template
			parseErr error
		)
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(templateFS, page)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/admin/base.html", page,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full admin page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
	if data.Nav == nil && data.Session != nil {
		data.Nav = admin.Navigation(nil)
	}

	execName := "base.html"
	if isHTMX(r) {
		execName = "content"
	} else if standaloneTemplates[name] {
		execName = name + ".html"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Status != 0 {
		w.WriteHeader(data.Status)
	}
	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Has reports whether an admin template with the given name was parsed.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
