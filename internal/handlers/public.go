// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"thememarket/internal/composer"
)

// NotFoundTemplate renders every storefront 404.
const NotFoundTemplate = "not_found.html"

// Public groups handlers for the storefront. Every page is composed from
// the content store and rendered through the site templates.
type Public struct {
	site     siteRenderer
	composer *composer.Composer
}

// siteRenderer is the rendering boundary of the storefront.
type siteRenderer interface {
	Render(w io.Writer, templateID string, ctx map[string]any) error
}

// NewPublic creates a new Public handler group.
func NewPublic(site siteRenderer, comp *composer.Composer) *Public {
	return &Public{site: site, composer: comp}
}

// Route returns the handler of one fixed public page.
func (p *Public) Route(rt composer.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, err := p.composer.Compose(r.Context(), rt.Name, r.URL.Query())
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.render(w, r, http.StatusOK, rt.Template, ctx)
	}
}

// Theme renders a theme detail page by slug.
func (p *Public) Theme(w http.ResponseWriter, r *http.Request) {
	ctx, err := p.composer.Theme(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, composer.ThemeTemplate, ctx)
}

// StaticPage renders an admin-authored page by slug.
func (p *Public) StaticPage(w http.ResponseWriter, r *http.Request) {
	ctx, err := p.composer.StaticPage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, composer.PageTemplate, ctx)
}

// NotFound renders the storefront 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	ctx, err := p.composer.Common(r.Context())
	if err != nil {
		slog.Error("compose not found page failed", "error", err)
		http.NotFound(w, r)
		return
	}
	p.render(w, r, http.StatusNotFound, NotFoundTemplate, ctx)
}

// PageAPI returns the context of a fixed page as JSON.
func (p *Public) PageAPI(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "route")
	ctx, err := p.composer.Compose(r.Context(), name, r.URL.Query())
	p.writeContext(w, r, ctx, err)
}

// ThemeAPI returns a theme detail context as JSON.
func (p *Public) ThemeAPI(w http.ResponseWriter, r *http.Request) {
	ctx, err := p.composer.Theme(r.Context(), chi.URLParam(r, "slug"))
	p.writeContext(w, r, ctx, err)
}

func (p *Public) writeContext(w http.ResponseWriter, r *http.Request, ctx composer.Context, err error) {
	switch {
	case errors.Is(err, composer.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case err != nil:
		slog.Error("compose api page failed", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	default:
		writeJSON(w, http.StatusOK, ctx)
	}
}

func (p *Public) render(w http.ResponseWriter, r *http.Request, status int, templateID string, ctx composer.Context) {
	var buf bytes.Buffer
	if err := p.site.Render(&buf, templateID, ctx); err != nil {
		slog.Error("render page failed", "error", err, "template", templateID, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// fail maps a composer error to the 404 page or a logged 500.
func (p *Public) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, composer.ErrNotFound) {
		p.NotFound(w, r)
		return
	}
	slog.Error("compose page failed", "error", err, "path", r.URL.Path)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json failed", "error", err)
	}
}
