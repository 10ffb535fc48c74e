// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"thememarket/internal/middleware"
	"thememarket/internal/session"
)

// newTestRouter builds the router without handlers. Only routes that are
// answered by middleware may be exercised.
func newTestRouter() http.Handler {
	return New(session.NewStore(nil, false), nil, nil, nil, Options{CORSOrigins: []string{"*"}})
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestHealthThroughRouter(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health: got %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("security headers missing: X-Content-Type-Options=%q", got)
	}
}

func TestStaticAssets(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest("GET", "/static/css/site.css", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/css") {
		t.Errorf("content-type: got %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Cache-Control"), "max-age=") {
		t.Error("static assets should be cacheable")
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest("GET", "/admin/theme/", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != "/admin/login?next=%2Fadmin%2Ftheme%2F" {
		t.Errorf("Location: got %q", got)
	}
}

// adminPost builds a CSRF-valid POST carrying a fully signed-in session of
// the given role.
func adminPost(path, role string) *http.Request {
	const token = "test-token"
	r := httptest.NewRequest("POST", path, nil)
	r.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: token})
	r.Header.Set(middleware.CSRFHeaderName, token)
	if role != "" {
		sess := &session.Data{UserID: uuid.New(), Email: "staff@thememarket.test", Role: role, TwoFAVerified: true}
		r = r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
	}
	return r
}

func TestAdminRequiresSecondFactor(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"dashboard", "/admin/"},
		{"model list", "/admin/theme/"},
		{"2fa settings", "/admin/2fa/setup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &session.Data{UserID: uuid.New(), Email: "staff@thememarket.test", Role: "admin"}
			r := httptest.NewRequest("GET", tt.path, nil)
			r = r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
			w := httptest.NewRecorder()
			newTestRouter().ServeHTTP(w, r)

			if w.Code != http.StatusSeeOther {
				t.Fatalf("status: got %d, want %d", w.Code, http.StatusSeeOther)
			}
			if got := w.Header().Get("Location"); !strings.HasPrefix(got, middleware.TwoFAPath+"?next=") {
				t.Errorf("Location: got %q", got)
			}
		})
	}
}

func TestAdminDeleteRequiresAdminRole(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"post delete", "POST", "/admin/theme/1/delete/"},
		{"http delete", "DELETE", "/admin/theme/1/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := adminPost(tt.path, "editor")
			r.Method = tt.method
			w := httptest.NewRecorder()
			newTestRouter().ServeHTTP(w, r)

			if w.Code != http.StatusForbidden {
				t.Errorf("status: got %d, want %d", w.Code, http.StatusForbidden)
			}
		})
	}
}

func TestAdminPostRequiresCSRF(t *testing.T) {
	r := adminPost("/admin/theme/add/", "admin")
	r.Header.Del(middleware.CSRFHeaderName)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusForbidden)
	}
	if !strings.Contains(w.Body.String(), "CSRF") {
		t.Errorf("body: got %q", w.Body.String())
	}
}

func TestAPIPreflight(t *testing.T) {
	r := httptest.NewRequest("OPTIONS", "/api/v1/pages/home", nil)
	r.Header.Set("Origin", "https://headless.example.com")
	r.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin: got %q, want %q", got, "*")
	}
	if w.Code >= 400 {
		t.Errorf("preflight status: got %d", w.Code)
	}
}
