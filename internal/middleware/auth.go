// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"thememarket/internal/models"
	"thememarket/internal/session"
)

type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"

	// LoginPath is where unauthenticated admin requests are sent.
	LoginPath = "/admin/login"

	// TwoFAPath is where a signed-in admin enters their TOTP code.
	TwoFAPath = "/admin/2fa/verify"
)

// LoadSession puts the Valkey session named by the request cookie into the
// context. It never rejects a request; a store failure is logged and the
// request continues as anonymous.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session load failed", "error", err, "path", r.URL.Path)
			}
			if data != nil {
				r = r.WithContext(context.WithValue(r.Context(), SessionKey, data))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects unauthenticated users to the login page, keeping
// the requested path in the "next" parameter. HTMX requests get an
// HX-Redirect header instead so the whole page navigates.
// Must be applied after LoadSession in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromCtx(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}
		redirectWithNext(w, r, LoginPath)
	})
}

// Require2FA holds sessions of 2FA accounts that have not entered their
// TOTP code yet at the code entry page. Accounts without 2FA are marked
// verified at login and pass through.
// Must be applied after RequireAuth.
func Require2FA(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess == nil || sess.TwoFAVerified {
			next.ServeHTTP(w, r)
			return
		}
		redirectWithNext(w, r, TwoFAPath)
	})
}

// redirectWithNext sends the browser to target, keeping a GET request's
// URL in the "next" parameter.
func redirectWithNext(w http.ResponseWriter, r *http.Request, target string) {
	if r.Method == http.MethodGet && r.URL.Path != target {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RequireAdmin guards destructive admin routes. Editors may create and
// change records but only admins may delete them.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess == nil || models.Role(sess.Role) != models.RoleAdmin {
			var who string
			if sess != nil {
				who = sess.Email
			}
			slog.Warn("admin role required", "user", who, "method", r.Method, "path", r.URL.Path)
			http.Error(w, "Forbidden: only administrators can delete records", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx returns the logged-in admin's session, or nil.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}
