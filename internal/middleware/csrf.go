// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
)

const (
	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "tm_csrf"

	// CSRFHeaderName carries the token on HTMX requests.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden input rendered into admin forms.
	CSRFFormField = "csrf_token"

	csrfTokenBytes = 32

	csrfKey contextKey = "csrf"
)

// safeMethods never change state and skip token validation.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// NewCSRF returns double-submit cookie protection for the admin area.
// Every request gets a token cookie, also exposed through the context for
// templates. Unsafe methods must echo it in the header or in the posted
// form body; query strings are not consulted.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := csrfCookieToken(w, r, secure)
			if err != nil {
				slog.Error("csrf token generation failed", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfKey, token))

			if safeMethods[r.Method] {
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = r.PostFormValue(CSRFFormField)
			}
			if submitted == "" {
				slog.Warn("csrf token missing", "method", r.Method, "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
				slog.Warn("csrf token mismatch", "method", r.Method, "path", r.URL.Path)
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// csrfCookieToken returns the request's token cookie, issuing a new one
// when absent.
func csrfCookieToken(w http.ResponseWriter, r *http.Request, secure bool) (string, error) {
	if c, err := r.Cookie(CSRFCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/admin",
		HttpOnly: false, // read by the admin script for hx-headers
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// CSRFTokenFromCtx returns the token set by NewCSRF, or "" outside it.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey).(string)
	return token
}
