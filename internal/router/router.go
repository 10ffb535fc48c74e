// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for
// ThemeMarket. It organizes routes into the public storefront, the JSON
// API and the admin, each with its own middleware stack.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"thememarket/internal/composer"
	"thememarket/internal/handlers"
	"thememarket/internal/middleware"
	"thememarket/internal/session"
	"thememarket/web"
)

// Options carries the deployment-dependent router settings.
type Options struct {
	// SecureCookies marks the CSRF cookie as HTTPS-only.
	SecureCookies bool

	// CORSOrigins are the origins allowed to call /api/v1.
	CORSOrigins []string

	// LoginLimiter throttles login attempts per client IP. Nil disables it.
	LoginLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and assets: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/static/*", staticHandler())

	// Read-only JSON API for headless consumers.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/pages/{route}", public.PageAPI)
		r.Get("/themes/{slug}", public.ThemeAPI)
	})

	// Admin routes: session, CSRF, then authentication.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Get("/login", auth.LoginPage)
		if opts.LoginLimiter != nil {
			r.With(opts.LoginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		} else {
			r.Post("/login", auth.LoginSubmit)
		}
		r.Post("/logout", auth.Logout)

		// Second login step for accounts with 2FA enabled.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.NoStore)

			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			if opts.LoginLimiter != nil {
				r.With(opts.LoginLimiter.Middleware).Post("/2fa/verify", auth.TwoFAVerifySubmit)
			} else {
				r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.NoStore)

			r.Get("/", admin.Index)

			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFASetupSubmit)
			r.Post("/2fa/disable", auth.TwoFADisable)

			r.Route("/{model}", func(r chi.Router) {
				r.Get("/", admin.List)
				r.Post("/inline/", admin.SaveList)
				r.Get("/export.xlsx", admin.Export)
				r.Get("/add/", admin.Add)
				r.Post("/add/", admin.Create)
				r.Get("/{id}/", admin.Edit)
				r.Post("/{id}/", admin.Update)

				// Deleting is reserved for administrators.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/delete/", admin.Delete)
					r.Delete("/{id}/", admin.Delete)
				})
			})
		})
	})

	// Public storefront.
	r.Group(func(r chi.Router) {
		for _, rt := range composer.Routes {
			r.Get(rt.Path, public.Route(rt))
		}
		r.Get("/themes/{slug}/", public.Theme)
		r.Get("/pages/{slug}/", public.StaticPage)
	})
	r.NotFound(public.NotFound)

	return r
}

// staticMaxAge is the browser cache lifetime of static assets, in seconds.
const staticMaxAge = "86400"

// staticHandler serves the embedded assets. The embedded tree is rooted
// at static/, matching the URL prefix.
func staticHandler() http.Handler {
	fs := http.FileServerFS(web.StaticFS)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age="+staticMaxAge)
		fs.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
