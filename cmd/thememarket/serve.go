// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"thememarket/internal/cache"
	"thememarket/internal/composer"
	"thememarket/internal/database"
	"thememarket/internal/handlers"
	"thememarket/internal/middleware"
	"thememarket/internal/render"
	"thememarket/internal/router"
	"thememarket/internal/session"
	"thememarket/internal/storage"
	"thememarket/internal/store"
)

// Login attempts allowed per client IP and window.
const (
	loginLimit  = 10
	loginWindow = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	// Connect to PostgreSQL and apply pending migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.DB); err != nil {
		return err
	}

	// Connect to Valkey (session store).
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, 0)
	if err != nil {
		return err
	}
	defer valkeyClient.Close()

	// Non-development environments serve over HTTPS only.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("admin templates: %w", err)
	}
	site, err := render.NewSite(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("site templates: %w", err)
	}
	if err := checkTemplates(renderer, site); err != nil {
		return err
	}

	// S3-compatible storage is optional; image fields still accept URLs.
	storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		return fmt.Errorf("s3 storage: %w", err)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, image uploads disabled")
	}

	records := store.NewRecordStore(db)
	userStore := store.NewUserStore(db)
	content := store.NewContentStore(db)

	adminHandlers := handlers.NewAdmin(renderer, sessionStore, records, storageClient)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	publicHandlers := handlers.NewPublic(site, composer.New(content))

	loginLimiter := middleware.NewRateLimiter(loginLimit, loginWindow)
	defer loginLimiter.Stop()

	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, router.Options{
		SecureCookies: secureCookies,
		CORSOrigins:   cfg.CORSOrigins,
		LoginLimiter:  loginLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// checkTemplates fails startup when a routed page has no template.
func checkTemplates(renderer *render.Renderer, site *render.Site) error {
	pages := []string{composer.ThemeTemplate, composer.PageTemplate, handlers.NotFoundTemplate}
	for _, rt := range composer.Routes {
		pages = append(pages, rt.Template)
	}
	for _, p := range pages {
		if !site.Has(p) {
			return fmt.Errorf("site template %q is missing", p)
		}
	}
	for _, name := range handlers.AdminTemplates {
		if !renderer.Has(name) {
			return fmt.Errorf("admin template %q is missing", name)
		}
	}
	slog.Debug("templates loaded", "site", site.Templates())
	return nil
}
