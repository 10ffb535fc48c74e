// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"thememarket/internal/database"
	"thememarket/internal/seed"
	"thememarket/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()
		return database.Migrate(cmd.Context(), db.DB)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()
		return database.Status(cmd.Context(), db.DB, cmd.OutOrStdout())
	},
}

var (
	seedOverwrite bool
	seedSkipAdmin bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default storefront content and admin account",
	Long: `Seed creates the storefront content shipped with the binary.

Rows that already exist (matched by slug, platform, section type or title)
are left untouched unless --overwrite is given. The admin account from
ADMIN_EMAIL and ADMIN_PASSWORD is created only when no user exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db.DB); err != nil {
			return err
		}

		if !seedSkipAdmin {
			if err := database.SeedAdmin(cmd.Context(), db.DB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				return err
			}
		}

		fx, err := seed.Default()
		if err != nil {
			return err
		}
		rep, err := seed.New(store.NewRecordStore(db)).Run(cmd.Context(), fx, seed.Options{Overwrite: seedOverwrite})
		if err != nil {
			return err
		}

		var created, updated, skipped int
		for _, n := range rep.Created {
			created += n
		}
		for _, n := range rep.Updated {
			updated += n
		}
		for _, n := range rep.Skipped {
			skipped += n
		}
		slog.Info("seed complete", "created", created, "updated", updated, "skipped", skipped)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)

	seedCmd.Flags().BoolVar(&seedOverwrite, "overwrite", false, "update existing rows and replace their children")
	seedCmd.Flags().BoolVar(&seedSkipAdmin, "skip-admin", false, "do not create the bootstrap admin account")
}
