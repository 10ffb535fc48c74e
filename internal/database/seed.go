package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the bootstrap admin account when the users table is
// empty. Missing credentials skip the step so a fresh database can still
// be seeded with content and the account created later from the CLI.
func SeedAdmin(ctx context.Context, db *sql.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		slog.Warn("ADMIN_EMAIL or ADMIN_PASSWORD unset, no admin account seeded")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin hash: %w", err)
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, display_name, role)
		SELECT $1, $2, 'Admin', 'admin'
		WHERE NOT EXISTS (SELECT 1 FROM users)`,
		email, string(hash))
	if err != nil {
		return fmt.Errorf("seed admin insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if n == 0 {
		slog.Info("users present, admin seed skipped")
		return nil
	}
	slog.Info("admin account seeded", "email", email)
	return nil
}
