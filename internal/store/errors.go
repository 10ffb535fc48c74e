// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for every storefront entity.
// ContentStore serves typed reads to the page composer, RecordStore offers
// schema-driven CRUD to the admin and the seeder, and UserStore manages
// admin accounts.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrIntegrity is matched by every *IntegrityError.
	ErrIntegrity = errors.New("integrity violation")

	// ErrNotFound is returned when a write targets a row that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrProtected is returned when deleting a row of a singleton entity.
	ErrProtected = errors.New("record is protected")
)

// IntegrityError reports a write rejected by a database constraint.
type IntegrityError struct {
	Table      string
	Constraint string
	Field      string // best-effort column name derived from the constraint
	Detail     string
}

func (e *IntegrityError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: duplicate or invalid value for %s", e.Table, e.Field)
	}
	return fmt.Sprintf("%s: constraint %s violated", e.Table, e.Constraint)
}

// Is makes errors.Is(err, ErrIntegrity) match.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// SQLSTATE codes that are caller errors rather than storage failures.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// mapError converts constraint violations into *IntegrityError and leaves
// every other error untouched.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation:
		field := pgErr.ColumnName
		if field == "" {
			field = constraintField(pgErr.TableName, pgErr.ConstraintName)
		}
		return &IntegrityError{
			Table:      pgErr.TableName,
			Constraint: pgErr.ConstraintName,
			Field:      field,
			Detail:     pgErr.Detail,
		}
	}
	return err
}

// constraintField recovers the column from PostgreSQL's default constraint
// names, e.g. "categories_slug_key" or "themes_category_id_fkey".
func constraintField(table, constraint string) string {
	name := strings.TrimPrefix(constraint, table+"_")
	if name == constraint {
		return ""
	}
	for _, suffix := range []string{"_key", "_fkey", "_check"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return ""
}
