// Package models holds the types shared by the stores, handlers and CLI
// that are not described by the content schema: admin accounts and
// uploaded files.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is an admin account's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleEditor:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q: want %q or %q", s, RoleAdmin, RoleEditor)
}

// CanDelete reports whether the role may delete records. Editors can add
// and change themes, pages and settings but not remove them.
func (r Role) CanDelete() bool {
	return r == RoleAdmin
}

// User is an admin account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	Role         Role      `db:"role" json:"role"`
	TOTPSecret   *string   `db:"totp_secret" json:"-"` // set when 2FA enrolment starts
	TOTPEnabled  bool      `db:"totp_enabled" json:"totp_enabled"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) CanDelete() bool { return u.Role.CanDelete() }

// Needs2FA reports whether signing in takes a TOTP code after the
// password. Two-factor authentication is opt-in per account.
func (u *User) Needs2FA() bool {
	return u.TOTPEnabled && u.TOTPSecret != nil
}
