// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"thememarket/internal/database"
	"thememarket/internal/models"
	"thememarket/internal/store"
)

// minPasswordLength is the shortest password the CLI accepts.
const minPasswordLength = 8

var (
	userName     string
	userRole     string
	userPassword string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage admin accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(cmd.Context(), func(ctx context.Context, s *store.UserStore) error {
			users, err := s.List(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tNAME\tROLE\t2FA\tCREATED")
			for _, u := range users {
				twoFA := "off"
				if u.Needs2FA() {
					twoFA = "on"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.Email, u.DisplayName, u.Role, twoFA, u.CreatedAt.Format("2006-01-02"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			n, err := s.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d account(s)\n", n)
			return nil
		})
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create EMAIL",
	Short: "Create an admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := models.ParseRole(userRole)
		if err != nil {
			return err
		}
		password, err := passwordFromFlagOrEnv()
		if err != nil {
			return err
		}
		return withUsers(cmd.Context(), func(ctx context.Context, s *store.UserStore) error {
			u, err := s.Create(ctx, args[0], password, userName, role)
			if errors.Is(err, store.ErrIntegrity) {
				return fmt.Errorf("a user with email %s already exists", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Email, u.Role)
			return nil
		})
	},
}

var usersPasswdCmd = &cobra.Command{
	Use:   "passwd EMAIL",
	Short: "Change an admin account's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFromFlagOrEnv()
		if err != nil {
			return err
		}
		return withUsers(cmd.Context(), func(ctx context.Context, s *store.UserStore) error {
			u, err := findUser(ctx, s, args[0])
			if err != nil {
				return err
			}
			if err := s.SetPassword(ctx, u.ID, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password changed for %s\n", u.Email)
			return nil
		})
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete EMAIL",
	Short: "Delete an admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(cmd.Context(), func(ctx context.Context, s *store.UserStore) error {
			u, err := findUser(ctx, s, args[0])
			if err != nil {
				return err
			}
			if u.IsAdmin() {
				n, err := countAdmins(ctx, s)
				if err != nil {
					return err
				}
				if n <= 1 {
					return errors.New("refusing to delete the last admin account")
				}
			}
			if err := s.Delete(ctx, u.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", u.Email)
			return nil
		})
	},
}

var usersReset2FACmd = &cobra.Command{
	Use:   "reset-2fa EMAIL",
	Short: "Turn off two-factor authentication for an account that lost its device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(cmd.Context(), func(ctx context.Context, s *store.UserStore) error {
			u, err := findUser(ctx, s, args[0])
			if err != nil {
				return err
			}
			if err := s.ResetTOTP(ctx, u.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "2FA reset for %s\n", u.Email)
			return nil
		})
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&userName, "name", "Admin", "display name")
	usersCreateCmd.Flags().StringVar(&userRole, "role", string(models.RoleEditor), "role: admin or editor")
	for _, c := range []*cobra.Command{usersCreateCmd, usersPasswdCmd} {
		c.Flags().StringVar(&userPassword, "password", "", "password (default $THEMEMARKET_PASSWORD)")
	}
	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersPasswdCmd, usersDeleteCmd, usersReset2FACmd)
	rootCmd.AddCommand(usersCmd)
}

// withUsers opens the database for the duration of fn.
func withUsers(ctx context.Context, fn func(context.Context, *store.UserStore) error) error {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, store.NewUserStore(db))
}

func findUser(ctx context.Context, s *store.UserStore, email string) (*models.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("no user with email %s", email)
	}
	return u, nil
}

func countAdmins(ctx context.Context, s *store.UserStore) (int, error) {
	users, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, u := range users {
		if u.IsAdmin() {
			n++
		}
	}
	return n, nil
}

// passwordFromFlagOrEnv reads --password, falling back to
// $THEMEMARKET_PASSWORD.
func passwordFromFlagOrEnv() (string, error) {
	p := userPassword
	if p == "" {
		p = os.Getenv("THEMEMARKET_PASSWORD")
	}
	if len(p) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return p, nil
}
