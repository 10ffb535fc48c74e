// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"thememarket/internal/admin"
	"thememarket/internal/middleware"
	"thememarket/internal/models"
	"thememarket/internal/render"
	"thememarket/internal/session"
	"thememarket/internal/store"
)

// totpIssuer labels ThemeMarket entries in authenticator apps.
const totpIssuer = "ThemeMarket"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	// A session still waiting for its TOTP code may start over.
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.TwoFAVerified {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Next": next},
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := safeNext(r.FormValue("next"))

	fail := func(status int, msg string) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title:  "Sign In",
			Status: status,
			Data:   map[string]any{"Error": msg, "Email": email, "Next": next},
		})
	}

	user, err := a.userStore.FindByEmail(r.Context(), email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		fail(http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, password) {
		slog.Warn("login failed", "email", email, "remote", r.RemoteAddr)
		fail(http.StatusUnauthorized, "Please enter the correct email and password for a staff account.")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:        user.ID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		Role:          string(user.Role),
		TwoFAVerified: !user.Needs2FA(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.Needs2FA() {
		slog.Info("password accepted, awaiting totp", "email", user.Email)
		http.Redirect(w, r, middleware.TwoFAPath+"?next="+url.QueryEscape(next), http.StatusSeeOther)
		return
	}
	slog.Info("admin logged in", "email", user.Email, "role", user.Role, "can_delete", user.CanDelete())
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// TwoFAVerifyPage renders the TOTP code form shown after the password step.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	if sess := middleware.SessionFromCtx(r.Context()); sess == nil || sess.TwoFAVerified {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Two-Factor Authentication",
		Data:  map[string]any{"Next": next},
	})
}

// TwoFAVerifySubmit checks the TOTP code and completes the login.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	next := safeNext(r.FormValue("next"))
	sess := middleware.SessionFromCtx(ctx)
	if sess == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	if sess.TwoFAVerified {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	user, err := a.userStore.FindByID(ctx, sess.UserID)
	if err != nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		// The account was deleted between the two steps.
		a.Logout(w, r)
		return
	}

	if user.Needs2FA() && !totp.Validate(normalizeCode(r.FormValue("code")), *user.TOTPSecret) {
		slog.Warn("totp code rejected", "email", user.Email, "remote", r.RemoteAddr)
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title:  "Two-Factor Authentication",
			Status: http.StatusUnauthorized,
			Data:   map[string]any{"Error": "Invalid code. Please try again.", "Next": next},
		})
		return
	}

	sess.TwoFAVerified = true
	if err := a.sessions.Update(ctx, r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	slog.Info("admin logged in", "email", user.Email, "role", user.Role, "two_factor", user.Needs2FA())
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// TwoFASetupPage shows the signed-in admin's 2FA status. When 2FA is off
// it starts an enrolment: a fresh secret is stored unconfirmed and shown
// as a QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	if user.Needs2FA() {
		a.renderSetup(w, r, user, nil, http.StatusOK, "")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: totpIssuer, AccountName: user.Email})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := a.userStore.SetTOTPSecret(r.Context(), user.ID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.renderSetup(w, r, user, key, http.StatusOK, "")
}

// TwoFASetupSubmit confirms an enrolment with the first code from the
// authenticator app.
func (a *Auth) TwoFASetupSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	if user.Needs2FA() || user.TOTPSecret == nil {
		http.Redirect(w, r, admin.Prefix+"/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(normalizeCode(r.FormValue("code")), *user.TOTPSecret) {
		key, err := storedKey(user.Email, *user.TOTPSecret)
		if err != nil {
			slog.Error("rebuild totp key failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		a.renderSetup(w, r, user, key, http.StatusUnprocessableEntity, "Invalid code. Please try again.")
		return
	}

	if err := a.userStore.EnableTOTP(r.Context(), user.ID); err != nil {
		slog.Error("enable totp failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	slog.Info("2fa enabled", "email", user.Email)
	a.flash(r, "success", "Two-factor authentication is now enabled.")
	http.Redirect(w, r, admin.Prefix+"/", http.StatusSeeOther)
}

// TwoFADisable turns 2FA off for the signed-in admin after checking a
// current code.
func (a *Auth) TwoFADisable(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	if !user.Needs2FA() {
		http.Redirect(w, r, admin.Prefix+"/2fa/setup", http.StatusSeeOther)
		return
	}
	if !totp.Validate(normalizeCode(r.FormValue("code")), *user.TOTPSecret) {
		a.renderSetup(w, r, user, nil, http.StatusUnprocessableEntity, "Invalid code. Two-factor authentication is still enabled.")
		return
	}

	if err := a.userStore.ResetTOTP(r.Context(), user.ID); err != nil {
		slog.Error("reset totp failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	slog.Info("2fa disabled", "email", user.Email)
	a.flash(r, "success", "Two-factor authentication has been turned off.")
	http.Redirect(w, r, admin.Prefix+"/", http.StatusSeeOther)
}

// currentUser loads the account behind the request's session.
func (a *Auth) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return nil, false
	}
	user, err := a.userStore.FindByID(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("user lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if user == nil {
		a.Logout(w, r)
		return nil, false
	}
	return user, true
}

// renderSetup draws the 2FA page. key is the enrolment being confirmed,
// nil when 2FA is already on.
func (a *Auth) renderSetup(w http.ResponseWriter, r *http.Request, user *models.User, key *otp.Key, status int, msg string) {
	data := map[string]any{"Enabled": user.Needs2FA(), "Error": msg}
	if key != nil {
		png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
		if err != nil {
			slog.Error("qr code generation failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data["QRCode"] = base64.StdEncoding.EncodeToString(png)
		data["Secret"] = key.Secret()
	}
	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title:   "Two-Factor Authentication",
		Section: "2FA",
		Status:  status,
		Data:    data,
	})
}

func (a *Auth) flash(r *http.Request, typ, msg string) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return
	}
	if err := a.sessions.AddFlash(r.Context(), r, sess, session.Flash{Type: typ, Message: msg}); err != nil {
		slog.Warn("add flash failed", "error", err)
	}
}

// storedKey rebuilds the otpauth key of a stored secret.
func storedKey(email, secret string) (*otp.Key, error) {
	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + totpIssuer + ":" + email,
		RawQuery: url.Values{"secret": {secret}, "issuer": {totpIssuer}}.Encode(),
	}
	key, err := otp.NewKeyFromURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("totp key for %s: %w", email, err)
	}
	return key, nil
}

// normalizeCode strips the spaces authenticator apps show inside codes.
func normalizeCode(code string) string {
	return strings.Join(strings.Fields(code), "")
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}
