package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"thememarket/internal/models"
	"thememarket/internal/session"
)

func createTestUser(t *testing.T, env *testEnv, email, password string) {
	t.Helper()
	env.DB.Exec("DELETE FROM users WHERE email = $1", email)
	if _, err := env.UserStore.Create(context.Background(), email, password, "Login Tester", models.RoleEditor); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE email = $1", email) })
}

func TestLoginPage(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Auth.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/admin/login?next=/admin/theme/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="email"`) {
		t.Error("login form missing")
	}

	// Already signed in: straight to next.
	rec = httptest.NewRecorder()
	req := withParams(httptest.NewRequest(http.MethodGet, "/admin/login?next=/admin/theme/", nil), testSession("editor"))
	env.Auth.LoginPage(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/theme/" {
		t.Errorf("got %d to %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginSubmit(t *testing.T) {
	env := newTestEnv(t)
	const email = "login-test@thememarket.test"
	createTestUser(t, env, email, "correct horse battery")

	tests := []struct {
		name     string
		form     url.Values
		status   int
		location string
	}{
		{"wrong password", url.Values{"email": {email}, "password": {"nope"}}, http.StatusUnauthorized, ""},
		{"unknown user", url.Values{"email": {"ghost@thememarket.test"}, "password": {"x"}}, http.StatusUnauthorized, ""},
		{"success", url.Values{"email": {email}, "password": {"correct horse battery"}, "next": {"/admin/theme/"}}, http.StatusSeeOther, "/admin/theme/"},
		{"offsite next", url.Values{"email": {email}, "password": {"correct horse battery"}, "next": {"https://evil.example.com/"}}, http.StatusSeeOther, "/admin/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.Auth.LoginSubmit(rec, postForm("/admin/login", tt.form))

			if rec.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.status)
			}
			if tt.location == "" {
				if !strings.Contains(rec.Body.String(), "Please enter the correct email and password") {
					t.Error("failure message missing")
				}
				return
			}
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Errorf("Location: got %q, want %q", got, tt.location)
			}
			var found bool
			for _, c := range rec.Result().Cookies() {
				if c.Name == session.CookieName && c.Value != "" {
					found = true
				}
			}
			if !found {
				t.Error("session cookie not set")
			}
		})
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	login := httptest.NewRecorder()
	if _, err := env.Sessions.Create(ctx, login, testSession("admin")); err != nil {
		t.Fatalf("create session: %v", err)
	}
	cookie := login.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	env.Auth.Logout(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("got %d to %q", rec.Code, rec.Header().Get("Location"))
	}

	check := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	check.AddCookie(cookie)
	if sess, _ := env.Sessions.Get(ctx, check); sess != nil {
		t.Error("session should be destroyed")
	}
}
