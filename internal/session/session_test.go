// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient connects to the test Valkey on DB 15 and skips the test
// when it is unreachable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func requestWith(c *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	if c != nil {
		r.AddCookie(c)
	}
	return r
}

// Paths that never reach Valkey work with a nil client.
func TestStoreWithoutCookie(t *testing.T) {
	s := NewStore(nil, false)
	ctx := context.Background()

	data, err := s.Get(ctx, requestWith(nil))
	if err != nil || data != nil {
		t.Errorf("Get: got %+v, %v; want nil, nil", data, err)
	}
	if err := s.Update(ctx, requestWith(nil), &Data{}); !errors.Is(err, ErrNoSession) {
		t.Errorf("Update: got %v, want ErrNoSession", err)
	}
	w := httptest.NewRecorder()
	if err := s.Destroy(ctx, w, requestWith(nil)); err != nil {
		t.Errorf("Destroy: %v", err)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("Destroy without a cookie should not set one")
	}
}

func TestCookieAttributes(t *testing.T) {
	for _, secure := range []bool{false, true} {
		c := NewStore(nil, secure).cookie("abc")
		if c.Path != "/admin" || !c.HttpOnly || c.Secure != secure || c.SameSite != http.SameSiteLaxMode {
			t.Errorf("secure=%v: unexpected cookie %+v", secure, c)
		}
		if c.MaxAge != 0 {
			t.Errorf("live cookie should be browser-session scoped, MaxAge=%d", c.MaxAge)
		}
	}
	if c := NewStore(nil, false).cookie(""); c.MaxAge != -1 {
		t.Errorf("clearing cookie MaxAge: got %d, want -1", c.MaxAge)
	}
}

func TestDataExpired(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		created time.Time
		want    bool
	}{
		{"fresh", now.Add(-time.Hour), false},
		{"at limit", now.Add(-MaxLifetime), false},
		{"past limit", now.Add(-MaxLifetime - time.Second), true},
		{"zero time", time.Time{}, false},
	}
	for _, tt := range tests {
		d := &Data{CreatedAt: tt.created}
		if got := d.expired(now); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSessionRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	s := NewStore(client, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	in := &Data{UserID: uuid.New(), Email: "editor@thememarket.local", DisplayName: "Editor", Role: "editor", TwoFAVerified: true}
	id, err := s.Create(ctx, w, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c := sessionCookie(t, w)
	if c.Value != id || len(id) != 2*idBytes {
		t.Errorf("cookie value %q, id %q", c.Value, id)
	}

	got, err := s.Get(ctx, requestWith(c))
	if err != nil || got == nil {
		t.Fatalf("Get: %+v, %v", got, err)
	}
	if got.UserID != in.UserID || got.Email != in.Email || got.Role != "editor" || !got.TwoFAVerified {
		t.Errorf("Get: got %+v", got)
	}

	got.DisplayName = "Renamed"
	if err := s.Update(ctx, requestWith(c), got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, _ := s.Get(ctx, requestWith(c))
	if again == nil || again.DisplayName != "Renamed" {
		t.Errorf("after Update: got %+v", again)
	}
}

func TestSessionSlidingExpiry(t *testing.T) {
	client := testValkeyClient(t)
	s := NewStore(client, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	id, err := s.Create(ctx, w, &Data{UserID: uuid.New(), Role: "admin"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := client.Expire(ctx, key(id), time.Minute).Err(); err != nil {
		t.Fatalf("Expire: %v", err)
	}

	if _, err := s.Get(ctx, requestWith(sessionCookie(t, w))); err != nil {
		t.Fatalf("Get: %v", err)
	}
	ttl, err := client.TTL(ctx, key(id)).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl < IdleTTL-time.Minute {
		t.Errorf("TTL after read: got %v, want about %v", ttl, IdleTTL)
	}
}

func TestSessionMaxLifetime(t *testing.T) {
	client := testValkeyClient(t)
	s := NewStore(client, false)
	ctx := context.Background()

	const id = "aged-session"
	payload, _ := json.Marshal(&Data{UserID: uuid.New(), Role: "admin", CreatedAt: time.Now().Add(-MaxLifetime - time.Hour)})
	if err := client.Set(ctx, key(id), payload, time.Hour).Err(); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(ctx, requestWith(&http.Cookie{Name: CookieName, Value: id}))
	if err != nil || got != nil {
		t.Errorf("Get: got %+v, %v; want nil, nil", got, err)
	}
	if n, _ := client.Exists(ctx, key(id)).Result(); n != 0 {
		t.Error("aged session should be deleted")
	}
}

func TestSessionUnknownID(t *testing.T) {
	s := NewStore(testValkeyClient(t), false)

	got, err := s.Get(context.Background(), requestWith(&http.Cookie{Name: CookieName, Value: "nonexistent"}))
	if err != nil || got != nil {
		t.Errorf("got %+v, %v; want nil, nil", got, err)
	}
}

func TestSessionFlashes(t *testing.T) {
	s := NewStore(testValkeyClient(t), false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	data := &Data{UserID: uuid.New(), Role: "admin"}
	if _, err := s.Create(ctx, w, data); err != nil {
		t.Fatalf("Create: %v", err)
	}
	r := requestWith(sessionCookie(t, w))

	if err := s.AddFlash(ctx, r, data, Flash{Type: "success", Message: "Theme saved."}); err != nil {
		t.Fatalf("AddFlash: %v", err)
	}
	stored, _ := s.Get(ctx, r)
	flashes, err := s.PopFlashes(ctx, r, stored)
	if err != nil {
		t.Fatalf("PopFlashes: %v", err)
	}
	if len(flashes) != 1 || flashes[0].Message != "Theme saved." {
		t.Errorf("flashes: got %+v", flashes)
	}
	if again, _ := s.Get(ctx, r); len(again.Flashes) != 0 {
		t.Errorf("flashes not cleared: %+v", again.Flashes)
	}
}

func TestSessionDestroy(t *testing.T) {
	s := NewStore(testValkeyClient(t), false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	if _, err := s.Create(ctx, w, &Data{UserID: uuid.New(), Role: "admin"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	r := requestWith(sessionCookie(t, w))

	w2 := httptest.NewRecorder()
	if err := s.Destroy(ctx, w2, r); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if c := sessionCookie(t, w2); c.MaxAge != -1 {
		t.Errorf("cleared cookie MaxAge: got %d, want -1", c.MaxAge)
	}
	if got, _ := s.Get(ctx, r); got != nil {
		t.Error("session should be gone after Destroy")
	}
}
