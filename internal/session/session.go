// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session keeps admin logins in Valkey. The browser holds only a
// random ID in a cookie; the payload is JSON under a namespaced key.
// Sessions expire after IdleTTL without a request and after MaxLifetime
// regardless of activity.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the session cookie.
	CookieName = "tm_session"

	// IdleTTL is how long an unused session survives in Valkey. Each read
	// pushes the expiry forward.
	IdleTTL = 12 * time.Hour

	// MaxLifetime caps a session's age even when it is used continuously.
	MaxLifetime = 7 * 24 * time.Hour

	keyPrefix  = "thememarket:session:"
	cookiePath = "/admin"
	idBytes    = 32
)

// ErrNoSession is returned by Update when the request carries no cookie.
var ErrNoSession = errors.New("session: no session cookie")

// Flash is a one-time admin notice shown on the next page.
type Flash struct {
	Type    string `json:"type"` // success, error, warning or info
	Message string `json:"message"`
}

// Data is the payload stored per session.
type Data struct {
	UserID        uuid.UUID `json:"user_id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	Role          string    `json:"role"`
	TwoFAVerified bool      `json:"two_fa_verified"` // false until the TOTP step of a 2FA account
	Flashes       []Flash   `json:"flashes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// expired reports whether the session is older than MaxLifetime.
func (d *Data) expired(now time.Time) bool {
	return !d.CreatedAt.IsZero() && now.Sub(d.CreatedAt) > MaxLifetime
}

// Store reads and writes sessions in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewStore returns a store on client. secure marks the cookie HTTPS-only.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: IdleTTL, secure: secure, now: time.Now}
}

func key(id string) string { return keyPrefix + id }

// cookie builds the session cookie. An empty id expires it.
func (s *Store) cookie(id string) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     cookiePath,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if id == "" {
		c.MaxAge = -1
	}
	return c
}

// Create stores data under a fresh ID and sets the cookie. The cookie has
// no Max-Age, so closing the browser ends the login.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	id := hex.EncodeToString(b)

	data.CreatedAt = s.now()
	if err := s.write(ctx, id, data); err != nil {
		return "", err
	}
	http.SetCookie(w, s.cookie(id))
	return id, nil
}

// Get loads the session named by the request cookie and extends its idle
// expiry. It returns nil, nil when there is no cookie, the key has expired,
// or the session outlived MaxLifetime.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	payload, err := s.client.GetEx(ctx, key(c.Value), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	if data.expired(s.now()) {
		if err := s.client.Del(ctx, key(c.Value)).Err(); err != nil {
			return nil, fmt.Errorf("session expire: %w", err)
		}
		return nil, nil
	}
	return &data, nil
}

// Update overwrites the payload of the request's session.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return ErrNoSession
	}
	return s.write(ctx, c.Value, data)
}

func (s *Store) write(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, key(id), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// AddFlash queues f for the next page view.
func (s *Store) AddFlash(ctx context.Context, r *http.Request, data *Data, f Flash) error {
	data.Flashes = append(data.Flashes, f)
	return s.Update(ctx, r, data)
}

// PopFlashes returns the queued flashes and clears them.
func (s *Store) PopFlashes(ctx context.Context, r *http.Request, data *Data) ([]Flash, error) {
	if len(data.Flashes) == 0 {
		return nil, nil
	}
	out := data.Flashes
	data.Flashes = nil
	if err := s.Update(ctx, r, data); err != nil {
		return nil, err
	}
	return out, nil
}

// Destroy deletes the session and expires the cookie. The cookie is
// cleared even when the Valkey delete fails.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, s.cookie(""))
	if err := s.client.Del(ctx, key(c.Value)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
