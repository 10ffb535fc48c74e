// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sweepInterval is how often idle clients are dropped from the limiter.
const sweepInterval = 5 * time.Minute

// attempts holds the request times of one client inside the window.
type attempts struct {
	mu    sync.Mutex
	times []time.Time
}

// prune drops times at or before cutoff.
func (a *attempts) prune(cutoff time.Time) {
	kept := a.times[:0]
	for _, ts := range a.times {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	a.times = kept
}

// RateLimiter caps requests per client IP over a sliding window. The admin
// login form is guarded by one so passwords cannot be brute forced.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*attempts
	limit   int
	window  time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

// NewRateLimiter allows limit requests per window for each client and
// starts a goroutine that forgets idle clients. Call Stop when done.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*attempts),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop ends the sweeper. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) entry(key string) *attempts {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	a, ok := rl.clients[key]
	if !ok {
		a = &attempts{}
		rl.clients[key] = a
	}
	return a
}

// allow records a request for key. When the limit is reached it returns
// false and how long until the oldest request leaves the window.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.now()
	a := rl.entry(key)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.prune(now.Add(-rl.window))
	if len(a.times) >= rl.limit {
		return false, a.times[0].Add(rl.window).Sub(now)
	}
	a.times = append(a.times, now)
	return true, 0
}

// cleanup forgets clients whose requests have all left the window.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, a := range rl.clients {
		a.mu.Lock()
		a.prune(cutoff)
		idle := len(a.times) == 0
		a.mu.Unlock()
		if idle {
			delete(rl.clients, key)
		}
	}
}

// Middleware rejects over-limit clients with 429 and a Retry-After header
// counting the whole seconds until their next attempt is accepted.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, wait := rl.allow(ip)
		if !ok {
			slog.Warn("login rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
			http.Error(w, "Too many login attempts, try again later", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote address without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
