// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverer(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		panicWith any
		wantType  string
		wantBody  string
	}{
		{"string panic on a page", "/themes/aurora/", "template exploded", "text/plain", "Internal Server Error"},
		{"error panic in admin", "/admin/theme/", errors.New("nil record"), "text/plain", "Internal Server Error"},
		{"integer panic", "/", 42, "text/plain", "Internal Server Error"},
		{"api panic", "/api/v1/themes/aurora", "decode failed", "application/json", `"error":"internal server error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panicWith)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rr.Code != http.StatusInternalServerError {
				t.Errorf("status: got %d, want 500", rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.wantType) {
				t.Errorf("content-type: got %q, want %s", ct, tt.wantType)
			}
			if !strings.Contains(rr.Body.String(), tt.wantBody) {
				t.Errorf("body: got %q, want it to contain %q", rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRecovererAPIBodyIsJSON(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/pages/home", nil))

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (body %q)", err, rr.Body.String())
	}
	if body["error"] == "" {
		t.Errorf("error field missing: %v", body)
	}
}

func TestRecovererAfterWrite(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>partial"))
		panic("mid-render")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pages/about/", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want the already-sent 200", rr.Code)
	}
	if got := rr.Body.String(); got != "<html>partial" {
		t.Errorf("body: got %q, nothing should be appended", got)
	}
}

func TestRecovererRepanicsOnAbort(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", rec)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRecovererPassThrough(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Theme", "aurora")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/theme/inline/", nil))

	if rr.Code != http.StatusAccepted || rr.Body.String() != "ok" {
		t.Errorf("got %d %q, want 202 %q", rr.Code, rr.Body.String(), "ok")
	}
	if got := rr.Header().Get("X-Theme"); got != "aurora" {
		t.Errorf("X-Theme: got %q", got)
	}
}
