// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/reruns/internal/config"
	"github.com/tomtom215/reruns/internal/logging"
	"github.com/tomtom215/reruns/internal/models"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewChiMiddlewareConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil security keeps defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewChiMiddlewareConfig(nil)
		if cfg.RateLimitRequests != 100 || cfg.RateLimitWindow != time.Minute {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if len(cfg.CORSAllowedOrigins) != 0 {
			t.Errorf("default origins = %v, want none", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("security section is copied", func(t *testing.T) {
		t.Parallel()
		cfg := NewChiMiddlewareConfig(&config.SecurityConfig{
			RateLimitReqs:     7,
			RateLimitWindow:   time.Second,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"https://reruns.example"},
		})
		if cfg.RateLimitRequests != 7 || cfg.RateLimitWindow != time.Second || !cfg.RateLimitDisabled {
			t.Errorf("rate limit not copied: %+v", cfg)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://reruns.example" {
			t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
		}
	})
}

func TestChiMiddleware_CORS(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://allowed.example"}
	handler := NewChiMiddleware(cfg).CORS()(okHandler)

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"allowed origin echoed", "https://allowed.example", "https://allowed.example"},
		{"other origin not echoed", "https://evil.example", ""},
		{"no origin header", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=x", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChiMiddleware_RateLimit(t *testing.T) {
	t.Parallel()

	t.Run("disabled passes everything", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultChiMiddlewareConfig()
		cfg.RateLimitRequests = 1
		cfg.RateLimitDisabled = true
		handler := NewChiMiddleware(cfg).RateLimit()(okHandler)

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d: status %d", i, rec.Code)
			}
		}
	})

	t.Run("limit exceeded returns JSON 429", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultChiMiddlewareConfig()
		cfg.RateLimitRequests = 2
		cfg.RateLimitWindow = time.Minute
		handler := NewChiMiddleware(cfg).RateLimit()(okHandler)

		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			last = httptest.NewRecorder()
			handler.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
		}
		if last.Code != http.StatusTooManyRequests {
			t.Fatalf("third request status = %d, want 429", last.Code)
		}

		var resp models.APIResponse
		if err := json.Unmarshal(last.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp.Error == nil || resp.Error.Code != "TOO_MANY_REQUESTS" {
			t.Errorf("error = %+v, want TOO_MANY_REQUESTS", resp.Error)
		}
	})
}

func TestRequestIDWithLogging(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestIDWithLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	t.Run("incoming id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(chimiddleware.RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if seen != "req-123" {
			t.Errorf("context request id = %q, want req-123", seen)
		}
		if got := rec.Header().Get(chimiddleware.RequestIDHeader); got != "req-123" {
			t.Errorf("response header = %q, want req-123", got)
		}
	})

	t.Run("missing id is generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" {
			t.Error("no request id in context")
		}
		if got := rec.Header().Get(chimiddleware.RequestIDHeader); got != seen {
			t.Errorf("response header = %q, want %q", got, seen)
		}
	})
}

func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()

	handler := APISecurityHeaders()(okHandler)

	tests := []struct {
		name      string
		forwarded string
		wantHSTS  bool
	}{
		{"plain http", "", false},
		{"behind TLS proxy", "https", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-Proto", tt.forwarded)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("missing X-Content-Type-Options")
			}
			if rec.Header().Get("X-Frame-Options") != "DENY" {
				t.Error("missing X-Frame-Options")
			}
			if got := rec.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}
