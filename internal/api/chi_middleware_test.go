// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/cubesat-console/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChiMiddleware_RateLimit(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.ServerConfig
		requests int
		want     []int
	}{
		{
			name:     "disabled",
			cfg:      config.ServerConfig{RateLimitRequests: 0},
			requests: 5,
			want:     []int{200, 200, 200, 200, 200},
		},
		{
			name:     "two per minute",
			cfg:      config.ServerConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute},
			requests: 3,
			want:     []int{200, 200, 429},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChiMiddleware(tt.cfg).RateLimit()(okHandler)
			for i := 0; i < tt.requests; i++ {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
				if rec.Code != tt.want[i] {
					t.Errorf("request %d: status = %d, want %d", i+1, rec.Code, tt.want[i])
				}
			}
		})
	}
}

func TestChiMiddleware_RateLimitCustomPerIP(t *testing.T) {
	m := NewChiMiddleware(config.ServerConfig{RateLimitRequests: 100, RateLimitWindow: time.Minute})
	h := m.RateLimitCustom(RateLimitConfig{Requests: 1, Window: time.Minute})(okHandler)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/capture", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := send("192.0.2.1:1000"); got != http.StatusOK {
		t.Errorf("first = %d", got)
	}
	if got := send("192.0.2.1:1001"); got != http.StatusTooManyRequests {
		t.Errorf("second from same IP = %d, want 429", got)
	}
	if got := send("192.0.2.2:1000"); got != http.StatusOK {
		t.Errorf("other IP = %d, want 200", got)
	}
}

func TestChiMiddleware_CORS(t *testing.T) {
	h := NewChiMiddleware(config.ServerConfig{CORSOrigins: []string{"http://console.test"}}).CORS()(okHandler)

	tests := []struct {
		origin string
		want   string
	}{
		{"http://console.test", "http://console.test"},
		{"http://evil.test", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/capture", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	APISecurityHeaders()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}
