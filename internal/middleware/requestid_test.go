// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/cubesat-console/internal/logging"
)

// captureIDs runs RequestID around a handler that records the context IDs.
func captureIDs(t *testing.T, header string) (response, ctxID, logID, correlation string) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
		logID = logging.RequestIDFromContext(r.Context())
		correlation = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/globe", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Header().Get(RequestIDHeader), ctxID, logID, correlation
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	response, ctxID, logID, correlation := captureIDs(t, "")

	if _, err := uuid.Parse(response); err != nil {
		t.Errorf("response X-Request-ID %q is not a UUID: %v", response, err)
	}
	if ctxID != response || logID != response {
		t.Errorf("context IDs %q/%q do not match header %q", ctxID, logID, response)
	}
	if correlation == "" {
		t.Error("expected a correlation ID in the logging context")
	}
}

func TestRequestID_UpstreamHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		preserve bool
	}{
		{"simple id", "existing-request-id-12345", true},
		{"dotted id", "proxy.42_a", true},
		{"spaces rejected", "bad id", false},
		{"newline rejected", "id\nforged log line", false},
		{"too long rejected", strings.Repeat("a", 129), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, ctxID, _, _ := captureIDs(t, tt.header)
			if tt.preserve && response != tt.header {
				t.Errorf("X-Request-ID = %q, want %q", response, tt.header)
			}
			if !tt.preserve && response == tt.header {
				t.Errorf("X-Request-ID %q should have been replaced", tt.header)
			}
			if ctxID != response {
				t.Errorf("context ID %q != header %q", ctxID, response)
			}
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, _, _, _ := captureIDs(t, "")
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
