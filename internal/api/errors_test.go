// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/validation"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        validation.NewRequestValidationError("latitude", "max", "latitude must be at most 90", 91),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
		{
			name:       "classify before capture",
			err:        &client.PreconditionError{Op: "classify", Reason: "no captured image to classify"},
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodePrecondition,
			wantMsg:    "Capture an image before classifying",
		},
		{
			name:       "auth with upstream status",
			err:        &client.AuthError{Endpoint: "/auth/login", Status: http.StatusForbidden, Message: "Invalid credentials"},
			wantStatus: http.StatusForbidden,
			wantCode:   ErrCodeUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "auth with success status",
			err:        &client.AuthError{Endpoint: "/auth/login", Status: http.StatusOK, Message: "Invalid credentials"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrCodeUnauthorized,
		},
		{
			name:       "upstream 404",
			err:        &client.HTTPError{Method: "DELETE", URL: "/delete_image/9", Status: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "upstream 422",
			err:        &client.HTTPError{Method: "POST", URL: "/capture_image", Status: http.StatusUnprocessableEntity},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "upstream 500",
			err:        &client.HTTPError{Method: "POST", URL: "/capture_image", Status: http.StatusInternalServerError},
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeUpstreamFailed,
		},
		{
			name:       "upstream error body",
			err:        &client.UpstreamError{Endpoint: "/capture_image", Message: "No images found for the given location"},
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeUpstreamError,
			wantMsg:    "No images found for the given location",
		},
		{
			name:       "network",
			err:        &client.NetworkError{Method: "GET", URL: "/cubesat_positions", Err: context.DeadlineExceeded},
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeUpstreamDown,
			wantMsg:    "CubeSat API unreachable",
		},
		{
			name:       "decode",
			err:        &client.DecodeError{Endpoint: "/capture_image", Err: errors.New("bad json")},
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeUpstreamFailed,
		},
		{
			name:       "circuit open",
			err:        fmt.Errorf("capture: %w", client.ErrCircuitOpen),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrCodeServiceUnavailable,
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
			wantMsg:    "Internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if got.status != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.status, tt.wantStatus)
			}
			if got.code != tt.wantCode {
				t.Errorf("code = %s, want %s", got.code, tt.wantCode)
			}
			if tt.wantMsg != "" && got.message != tt.wantMsg {
				t.Errorf("message = %q, want %q", got.message, tt.wantMsg)
			}
		})
	}
}

func TestClassify_ValidationDetails(t *testing.T) {
	got := classify(validation.NewRequestValidationError("email", "strictemail", "email must be a valid email address", "x"))
	details, ok := got.details.(map[string]string)
	if !ok {
		t.Fatalf("details type = %T", got.details)
	}
	if details["email"] == "" {
		t.Errorf("details = %v, want an email entry", details)
	}
}
