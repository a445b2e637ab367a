// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// SessionStatus is recomputed from the status endpoint on every load.
type SessionStatus struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	UserID        string `json:"user_id,omitempty"`
}

// AuthResult is the {success, message} body of the auth endpoints.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DecodeAuthResult decodes an auth payload. An empty body counts as success.
func DecodeAuthResult(endpoint string, data []byte) (AuthResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return AuthResult{Success: true}, nil
	}
	var body struct {
		Success *bool   `json:"success"`
		Message string  `json:"message"`
		Error   *string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return AuthResult{}, &DecodeError{Endpoint: endpoint, Err: err}
	}
	result := AuthResult{Success: body.Success == nil || *body.Success, Message: body.Message}
	if body.Error != nil && *body.Error != "" {
		result.Success = false
		if result.Message == "" {
			result.Message = *body.Error
		}
	}
	return result, nil
}

// DecodeSessionStatus decodes a status payload.
func DecodeSessionStatus(endpoint string, data []byte) (SessionStatus, error) {
	var body struct {
		Success bool `json:"success"`
		User    *struct {
			ID       json.RawMessage `json:"id"`
			Username string          `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return SessionStatus{}, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if !body.Success || body.User == nil {
		return SessionStatus{}, nil
	}
	id, _ := identifier(body.User.ID)
	return SessionStatus{Authenticated: true, Username: body.User.Username, UserID: id}, nil
}
