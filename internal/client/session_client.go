// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/models"
	"github.com/tomtom215/cubesat-console/internal/validation"
)

// Auth endpoint paths, relative to the auth base URL.
const (
	authLogin        = "/auth/login"
	authRegister     = "/auth/register"
	authResetRequest = "/auth/password_reset_request"
	authReset        = "/auth/password_reset"
	authLogout       = "/auth/logout"
	authStatus       = "/auth/status"
)

// LoginForm accepts a username or an email address as Username.
type LoginForm struct {
	Username string `json:"username" validate:"required,loginid"`
	Password string `json:"password" validate:"required"`
}

// RegisterForm is the registration form.
type RegisterForm struct {
	Username        string `json:"username" validate:"required,username"`
	Email           string `json:"email" validate:"required,strictemail"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ResetRequestForm asks for a password reset email.
type ResetRequestForm struct {
	Email string `json:"email" validate:"required,strictemail"`
}

// ResetForm sets a new password with a reset token.
type ResetForm struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// SessionClient talks to the auth endpoints. Session cookies are opaque
// and live in the shared cookie jar.
type SessionClient struct {
	doer Doer
}

// NewSessionClient creates a SessionClient on a Doer rooted at the auth base URL.
func NewSessionClient(doer Doer) *SessionClient {
	return &SessionClient{doer: doer}
}

// Login signs in. Fields are validated before any network call.
func (c *SessionClient) Login(ctx context.Context, form LoginForm) (models.AuthResult, error) {
	form.Username = strings.TrimSpace(form.Username)
	if err := validation.ValidateStruct(&form); err != nil {
		return models.AuthResult{}, err
	}
	return c.post(ctx, authLogin, authLogin, form)
}

// Register creates an account.
func (c *SessionClient) Register(ctx context.Context, form RegisterForm) (models.AuthResult, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	if err := validation.ValidateStruct(&form); err != nil {
		return models.AuthResult{}, err
	}
	return c.post(ctx, authRegister, authRegister, form)
}

// RequestPasswordReset asks the server to email a reset link.
func (c *SessionClient) RequestPasswordReset(ctx context.Context, email string) (models.AuthResult, error) {
	form := ResetRequestForm{Email: strings.TrimSpace(email)}
	if err := validation.ValidateStruct(&form); err != nil {
		return models.AuthResult{}, err
	}
	return c.post(ctx, authResetRequest, authResetRequest, form)
}

// ResetPassword sets a new password using the emailed token.
func (c *SessionClient) ResetPassword(ctx context.Context, token string, form ResetForm) (models.AuthResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.AuthResult{}, validation.NewRequestValidationError("token", "required", "token is required", token)
	}
	if err := validation.ValidateStruct(&form); err != nil {
		return models.AuthResult{}, err
	}
	return c.post(ctx, authReset+"/"+url.PathEscape(token), authReset, form)
}

// Logout ends the session.
func (c *SessionClient) Logout(ctx context.Context) (models.AuthResult, error) {
	return c.post(ctx, authLogout, authLogout, nil)
}

// Status asks the server whether the session is authenticated. A 401 is
// the logged-out answer, not an error. Nothing is cached.
func (c *SessionClient) Status(ctx context.Context) (models.SessionStatus, error) {
	data, err := c.doer.Do(ctx, Request{Method: http.MethodGet, Path: authStatus})
	if err != nil {
		if IsHTTPStatus(err, http.StatusUnauthorized) {
			return models.SessionStatus{}, nil
		}
		return models.SessionStatus{}, err
	}
	return models.DecodeSessionStatus(authStatus, data)
}

func (c *SessionClient) post(ctx context.Context, path, endpoint string, body interface{}) (models.AuthResult, error) {
	req := Request{Method: http.MethodPost, Path: path, Endpoint: endpoint}
	if body != nil {
		req.Body = body
	}

	data, err := c.doer.Do(ctx, req)
	if err != nil {
		if authErr := asAuthError(endpoint, err); authErr != nil {
			logging.Ctx(ctx).Warn().Str("endpoint", endpoint).Int("status", authErr.Status).Str("message", authErr.Message).Msg("Auth request rejected")
			return models.AuthResult{Success: false, Message: authErr.Message}, authErr
		}
		logging.WriteFailure(ctx, endpoint, err).Msg("Auth request failed")
		return models.AuthResult{}, err
	}

	result, err := models.DecodeAuthResult(endpoint, data)
	if err != nil {
		return models.AuthResult{}, err
	}
	if !result.Success {
		return result, &AuthError{Endpoint: endpoint, Status: http.StatusOK, Message: result.Message}
	}
	return result, nil
}

// asAuthError converts a 4xx response carrying {success: false, message}
// into an *AuthError. Other errors return nil.
func asAuthError(endpoint string, err error) *AuthError {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status < 400 || httpErr.Status > 499 {
		return nil
	}
	result, decErr := models.DecodeAuthResult(endpoint, []byte(httpErr.Body))
	if decErr != nil || result.Success {
		return &AuthError{Endpoint: endpoint, Status: httpErr.Status, Message: http.StatusText(httpErr.Status)}
	}
	return &AuthError{Endpoint: endpoint, Status: httpErr.Status, Message: result.Message}
}
