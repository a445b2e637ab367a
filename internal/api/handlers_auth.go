// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/controller"
	"github.com/tomtom215/cubesat-console/internal/models"
)

// sessionResponse is returned by login and logout.
type sessionResponse struct {
	Session models.SessionStatus `json:"session"`
	Status  string               `json:"status"`
}

type resetRequestBody struct {
	Email string `json:"email"`
}

// Login signs in upstream through the controller, so connected pages see
// the new session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var form client.LoginForm
	if !decodeJSON(w, r, &form) {
		return
	}

	state, err := h.ctrl.Dispatch(r.Context(), controller.Event{
		Kind:     controller.EventLoginSubmitted,
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		NewResponseWriter(w, r).FromError(err)
		return
	}
	NewResponseWriter(w, r).Success(sessionResponse{Session: state.Session, Status: state.Status})
}

// Logout ends the upstream session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	state, err := h.ctrl.Dispatch(r.Context(), controller.Event{Kind: controller.EventLogoutClicked})
	if err != nil {
		NewResponseWriter(w, r).FromError(err)
		return
	}
	NewResponseWriter(w, r).Success(sessionResponse{Session: state.Session, Status: state.Status})
}

// Register creates an upstream account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var form client.RegisterForm
	if !decodeJSON(w, r, &form) {
		return
	}
	h.respondAuth(w, r)(h.clients.Session.Register(r.Context(), form))
}

// AuthStatus reports whether the upstream session is signed in.
func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.clients.Session.Status(r.Context())
	if err != nil {
		NewResponseWriter(w, r).FromError(err)
		return
	}
	NewResponseWriter(w, r).Success(status)
}

// RequestPasswordReset asks upstream to email a reset link.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body resetRequestBody
	if !decodeJSON(w, r, &body) {
		return
	}
	h.respondAuth(w, r)(h.clients.Session.RequestPasswordReset(r.Context(), body.Email))
}

// ResetPassword sets a new password with the emailed token.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var form client.ResetForm
	if !decodeJSON(w, r, &form) {
		return
	}
	h.respondAuth(w, r)(h.clients.Session.ResetPassword(r.Context(), chi.URLParam(r, "token"), form))
}

func (h *Handler) respondAuth(w http.ResponseWriter, r *http.Request) func(models.AuthResult, error) {
	return func(result models.AuthResult, err error) {
		if err != nil {
			NewResponseWriter(w, r).FromError(err)
			return
		}
		NewResponseWriter(w, r).Success(result)
	}
}
