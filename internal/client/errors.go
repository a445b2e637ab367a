// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package client

import (
	"errors"
	"fmt"

	"github.com/tomtom215/cubesat-console/internal/models"
	"github.com/tomtom215/cubesat-console/internal/validation"
)

// ValidationError is client-side input rejected before any network call.
type ValidationError = validation.RequestValidationError

// DecodeError is a response body that does not have the promised shape.
type DecodeError = models.DecodeError

// UpstreamError is an {"error": "..."} body returned with a success status.
type UpstreamError = models.UpstreamError

// ErrCircuitOpen is returned when the circuit breaker rejects a call.
var ErrCircuitOpen = errors.New("cubesat api circuit open")

// HTTPError is a response whose status is outside the 2xx range.
type HTTPError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// NetworkError is a transport failure: DNS, connection, timeout, cancellation.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// PreconditionError is an operation attempted without its required prior state.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// AuthError is an auth endpoint answering {success: false, message}.
type AuthError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed", e.Endpoint)
	}
	return e.Message
}

// Error kinds reported by Kind.
const (
	KindValidation   = "validation"
	KindPrecondition = "precondition"
	KindHTTP         = "http"
	KindNetwork      = "network"
	KindDecode       = "decode"
	KindUpstream     = "upstream"
	KindAuth         = "auth"
	KindCircuitOpen  = "circuit_open"
	KindUnknown      = "unknown"
)

// Kind classifies err into one of the Kind constants.
func Kind(err error) string {
	var (
		valErr  *ValidationError
		preErr  *PreconditionError
		authErr *AuthError
		httpErr *HTTPError
		netErr  *NetworkError
		decErr  *DecodeError
		upErr   *UpstreamError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &preErr):
		return KindPrecondition
	case errors.As(err, &authErr):
		return KindAuth
	case errors.Is(err, ErrCircuitOpen):
		return KindCircuitOpen
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &decErr):
		return KindDecode
	case errors.As(err, &upErr):
		return KindUpstream
	default:
		return KindUnknown
	}
}

// IsHTTPStatus reports whether err carries an *HTTPError with the given status.
func IsHTTPStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == status
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
