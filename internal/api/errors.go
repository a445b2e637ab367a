// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/controller"
)

// apiFailure is an error mapped onto the response envelope.
type apiFailure struct {
	status  int
	code    string
	message string
	details interface{}
}

// classify maps a client error onto an HTTP status:
//
//	validation    400  VALIDATION_FAILED, per-field details
//	precondition  409  PRECONDITION_FAILED
//	auth          upstream 4xx status, else 401
//	http 4xx      same status (404 -> NOT_FOUND), details carry it
//	http 5xx      502  UPSTREAM_FAILED
//	upstream      502  UPSTREAM_ERROR, message from the {error} body
//	network       502  UPSTREAM_UNAVAILABLE
//	decode        502  UPSTREAM_FAILED
//	circuit open  503  SERVICE_UNAVAILABLE
func classify(err error) apiFailure {
	msg := controller.UserMessage(err)

	switch client.Kind(err) {
	case client.KindValidation:
		return apiFailure{http.StatusBadRequest, ErrCodeValidationFailed, msg, fieldDetails(err)}

	case client.KindPrecondition:
		return apiFailure{http.StatusConflict, ErrCodePrecondition, msg, nil}

	case client.KindAuth:
		var authErr *client.AuthError
		status := http.StatusUnauthorized
		if errors.As(err, &authErr) && authErr.Status >= 400 && authErr.Status < 500 {
			status = authErr.Status
		}
		return apiFailure{status, ErrCodeUnauthorized, msg, nil}

	case client.KindHTTP:
		var httpErr *client.HTTPError
		errors.As(err, &httpErr)
		details := map[string]int{"upstream_status": httpErr.Status}
		switch {
		case httpErr.Status == http.StatusNotFound:
			return apiFailure{http.StatusNotFound, ErrCodeNotFound, msg, details}
		case httpErr.Status == http.StatusUnauthorized:
			return apiFailure{http.StatusUnauthorized, ErrCodeUnauthorized, msg, details}
		case httpErr.Status >= 400 && httpErr.Status < 500:
			return apiFailure{httpErr.Status, ErrCodeBadRequest, msg, details}
		default:
			return apiFailure{http.StatusBadGateway, ErrCodeUpstreamFailed, msg, details}
		}

	case client.KindUpstream:
		return apiFailure{http.StatusBadGateway, ErrCodeUpstreamError, msg, nil}

	case client.KindNetwork:
		return apiFailure{http.StatusBadGateway, ErrCodeUpstreamDown, "CubeSat API unreachable", nil}

	case client.KindDecode:
		return apiFailure{http.StatusBadGateway, ErrCodeUpstreamFailed, "Unexpected response from the CubeSat API", nil}

	case client.KindCircuitOpen:
		return apiFailure{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "CubeSat API temporarily unavailable", nil}

	default:
		return apiFailure{http.StatusInternalServerError, ErrCodeInternalError, "Internal error", nil}
	}
}

// fieldDetails returns field -> message for a validation error.
func fieldDetails(err error) map[string]string {
	var valErr *client.ValidationError
	if !errors.As(err, &valErr) {
		return nil
	}
	details := make(map[string]string, len(valErr.Errors()))
	for _, fe := range valErr.Errors() {
		details[fe.Field()] = fe.Error()
	}
	return details
}
