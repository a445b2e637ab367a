// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package models defines the records exchanged with the CubeSat API and
// the per-endpoint decoders that turn raw payloads into typed results.
//
// Each decoder validates the payload once: a top-level shape mismatch is a
// *DecodeError, an {"error": "..."} body is an *UpstreamError, and
// individual records that fail presence or range checks are skipped and
// counted rather than failing the whole response.
package models

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DecodeError reports a payload that could not be decoded into the shape an
// endpoint promises.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UpstreamError is an {"error": "..."} body returned with a success status.
type UpstreamError struct {
	Endpoint string
	Message  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

// errorBody is the shape of an API error payload.
type errorBody struct {
	Error *string `json:"error"`
}

// upstreamError returns an *UpstreamError when data is an object carrying a
// non-empty "error" field.
func upstreamError(endpoint string, data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var body errorBody
	if err := json.Unmarshal(trimmed, &body); err != nil || body.Error == nil || *body.Error == "" {
		return nil
	}
	return &UpstreamError{Endpoint: endpoint, Message: *body.Error}
}

// decodeArray splits a top-level JSON array into its elements.
func decodeArray(endpoint string, data []byte) ([]json.RawMessage, error) {
	if err := upstreamError(endpoint, data); err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("expected an array: %w", err)}
	}
	return items, nil
}

// number parses a JSON number or numeric string. null, empty, non-numeric,
// NaN and infinite values are rejected.
func number(raw json.RawMessage) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// text parses a JSON string; other JSON types are rejected.
func text(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// timestampLayouts are the timestamp forms the API has been seen to emit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
}

// ParseTimestamp parses an API timestamp: one of timestampLayouts (naive
// forms are UTC) or Unix seconds, as a number or a numeric string.
func ParseTimestamp(raw json.RawMessage) (time.Time, bool) {
	if s, ok := text(raw); ok {
		s = strings.TrimSpace(s)
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.UTC(), true
			}
		}
	}
	if v, ok := number(raw); ok && v > 0 {
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
	}
	return time.Time{}, false
}
