// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package client implements the typed clients for the remote CubeSat API:
// the shared HTTP client, its circuit breaker decorator, and the session,
// catalog, capture and history clients built on top of them.
//
// Every call goes through a Doer. Non-2xx statuses become *HTTPError with
// the body text, transport failures become *NetworkError, and payloads
// with the wrong shape become *DecodeError. Nothing is retried.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/metrics"
)

// Doer issues one API request and returns the raw JSON body.
// Both HTTPClient and BreakerClient implement it.
type Doer interface {
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}

var _ Doer = (*HTTPClient)(nil)

// Request describes one API call relative to the client's base URL.
type Request struct {
	Method string
	Path   string

	// Body is encoded as JSON when non-nil.
	Body interface{}

	// Upload sends a multipart form instead of Body.
	Upload *Upload

	// Endpoint labels metrics and logs. Defaults to Path.
	Endpoint string
}

// Upload is a single file sent as a multipart form field.
type Upload struct {
	Field    string
	Filename string
	Content  io.Reader
}

// Config configures an HTTPClient.
type Config struct {
	BaseURL string

	// Timeout of zero leaves requests bounded only by the caller's context.
	Timeout time.Duration

	UserAgent string

	// RateLimitRPS of zero disables client-side rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// Jar holds the opaque session cookies. Share one jar between the data
	// and auth clients so the session applies to both.
	Jar http.CookieJar

	// Transport overrides http.DefaultTransport (tests).
	Transport http.RoundTripper
}

// HTTPClient is the single wrapper every API call goes through.
type HTTPClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewJar creates a cookie jar using the public suffix list.
func NewJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return jar, nil
}

// RequestIDHeader forwards the console request ID so upstream logs line up.
const RequestIDHeader = "X-Request-ID"

// New creates an HTTPClient.
func New(cfg Config) *HTTPClient {
	c := &HTTPClient{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Jar:       cfg.Jar,
			Transport: cfg.Transport,
		},
	}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	return c
}

// BaseURL returns the base URL without a trailing slash.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Do sends req and returns the JSON body. An empty body returns nil.
func (c *HTTPClient) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Path
	}
	reqURL := c.baseURL + req.Path

	start := time.Now()
	body, status, err := c.send(ctx, method, reqURL, endpoint, req)
	outcome := outcomeOf(err)
	metrics.RecordUpstreamRequest(method, endpoint, outcome, time.Since(start))

	logging.Ctx(ctx).Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", status).
		Str("outcome", outcome).
		Dur("duration", time.Since(start)).
		Msg("CubeSat API request")

	return body, err
}

func (c *HTTPClient) send(ctx context.Context, method, reqURL, endpoint string, req Request) (json.RawMessage, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, &NetworkError{Method: method, URL: reqURL, Err: err}
		}
	}

	payload, contentType, err := encodeBody(req)
	if err != nil {
		return nil, 0, fmt.Errorf("encode %s request: %w", reqURL, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	// Already validated by the console's RequestID middleware.
	if id := logging.RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set(RequestIDHeader, id)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, &NetworkError{Method: method, URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &NetworkError{Method: method, URL: reqURL, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &HTTPError{
			Method: method,
			URL:    reqURL,
			Status: resp.StatusCode,
			Body:   string(data),
		}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, resp.StatusCode, nil
	}
	if !json.Valid(data) {
		return nil, resp.StatusCode, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("invalid JSON (status %d)", resp.StatusCode)}
	}
	return json.RawMessage(data), resp.StatusCode, nil
}

// encodeBody returns the request body and its content type.
func encodeBody(req Request) (io.Reader, string, error) {
	switch {
	case req.Upload != nil:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile(req.Upload.Field, req.Upload.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, req.Upload.Content); err != nil {
			return nil, "", err
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	default:
		return http.NoBody, "", nil
	}
}

func outcomeOf(err error) string {
	switch Kind(err) {
	case "":
		return "ok"
	case KindHTTP:
		return "http_error"
	case KindNetwork:
		return "network_error"
	case KindDecode:
		return "decode_error"
	default:
		return "error"
	}
}
