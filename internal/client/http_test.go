// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cubesat-console/internal/logging"
)

func TestHTTPClient_Success(t *testing.T) {
	t.Parallel()

	var gotUA, gotContentType string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL + "/api/", UserAgent: "cubesat-console/test"})
	data, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/store_image", Body: map[string]string{"imageUrl": "x.png"}})
	checkNoError(t, err)

	checkStringEqual(t, "body", string(data), `{"ok": true}`)
	checkStringEqual(t, "User-Agent", gotUA, "cubesat-console/test")
	checkStringEqual(t, "Content-Type", gotContentType, "application/json")
	if gotBody["imageUrl"] != "x.png" {
		t.Errorf("request body = %v", gotBody)
	}
	checkStringEqual(t, "BaseURL", c.BaseURL(), server.URL+"/api")
}

func TestHTTPClient_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Earth Engine quota exceeded"}`))
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Do(context.Background(), Request{Path: "/capture_image"})
	checkKind(t, err, KindHTTP)

	var httpErr *HTTPError
	checkErrorAs(t, err, &httpErr)
	checkIntEqual(t, "Status", httpErr.Status, http.StatusInternalServerError)
	if !strings.Contains(httpErr.Body, "quota exceeded") {
		t.Errorf("Body = %q, want the response text", httpErr.Body)
	}
	if !IsHTTPStatus(err, http.StatusInternalServerError) {
		t.Error("IsHTTPStatus should match 500")
	}
}

func TestHTTPClient_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(Config{BaseURL: url}).Do(context.Background(), Request{Path: "/cubesat_positions"})
	checkKind(t, err, KindNetwork)
}

func TestHTTPClient_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>proxy error</html>`))
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Do(context.Background(), Request{Path: "/image_history"})
	checkKind(t, err, KindDecode)
}

func TestHTTPClient_EmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	data, err := New(Config{BaseURL: server.URL}).Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/logout"})
	checkNoError(t, err)
	if data != nil {
		t.Errorf("expected nil body, got %q", data)
	}
}

func TestHTTPClient_Upload(t *testing.T) {
	t.Parallel()

	var field, filename, content string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image_file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		field, filename, content = "image_file", header.Filename, string(data)
		_, _ = w.Write([]byte(`{"image_url": "/static/uploads/scene.png"}`))
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/upload_image",
		Upload: &Upload{Field: "image_file", Filename: "scene.png", Content: strings.NewReader("PNGDATA")},
	})
	checkNoError(t, err)
	checkStringEqual(t, "field", field, "image_file")
	checkStringEqual(t, "filename", filename, "scene.png")
	checkStringEqual(t, "content", content, "PNGDATA")
}

func TestHTTPClient_RateLimitHonorsContext(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, RateLimitRPS: 0.001, RateLimitBurst: 1})

	_, err := c.Do(context.Background(), Request{Path: "/cubesat_positions"})
	checkNoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Do(ctx, Request{Path: "/cubesat_positions"})
	checkKind(t, err, KindNetwork)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 request to reach the server, got %d", got)
	}
}

func TestNewJar_SharesCookies(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "opaque", Path: "/"})
			_, _ = w.Write([]byte(`{"success": true}`))
		case "/api/image_history":
			if c, err := r.Cookie("session"); err != nil || c.Value != "opaque" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error": "Authentication required"}`))
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	jar, err := NewJar()
	checkNoError(t, err)
	auth := New(Config{BaseURL: server.URL, Jar: jar})
	data := New(Config{BaseURL: server.URL + "/api", Jar: jar})

	_, err = auth.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login"})
	checkNoError(t, err)
	_, err = data.Do(context.Background(), Request{Path: "/image_history"})
	checkNoError(t, err)
}

func TestHTTPClient_ForwardsRequestID(t *testing.T) {
	t.Parallel()

	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(RequestIDHeader))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	_, err := c.Do(ctx, Request{Path: "/cubesat_positions"})
	checkNoError(t, err)
	_, err = c.Do(context.Background(), Request{Path: "/cubesat_positions"})
	checkNoError(t, err)

	checkIntEqual(t, "requests", len(got), 2)
	checkStringEqual(t, "with request ID", got[0], "req-42")
	checkStringEqual(t, "without request ID", got[1], "")
}
