// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/cubesat-console/internal/capture"
	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/controller"
	"github.com/tomtom215/cubesat-console/internal/panel"
	"github.com/tomtom215/cubesat-console/internal/store"
	"github.com/tomtom215/cubesat-console/internal/views"
	ws "github.com/tomtom215/cubesat-console/internal/websocket"
)

type upstreamReply struct {
	status int
	body   string
}

// fakeUpstream answers "METHOD /path" routes with fixed replies.
type fakeUpstream struct {
	mu     sync.Mutex
	routes map[string]upstreamReply
	calls  map[string]int
}

func (f *fakeUpstream) set(route string, status int, body string) {
	f.mu.Lock()
	f.routes[route] = upstreamReply{status: status, body: body}
	f.mu.Unlock()
}

func (f *fakeUpstream) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls[route]++
	reply, ok := f.routes[route]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.status)
	_, _ = io.WriteString(w, reply.body)
}

type testConsole struct {
	server   *httptest.Server
	upstream *fakeUpstream
	hub      *ws.Hub
	slot     *store.MemorySlot
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{CORSOrigins: []string{"http://console.test"}},
		Capture: config.CaptureConfig{
			DefaultDataset:  config.DefaultDataset,
			AllowedDatasets: []string{config.DefaultDataset},
		},
		Views: config.ViewsConfig{
			MarkerPixelSize: 8,
			HeatRadius:      25,
			HeatIntensity:   0.5,
			TileURL:         "https://tiles.test/{z}/{x}/{y}.png",
		},
	}
}

// newTestConsole wires the real clients, workflow, panel and controller
// against a fake upstream and serves the router.
func newTestConsole(t *testing.T) *testConsole {
	t.Helper()

	up := &fakeUpstream{routes: make(map[string]upstreamReply), calls: make(map[string]int)}
	upServer := httptest.NewServer(up)
	t.Cleanup(upServer.Close)

	cfg := testConfig()
	doer := client.New(client.Config{BaseURL: upServer.URL})
	clients := client.NewSetFromDoers(doer, doer)
	slot := store.NewMemorySlot()
	workflow := capture.NewWorkflow(clients.Capture, slot, cfg.Capture)
	history := panel.New(clients.History)

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.RunWithContext(ctx)
	}()

	ctrl := controller.New(controller.Deps{
		Catalog:  clients.Catalog,
		Capture:  workflow,
		Session:  clients.Session,
		Panel:    history,
		Globe:    views.NewGlobeView(cfg.Views),
		Charts:   views.NewChartView(),
		Heatmap:  views.NewHeatmapView(cfg.Views),
		Notifier: hub,
	})

	handler := NewHandler(Dependencies{
		Controller: ctrl,
		Workflow:   workflow,
		Clients:    clients,
		Panel:      history,
		Hub:        hub,
		Slot:       slot,
		Config:     cfg,
	})
	server := httptest.NewServer(NewRouter(handler, cfg.Server).SetupChi())
	t.Cleanup(func() {
		server.Close()
		cancel()
		<-done
	})

	return &testConsole{server: server, upstream: up, hub: hub, slot: slot}
}

func (c *testConsole) do(t *testing.T, method, path, body string) (*http.Response, APIResponse) {
	t.Helper()
	req, err := http.NewRequest(method, c.server.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(t, req)
}

func (c *testConsole) send(t *testing.T, req *http.Request) (*http.Response, APIResponse) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var envelope APIResponse
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
	}
	return resp, envelope
}

// dataMap re-decodes the envelope data as a generic object.
func dataMap(t *testing.T, env APIResponse) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("data is not an object: %s", raw)
	}
	return m
}

func checkStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

func checkErrorCode(t *testing.T, env APIResponse, want string) {
	t.Helper()
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Error == nil || env.Error.Code != want {
		t.Fatalf("error = %+v, want code %s", env.Error, want)
	}
}

const positionsBody = `[
	{"satellite": "CUBE-1", "latitude": 10, "longitude": 20, "altitude": 500, "velocity": 7.6},
	{"satellite": "CUBE-2", "latitude": -5, "longitude": 100, "altitude": 420, "velocity": 7.7}
]`

const historyBody = `[
	{"id": 2, "latitude": 10.5, "longitude": 20.25, "image_url": "images/b.png", "timestamp": "2026-03-01 10:00:00"},
	{"id": 1, "latitude": 1, "longitude": 2, "image_url": "images/a.png", "timestamp": "2026-02-01 10:00:00"}
]`

func TestRouter_Health(t *testing.T) {
	c := newTestConsole(t)

	resp, env := c.do(t, http.MethodGet, "/api/v1/health", "")
	checkStatus(t, resp, http.StatusOK)
	data := dataMap(t, env)
	if data["status"] != HealthHealthy {
		t.Errorf("status = %v, want healthy", data["status"])
	}
	if data["slot_backend"] != store.BackendMemory {
		t.Errorf("slot_backend = %v", data["slot_backend"])
	}
	if data["capture_state"] != string(capture.StateIdle) {
		t.Errorf("capture_state = %v", data["capture_state"])
	}
	if env.Meta == nil || env.Meta.RequestID == "" {
		t.Error("meta.request_id should be set")
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestRouter_Globe(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("GET /cubesat_positions", http.StatusOK, positionsBody)
	c.upstream.set("GET /cubesat_orbits", http.StatusOK, `[]`)

	resp, env := c.do(t, http.MethodGet, "/api/v1/globe", "")
	checkStatus(t, resp, http.StatusOK)
	if env.Meta == nil || env.Meta.Count == nil || *env.Meta.Count != 2 {
		t.Fatalf("meta = %+v, want count 2", env.Meta)
	}

	// served from the cached scene
	_, _ = c.do(t, http.MethodGet, "/api/v1/heatmap", "")
	if n := c.upstream.count("GET /cubesat_positions"); n != 1 {
		t.Errorf("positions fetched %d times, want 1", n)
	}

	_, _ = c.do(t, http.MethodGet, "/api/v1/charts?refresh=true", "")
	if n := c.upstream.count("GET /cubesat_positions"); n != 2 {
		t.Errorf("positions fetched %d times after refresh, want 2", n)
	}
}

func TestRouter_GlobeUpstreamDown(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("GET /cubesat_positions", http.StatusInternalServerError, `oops`)

	resp, env := c.do(t, http.MethodGet, "/api/v1/globe", "")
	checkStatus(t, resp, http.StatusOK)
	if *env.Meta.Count != 0 {
		t.Errorf("count = %d, want an empty globe", *env.Meta.Count)
	}
}

func TestRouter_Capture(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		reply      *upstreamReply
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing latitude",
			body:       `{"longitude": 20}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
		{
			name:       "latitude out of range",
			body:       `{"latitude": 91, "longitude": 20}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
		{
			name:       "malformed body",
			body:       `{"latitude":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "upstream error body",
			body:       `{"latitude": 10, "longitude": 20}`,
			reply:      &upstreamReply{http.StatusOK, `{"error": "No images found for the given location"}`},
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeUpstreamError,
		},
		{
			name:       "upstream 500",
			body:       `{"latitude": 10, "longitude": 20}`,
			reply:      &upstreamReply{http.StatusInternalServerError, `Internal Server Error`},
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeUpstreamFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsole(t)
			if tt.reply != nil {
				c.upstream.set("POST /capture_image", tt.reply.status, tt.reply.body)
			}

			resp, env := c.do(t, http.MethodPost, "/api/v1/capture", tt.body)
			checkStatus(t, resp, tt.wantStatus)
			checkErrorCode(t, env, tt.wantCode)
			if tt.reply == nil && c.upstream.count("POST /capture_image") != 0 {
				t.Error("rejected request should not reach upstream")
			}
		})
	}
}

func TestRouter_CaptureThenClassify(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("POST /capture_image", http.StatusOK, `{"rgb_url": "http://upstream/static/images\\a.png", "ndvi_url": "https://tiles/ndvi"}`)
	c.upstream.set("POST /classify_image", http.StatusOK, `{"classification_percentages": {"Forest": 80, "Water": 20}}`)

	resp, env := c.do(t, http.MethodPost, "/api/v1/capture", `{"latitude": 10, "longitude": 20}`)
	checkStatus(t, resp, http.StatusOK)
	captured := dataMap(t, env)["capture"].(map[string]interface{})
	if captured["state"] != string(capture.StateCaptured) {
		t.Errorf("capture state = %v", captured["state"])
	}
	if captured["raw_rgb_url"] != "http://upstream/static/images/a.png" {
		t.Errorf("raw_rgb_url = %v", captured["raw_rgb_url"])
	}

	stored, ok, _ := c.slot.Get(context.Background())
	if !ok || stored != "http://upstream/static/images/a.png" {
		t.Errorf("slot = %q, %v", stored, ok)
	}

	resp, env = c.do(t, http.MethodPost, "/api/v1/classify", "")
	checkStatus(t, resp, http.StatusOK)
	state := dataMap(t, env)["state"].(map[string]interface{})
	if shares, _ := state["classification"].([]interface{}); len(shares) != 2 {
		t.Errorf("classification = %v, want 2 shares", state["classification"])
	}
}

func TestRouter_ClassifyBeforeCapture(t *testing.T) {
	c := newTestConsole(t)

	resp, env := c.do(t, http.MethodPost, "/api/v1/classify", `{}`)
	checkStatus(t, resp, http.StatusConflict)
	checkErrorCode(t, env, ErrCodePrecondition)
	if env.Error.Message != "Capture an image before classifying" {
		t.Errorf("message = %q", env.Error.Message)
	}
	if c.upstream.count("POST /classify_image") != 0 {
		t.Error("classify should not reach upstream")
	}
}

func uploadRequest(t *testing.T, url, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(client.UploadField, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	_, _ = part.Write([]byte("\x89PNG fake"))
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRouter_Upload(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("POST /upload_image", http.StatusOK, `{"image_url": "uploads/field.png"}`)

	resp, env := c.send(t, uploadRequest(t, c.server.URL+"/api/v1/upload", "field.png"))
	checkStatus(t, resp, http.StatusOK)
	if got := dataMap(t, env)["image_url"]; got != "uploads/field.png" {
		t.Errorf("image_url = %v", got)
	}
	if stored, _, _ := c.slot.Get(context.Background()); stored != "uploads/field.png" {
		t.Errorf("slot = %q", stored)
	}

	resp, env = c.send(t, uploadRequest(t, c.server.URL+"/api/v1/upload", "notes.txt"))
	checkStatus(t, resp, http.StatusBadRequest)
	checkErrorCode(t, env, ErrCodeValidationFailed)

	req, _ := http.NewRequest(http.MethodPost, c.server.URL+"/api/v1/upload", strings.NewReader(""))
	resp, env = c.send(t, req)
	checkStatus(t, resp, http.StatusBadRequest)
	checkErrorCode(t, env, ErrCodeValidationFailed)
}

func TestRouter_History(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("GET /image_history", http.StatusOK, historyBody)
	c.upstream.set("GET /classification_history", http.StatusOK, `[{"id": 7, "image_url": "images/a.png", "classification": "Forest", "confidence": 0.92}]`)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?lat=10", 1},
		{"?lat=1&lon=2", 2}, // 10.5 and 20.25 contain the substrings too
		{"?lon=99", 0},
	}
	for _, tt := range tests {
		t.Run("filter"+tt.query, func(t *testing.T) {
			resp, env := c.do(t, http.MethodGet, "/api/v1/history"+tt.query, "")
			checkStatus(t, resp, http.StatusOK)
			if *env.Meta.Count != tt.want {
				t.Errorf("count = %d, want %d", *env.Meta.Count, tt.want)
			}
		})
	}

	resp, env := c.do(t, http.MethodGet, "/api/v1/history/classifications", "")
	checkStatus(t, resp, http.StatusOK)
	if *env.Meta.Count != 1 {
		t.Errorf("classifications = %d, want 1", *env.Meta.Count)
	}
}

func TestRouter_DeleteHistory(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("GET /image_history", http.StatusOK, historyBody)
	c.upstream.set("DELETE /delete_image/2", http.StatusOK, `{"message": "Image deleted successfully"}`)
	c.upstream.set("DELETE /delete_image/9", http.StatusOK, `{"error": "Image not found"}`)

	resp, _ := c.do(t, http.MethodDelete, "/api/v1/history/2", "")
	checkStatus(t, resp, http.StatusOK)
	if c.upstream.count("GET /image_history") == 0 {
		t.Error("history should be re-fetched after a delete")
	}

	resp, env := c.do(t, http.MethodDelete, "/api/v1/history/9", "")
	checkStatus(t, resp, http.StatusBadGateway)
	checkErrorCode(t, env, ErrCodeUpstreamError)
	if env.Error.Message != "Image not found" {
		t.Errorf("message = %q", env.Error.Message)
	}
}

func TestRouter_HistoryPage(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("GET /image_history", http.StatusOK, historyBody)
	c.upstream.set("DELETE /delete_image/1", http.StatusOK, `{"message": "Image deleted successfully"}`)
	c.upstream.set("DELETE /delete_image/5", http.StatusNotFound, `{"error": "Image not found"}`)

	resp, err := http.Get(c.server.URL + "/history?lat=10")
	if err != nil {
		t.Fatalf("GET /history: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	checkStatus(t, resp, http.StatusOK)
	if !strings.Contains(string(body), `data-id="2"`) || strings.Contains(string(body), `data-id="1"`) {
		t.Errorf("filtered page should show only card 2:\n%s", body)
	}

	noRedirect := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err = noRedirect.Post(c.server.URL+"/history/1/delete", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("POST delete: %v", err)
	}
	_ = resp.Body.Close()
	checkStatus(t, resp, http.StatusSeeOther)
	if loc := resp.Header.Get("Location"); loc != "/history" {
		t.Errorf("Location = %q", loc)
	}

	resp, err = noRedirect.Post(c.server.URL+"/history/5/delete", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("POST delete: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	checkStatus(t, resp, http.StatusNotFound)
	if !strings.Contains(string(body), `role="alert"`) {
		t.Errorf("failed delete should show an alert:\n%s", body)
	}
}

func TestRouter_Index(t *testing.T) {
	c := newTestConsole(t)

	resp, err := http.Get(c.server.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	checkStatus(t, resp, http.StatusOK)
	for _, want := range []string{`data-ws="/api/v1/ws"`, "tiles.test", config.DefaultDataset} {
		if !strings.Contains(string(body), want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRouter_Events(t *testing.T) {
	c := newTestConsole(t)

	resp, env := c.do(t, http.MethodPost, "/api/v1/events", `{"kind": "capture_succeeded"}`)
	checkStatus(t, resp, http.StatusBadRequest)
	checkErrorCode(t, env, ErrCodeBadRequest)

	resp, env = c.do(t, http.MethodPost, "/api/v1/events", `{"kind": "pointer_moved", "latitude": 12.5, "longitude": -3}`)
	checkStatus(t, resp, http.StatusOK)
	state := dataMap(t, env)
	if state["pointer_lat"] != "12.500000" || state["pointer_lon"] != "-3.000000" {
		t.Errorf("pointer = %v, %v", state["pointer_lat"], state["pointer_lon"])
	}

	// capture without a selection is reported in the notice
	resp, env = c.do(t, http.MethodPost, "/api/v1/events", `{"kind": "capture_clicked"}`)
	checkStatus(t, resp, http.StatusOK)
	if notice, _ := dataMap(t, env)["notice"].(map[string]interface{}); notice["kind"] != string(controller.NoticeInline) {
		t.Errorf("notice = %v, want inline", notice)
	}
}

func TestRouter_Login(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("POST /auth/login", http.StatusOK, `{"success": true, "message": "Login successful"}`)
	c.upstream.set("GET /auth/status", http.StatusOK, `{"success": true, "user": {"id": 4, "username": "operator"}}`)

	resp, env := c.do(t, http.MethodPost, "/api/v1/auth/login", `{"username": "", "password": "x"}`)
	checkStatus(t, resp, http.StatusBadRequest)
	checkErrorCode(t, env, ErrCodeValidationFailed)
	if c.upstream.count("POST /auth/login") != 0 {
		t.Error("invalid form should not reach upstream")
	}

	resp, env = c.do(t, http.MethodPost, "/api/v1/auth/login", `{"username": "operator", "password": "secret1"}`)
	checkStatus(t, resp, http.StatusOK)
	session := dataMap(t, env)["session"].(map[string]interface{})
	if session["authenticated"] != true || session["username"] != "operator" {
		t.Errorf("session = %v", session)
	}

	c.upstream.set("POST /auth/login", http.StatusUnauthorized, `{"success": false, "message": "Invalid credentials"}`)
	resp, env = c.do(t, http.MethodPost, "/api/v1/auth/login", `{"username": "operator", "password": "wrong"}`)
	checkStatus(t, resp, http.StatusUnauthorized)
	checkErrorCode(t, env, ErrCodeUnauthorized)
	if env.Error.Message != "Invalid credentials" {
		t.Errorf("message = %q", env.Error.Message)
	}
}

func TestRouter_AuthStatusSignedOut(t *testing.T) {
	c := newTestConsole(t)
	c.upstream.set("GET /auth/status", http.StatusUnauthorized, `{"success": false, "message": "User not logged in"}`)

	resp, env := c.do(t, http.MethodGet, "/api/v1/auth/status", "")
	checkStatus(t, resp, http.StatusOK)
	if dataMap(t, env)["authenticated"] != false {
		t.Errorf("data = %v", env.Data)
	}
}

func TestRouter_WebSocket(t *testing.T) {
	c := newTestConsole(t)
	wsURL := "ws" + strings.TrimPrefix(c.server.URL, "http") + "/api/v1/ws"

	t.Run("missing origin rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err == nil {
			t.Fatal("expected dial to fail")
		}
		if resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Errorf("resp = %v, want 403", resp)
		}
	})

	t.Run("foreign origin rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://evil.test"}})
		if err == nil || resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Fatalf("err = %v, resp = %v, want 403", err, resp)
		}
	})

	t.Run("receives status", func(t *testing.T) {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://console.test"}})
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		defer conn.Close()

		deadline := time.Now().Add(2 * time.Second)
		for c.hub.GetClientCount() != 1 {
			if time.Now().After(deadline) {
				t.Fatal("client never registered")
			}
			time.Sleep(5 * time.Millisecond)
		}

		_, _ = c.do(t, http.MethodPost, "/api/v1/events", `{"kind": "pointer_moved", "latitude": 1, "longitude": 2}`)

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				t.Fatalf("ReadMessage: %v", err)
			}
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if msg.Type == controller.MessageStatus {
				return
			}
		}
	})
}

func TestRouter_Metrics(t *testing.T) {
	c := newTestConsole(t)
	_, _ = c.do(t, http.MethodGet, "/api/v1/state", "")

	resp, err := http.Get(c.server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	checkStatus(t, resp, http.StatusOK)
	if !strings.Contains(string(body), `endpoint="/api/v1/state"`) {
		t.Error("metrics should be labeled by route pattern")
	}
}
