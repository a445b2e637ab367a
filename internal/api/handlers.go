// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/cubesat-console/internal/capture"
	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/controller"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/panel"
	"github.com/tomtom215/cubesat-console/internal/store"
	ws "github.com/tomtom215/cubesat-console/internal/websocket"
)

// maxJSONBody bounds request bodies other than uploads.
const maxJSONBody = 64 << 10

// Dependencies are the collaborators the handlers serve.
type Dependencies struct {
	Controller *controller.Controller
	Workflow   *capture.Workflow
	Clients    *client.Set
	Panel      *panel.Panel
	Hub        *ws.Hub
	Slot       store.Slot
	Config     *config.Config
}

// Handler serves the console pages, the JSON API and the websocket.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, shared helpers
//   - handlers_pages.go: HTML pages
//   - handlers_console.go: scene, state, events, capture and history
//   - handlers_auth.go: auth pass-through
//   - handlers_health.go: health and websocket
type Handler struct {
	ctrl      *controller.Controller
	workflow  *capture.Workflow
	clients   *client.Set
	panel     *panel.Panel
	hub       *ws.Hub
	slot      store.Slot
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		ctrl:      deps.Controller,
		workflow:  deps.Workflow,
		clients:   deps.Clients,
		panel:     deps.Panel,
		hub:       deps.Hub,
		slot:      deps.Slot,
		cfg:       deps.Config,
		startTime: time.Now(),
	}
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v
// untouched. It writes a 400 and returns false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Invalid request body")
		NewResponseWriter(w, r).BadRequest("Invalid request body")
		return false
	}
	return true
}

// getUpgrader creates a WebSocket upgrader with origin checking.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts origins listed in the CORS config. A
// missing Origin header is rejected; browsers always send one.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}
	if h.cfg == nil {
		return true
	}
	for _, allowed := range h.cfg.Server.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", origin).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
