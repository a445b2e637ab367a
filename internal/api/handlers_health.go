// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/logging"
)

// Health statuses.
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status           string            `json:"status"`
	Breakers         map[string]string `json:"breakers,omitempty"`
	WebSocketClients int               `json:"websocket_clients"`
	SlotBackend      string            `json:"slot_backend,omitempty"`
	CaptureState     string            `json:"capture_state,omitempty"`
	Uptime           float64           `json:"uptime_seconds"`
}

// stateReporter is implemented by *client.BreakerClient.
type stateReporter interface {
	State() string
}

// Health reports breaker states, connected pages and the slot backend.
// The console is degraded while an upstream breaker is open.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := HealthStatus{
		Status: HealthHealthy,
		Uptime: time.Since(h.startTime).Seconds(),
	}

	if h.clients != nil {
		breakers := map[string]client.Doer{"data": h.clients.Data, "auth": h.clients.Auth}
		for name, doer := range breakers {
			br, ok := doer.(stateReporter)
			if !ok {
				continue
			}
			if health.Breakers == nil {
				health.Breakers = make(map[string]string, len(breakers))
			}
			state := br.State()
			health.Breakers[name] = state
			if state == "open" {
				health.Status = HealthDegraded
			}
		}
	}
	if h.hub != nil {
		health.WebSocketClients = h.hub.GetClientCount()
	}
	if h.slot != nil {
		health.SlotBackend = h.slot.Backend()
	}
	if h.workflow != nil {
		health.CaptureState = string(h.workflow.State())
	}

	NewResponseWriter(w, r).Success(health)
}

// HealthLive returns 200 while the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// WebSocket upgrades the connection and attaches it to the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		NewResponseWriter(w, r).Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	c := h.hub.Attach(conn)
	logging.Ctx(r.Context()).Debug().Str("client", c.Tag()).Msg("WebSocket client attached")
}
