// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

/*
Package api serves the CubeSat console over HTTP.

It exposes three surfaces on one chi router:

  - Pages: the console shell at / and the server-rendered history panel
    at /history, whose delete buttons post back to /history/{id}/delete.
  - JSON API under /api/v1: widget scenes (globe, charts, heatmap), the
    console state, UI events, capture, classify, upload, history and an
    auth pass-through to the upstream CubeSat API.
  - A websocket at /api/v1/ws that pushes state and results to every
    connected page.

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "VALIDATION_FAILED", "message": "...", "details": {...}}, "meta": {...}}

Upstream failures are mapped onto statuses by kind: validation errors are
400, a classify with nothing captured is 409, upstream HTTP failures are
passed through for 4xx and become 502 otherwise, and an open circuit
breaker is 503.

Usage:

	handler := api.NewHandler(api.Dependencies{
		Controller: ctrl,
		Workflow:   workflow,
		Clients:    clients,
		Panel:      historyPanel,
		Hub:        hub,
		Slot:       slot,
		Config:     cfg,
	})
	router := api.NewRouter(handler, cfg.Server)
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
