// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

/*
Package websocket pushes console updates to connected browsers.

A single Hub fans messages out to every Client. The controller publishes
through Hub.Broadcast after each dispatched event: "status" carries the
console state, and "positions", "capture", "classification" and "history"
carry the result that changed. Each Client runs a read pump that answers
{"type":"ping"} with {"type":"pong"} and a write pump that drains its send
buffer and keeps the connection alive with protocol pings.

Broadcast never blocks. When the hub queue is full the message is dropped,
and a client whose own buffer is full is disconnected.

Usage:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	hub.Attach(conn)
*/
package websocket
