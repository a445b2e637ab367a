// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package services adapts console components to suture's Serve pattern.
// HTTPServerService binds the listener itself and drains connections on
// cancellation; HubService runs the websocket hub. The position poller
// implements suture.Service directly.
package services
