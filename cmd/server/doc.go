// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

/*
Package main is the entry point for the CubeSat console server.

The console sits in front of a remote CubeSat API. It renders satellite
positions on a globe, charts and a heatmap, captures Earth Engine imagery
at a picked location, classifies it, and keeps a capture history. Pages
follow state over a websocket.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("cubesat-console")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket Hub
	│   └── Position Poller (POSITION_POLLER_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: koanf with defaults, config.yaml and environment variables
 2. Logging: zerolog with json or console output
 3. Image slot: BadgerDB or in-memory storage for the last captured image
 4. Clients: data and auth clients sharing a cookie jar, each behind a circuit breaker
 5. Capture workflow, history panel and views
 6. Controller and WebSocket hub
 7. HTTP server: chi router with the console pages, JSON API and websocket

# Configuration

	# Upstream
	CUBESAT_API_URL=http://127.0.0.1:5001/api
	CUBESAT_AUTH_URL=                   # default: CUBESAT_API_URL without /api
	CUBESAT_API_TIMEOUT=0               # 0 leaves calls bounded by the request

	# Server
	HTTP_HOST=127.0.0.1
	HTTP_PORT=8080
	CORS_ORIGINS=*

	# Image slot
	SLOT_BACKEND=badger                 # badger or memory
	SLOT_PATH=./data/slot

	# Logging
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the tree: the HTTP server drains within
HTTP_SHUTDOWN_TIMEOUT, the hub closes every websocket, and the image slot
is closed last.

# Example Usage

	export CUBESAT_API_URL=http://satellites.internal:5001/api
	export SLOT_BACKEND=memory
	./cubesat-console -config /etc/cubesat-console/config.yaml
*/
package main
