// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

/*
Package supervisor runs the console's long-lived services under suture v4.

	cubesat-console
	├── messaging-layer
	│   ├── websocket-hub    (services.HubService)
	│   └── position-poller  (poller.Poller)
	└── api-layer
	    └── http-server      (services.HTTPServerService)

Crashed services restart with suture's backoff. Failures are counted per
layer, so a poller that keeps failing against an unreachable upstream
backs off without touching the HTTP server. Supervisor events are logged
through the zerolog-backed slog adapter:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewHubService(hub))
	tree.AddMessagingService(poller.New(ctrl, cfg.Poller))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))
	return <-tree.ServeBackground(ctx)
*/
package supervisor
