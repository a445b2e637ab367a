// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

/*
Package middleware holds the console's own HTTP middleware. CORS, inbound
rate limiting, compression and panic recovery come from the chi ecosystem
and are wired in package api.

  - RequestID: X-Request-ID echo plus request and correlation IDs in the
    logging context.
  - PrometheusMetrics: request count, duration and in-flight gauge labeled
    by chi route pattern.
  - AccessLog: one structured log line per request.

All three are func(http.Handler) http.Handler and go straight into
chi's Router.Use:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
