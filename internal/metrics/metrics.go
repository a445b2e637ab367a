// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package metrics holds the Prometheus collectors for the console:
// upstream API calls, circuit breakers, the capture workflow, the image
// slot, the console HTTP surface, websocket push and the position poller.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream (CubeSat API) Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cubesat_upstream_requests_total",
			Help: "Total number of requests sent to the CubeSat API",
		},
		[]string{"method", "endpoint", "outcome"}, // outcome: ok, http_error, network_error, decode_error
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cubesat_upstream_request_duration_seconds",
			Help:    "CubeSat API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}, // captures run long
		},
		[]string{"method", "endpoint"},
	)

	UpstreamRecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cubesat_upstream_records_skipped_total",
			Help: "Records dropped by schema validation of upstream payloads",
		},
		[]string{"endpoint"},
	)

	// Console API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of console API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Console API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active console API requests",
		},
	)

	// Capture Workflow Metrics
	CaptureTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capture_workflow_transitions_total",
			Help: "Total number of capture workflow state transitions",
		},
		[]string{"from_state", "to_state"},
	)

	SlotWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_slot_writes_total",
			Help: "Total number of writes to the local image slot",
		},
		[]string{"backend", "result"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Position Poller Metrics
	PollerRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "position_poller_runs_total",
			Help: "Total number of position refresh runs",
		},
		[]string{"result"},
	)

	PollerSatellites = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "position_poller_satellites",
			Help: "Number of satellites in the latest refresh",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordUpstreamRequest records a CubeSat API call.
func RecordUpstreamRequest(method, endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(method, endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSkippedRecords records records dropped while decoding an endpoint payload.
func RecordSkippedRecords(endpoint string, n int) {
	if n > 0 {
		UpstreamRecordsSkipped.WithLabelValues(endpoint).Add(float64(n))
	}
}

// RecordAPIRequest records a console API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active console API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCaptureTransition records a capture workflow state change.
func RecordCaptureTransition(from, to string) {
	CaptureTransitions.WithLabelValues(from, to).Inc()
}

// RecordSlotWrite records a write to the local image slot.
func RecordSlotWrite(backend string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	SlotWrites.WithLabelValues(backend, result).Inc()
}

// RecordPollerRun records a position refresh run.
func RecordPollerRun(satellites int, err error) {
	if err != nil {
		PollerRuns.WithLabelValues("failure").Inc()
		return
	}
	PollerRuns.WithLabelValues("success").Inc()
	PollerSatellites.Set(float64(satellites))
}
