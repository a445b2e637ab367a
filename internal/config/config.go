// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package config loads console configuration with koanf: built-in defaults,
// an optional YAML file, then environment variables.
package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds all console configuration.
type Config struct {
	Upstream UpstreamConfig `koanf:"upstream"`
	Server   ServerConfig   `koanf:"server"`
	Storage  StorageConfig  `koanf:"storage"`
	Capture  CaptureConfig  `koanf:"capture"`
	Views    ViewsConfig    `koanf:"views"`
	Poller   PollerConfig   `koanf:"poller"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// UpstreamConfig describes the remote CubeSat API.
type UpstreamConfig struct {
	// BaseURL is the data API root, e.g. http://127.0.0.1:5001/api
	BaseURL string `koanf:"base_url"`

	// AuthBaseURL is the auth root. Empty derives it from BaseURL minus a trailing /api.
	AuthBaseURL string `koanf:"auth_base_url"`

	// Timeout of zero leaves requests bounded only by the caller's context.
	Timeout time.Duration `koanf:"timeout"`

	UserAgent      string        `koanf:"user_agent"`
	RateLimitRPS   float64       `koanf:"rate_limit_rps"` // 0 disables client-side limiting
	RateLimitBurst int           `koanf:"rate_limit_burst"`
	Breaker        BreakerConfig `koanf:"breaker"`
}

// AuthURL returns the auth root URL without a trailing slash.
func (u UpstreamConfig) AuthURL() string {
	if u.AuthBaseURL != "" {
		return strings.TrimRight(u.AuthBaseURL, "/")
	}
	return strings.TrimSuffix(strings.TrimRight(u.BaseURL, "/"), "/api")
}

// BreakerConfig holds circuit breaker settings for upstream calls.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"` // allowed in half-open state
	Interval     time.Duration `koanf:"interval"`     // closed-state count reset
	Timeout      time.Duration `koanf:"timeout"`      // open -> half-open
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// ServerConfig holds the console HTTP surface settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// StorageConfig selects the backend for the client-local image slot.
type StorageConfig struct {
	Backend string `koanf:"backend"` // badger or memory
	Path    string `koanf:"path"`
}

// CaptureConfig holds capture workflow settings.
type CaptureConfig struct {
	DefaultDataset  string   `koanf:"default_dataset"`
	AllowedDatasets []string `koanf:"allowed_datasets"`

	// StoreRecords posts a store_image record after each capture.
	StoreRecords bool `koanf:"store_records"`
}

// ViewsConfig holds widget rendering settings.
type ViewsConfig struct {
	MarkerPixelSize int           `koanf:"marker_pixel_size"`
	TrailTime       time.Duration `koanf:"trail_time"`
	HeatRadius      int           `koanf:"heat_radius"`
	HeatIntensity   float64       `koanf:"heat_intensity"`
	TileURL         string        `koanf:"tile_url"`
	TrackHorizon    time.Duration `koanf:"track_horizon"` // 0 disables predicted tracks
	TrackStep       time.Duration `koanf:"track_step"`
}

// PollerConfig controls the background position refresh.
type PollerConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns host:port for the console listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
