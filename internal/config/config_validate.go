// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

var (
	validLogLevels  = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "console": true}
	validBackends   = map[string]bool{"badger": true, "memory": true}
)

// Validate checks that the configuration is usable. All problems are
// reported together.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateUpstream(),
		c.validateServer(),
		c.validateStorage(),
		c.validateCapture(),
		c.validateViews(),
		c.validatePoller(),
		c.validateLogging(),
	)
}

func (c *Config) validateUpstream() error {
	if err := validateHTTPURL(c.Upstream.BaseURL, "CUBESAT_API_URL"); err != nil {
		return err
	}
	if c.Upstream.AuthBaseURL != "" {
		if err := validateHTTPURL(c.Upstream.AuthBaseURL, "CUBESAT_AUTH_URL"); err != nil {
			return err
		}
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("CUBESAT_API_TIMEOUT must not be negative")
	}
	if c.Upstream.RateLimitRPS < 0 {
		return fmt.Errorf("CUBESAT_RATE_LIMIT_RPS must not be negative")
	}
	if c.Upstream.RateLimitRPS > 0 && c.Upstream.RateLimitBurst < 1 {
		return fmt.Errorf("CUBESAT_RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	b := c.Upstream.Breaker
	if b.Enabled {
		if b.FailureRatio <= 0 || b.FailureRatio > 1 {
			return fmt.Errorf("upstream.breaker.failure_ratio must be in (0, 1], got %v", b.FailureRatio)
		}
		if b.Timeout <= 0 {
			return fmt.Errorf("CIRCUIT_BREAKER_TIMEOUT must be positive")
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RateLimitRequests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must not be negative")
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if !validBackends[c.Storage.Backend] {
		return fmt.Errorf("SLOT_BACKEND must be one of: badger, memory")
	}
	if c.Storage.Backend == "badger" && c.Storage.Path == "" {
		return fmt.Errorf("SLOT_PATH is required for the badger backend")
	}
	return nil
}

func (c *Config) validateCapture() error {
	if len(c.Capture.AllowedDatasets) == 0 {
		return fmt.Errorf("CAPTURE_ALLOWED_DATASETS must not be empty")
	}
	if !slices.Contains(c.Capture.AllowedDatasets, c.Capture.DefaultDataset) {
		return fmt.Errorf("CAPTURE_DEFAULT_DATASET %q is not in the allowed datasets", c.Capture.DefaultDataset)
	}
	return nil
}

func (c *Config) validateViews() error {
	if c.Views.MarkerPixelSize <= 0 {
		return fmt.Errorf("views.marker_pixel_size must be positive")
	}
	if c.Views.HeatRadius <= 0 {
		return fmt.Errorf("VIEWS_HEAT_RADIUS must be positive")
	}
	if c.Views.TrackHorizon > 0 && c.Views.TrackStep <= 0 {
		return fmt.Errorf("views.track_step must be positive when predicted tracks are enabled")
	}
	return nil
}

func (c *Config) validatePoller() error {
	if c.Poller.Enabled && c.Poller.Interval <= 0 {
		return fmt.Errorf("POSITION_POLLER_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL validates scheme (http/https), host presence and the
// absence of query parameters. Paths are allowed since the API lives under /api.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
