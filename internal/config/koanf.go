// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cubesat-console/config.yaml",
	"/etc/cubesat-console/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultDataset is the dataset used when a capture names none or names one
// outside the allowed list.
const DefaultDataset = "COPERNICUS/S2_SR_HARMONIZED"

// defaultConfig returns a Config with all default values.
func defaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			BaseURL:        "http://127.0.0.1:5001/api",
			AuthBaseURL:    "",
			Timeout:        0,
			UserAgent:      "cubesat-console/1.0",
			RateLimitRPS:   0,
			RateLimitBurst: 5,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     1 * time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Server: ServerConfig{
			Host:              "127.0.0.1",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      5 * time.Minute, // captures can take minutes upstream
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 300,
			RateLimitWindow:   1 * time.Minute,
		},
		Storage: StorageConfig{
			Backend: "badger",
			Path:    "./data/slot",
		},
		Capture: CaptureConfig{
			DefaultDataset: DefaultDataset,
			AllowedDatasets: []string{
				DefaultDataset,
				"LANDSAT/LC08/C02/T1_L2",
				"LANDSAT/LC09/C02/T1_L2",
				"MODIS/006/MOD09GA",
				"USDA/NAIP/DOQQ",
			},
			StoreRecords: true,
		},
		Views: ViewsConfig{
			MarkerPixelSize: 8,
			TrailTime:       24 * time.Hour,
			HeatRadius:      25,
			HeatIntensity:   0.5,
			TileURL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			TrackHorizon:    90 * time.Minute,
			TrackStep:       1 * time.Minute,
		},
		Poller: PollerConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using koanf with layered sources:
//
//  1. Defaults: built-in values
//  2. Config File: path, or CONFIG_PATH, or the first of DefaultConfigPaths found
//  3. Environment Variables: override any mapped setting
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// CUBESAT_API_URL -> upstream.base_url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or empty string.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated slices.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"capture.allowed_datasets",
}

// processSliceFields converts comma-separated string values (from env vars)
// to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"cubesat_api_url":          "upstream.base_url",
	"cubesat_auth_url":         "upstream.auth_base_url",
	"cubesat_api_timeout":      "upstream.timeout",
	"cubesat_user_agent":       "upstream.user_agent",
	"cubesat_rate_limit_rps":   "upstream.rate_limit_rps",
	"cubesat_rate_limit_burst": "upstream.rate_limit_burst",
	"circuit_breaker_enabled":  "upstream.breaker.enabled",
	"circuit_breaker_timeout":  "upstream.breaker.timeout",
	"http_host":                "server.host",
	"http_port":                "server.port",
	"http_read_timeout":        "server.read_timeout",
	"http_write_timeout":       "server.write_timeout",
	"http_shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":             "server.cors_origins",
	"rate_limit_requests":      "server.rate_limit_requests",
	"rate_limit_window":        "server.rate_limit_window",
	"slot_backend":             "storage.backend",
	"slot_path":                "storage.path",
	"capture_default_dataset":  "capture.default_dataset",
	"capture_allowed_datasets": "capture.allowed_datasets",
	"capture_store_records":    "capture.store_records",
	"views_heat_radius":        "views.heat_radius",
	"views_tile_url":           "views.tile_url",
	"views_track_horizon":      "views.track_horizon",
	"position_poller_enabled":  "poller.enabled",
	"position_poller_interval": "poller.interval",
	"log_level":                "logging.level",
	"log_format":               "logging.format",
	"log_caller":               "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
