// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package client

import (
	"github.com/tomtom215/cubesat-console/internal/config"
)

// Set bundles the typed clients for one upstream.
type Set struct {
	Session *SessionClient
	Catalog *CatalogClient
	Capture *CaptureClient
	History *HistoryClient

	// Data is the Doer behind the catalog, capture and history clients.
	Data Doer
	// Auth is the Doer behind the session client.
	Auth Doer
}

// NewSet builds the clients for cfg. The data and auth clients share one
// cookie jar and, when enabled, get separate circuit breakers.
func NewSet(cfg config.UpstreamConfig) (*Set, error) {
	jar, err := NewJar()
	if err != nil {
		return nil, err
	}

	base := Config{
		Timeout:        cfg.Timeout,
		UserAgent:      cfg.UserAgent,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Jar:            jar,
	}

	dataCfg := base
	dataCfg.BaseURL = cfg.BaseURL
	authCfg := base
	authCfg.BaseURL = cfg.AuthURL()

	var data, auth Doer = New(dataCfg), New(authCfg)
	if cfg.Breaker.Enabled {
		data = NewBreakerClient("cubesat-api", data, cfg.Breaker)
		auth = NewBreakerClient("cubesat-auth", auth, cfg.Breaker)
	}

	return NewSetFromDoers(data, auth), nil
}

// NewSetFromDoers builds the clients on existing Doers.
func NewSetFromDoers(data, auth Doer) *Set {
	return &Set{
		Session: NewSessionClient(auth),
		Catalog: NewCatalogClient(data),
		Capture: NewCaptureClient(data),
		History: NewHistoryClient(data),
		Data:    data,
		Auth:    auth,
	}
}
