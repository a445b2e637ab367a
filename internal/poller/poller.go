// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package poller refreshes satellite positions on a fixed interval so
// connected pages see the globe move without reloading.
package poller

import (
	"context"
	"time"

	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/controller"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/metrics"
	"github.com/tomtom215/cubesat-console/internal/models"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 30 * time.Second

// Refresher rebuilds the scene and publishes it. Satisfied by
// *controller.Controller.
type Refresher interface {
	RefreshScene(ctx context.Context) (*controller.Scene, error)
}

// Poller is a suture service that calls RefreshScene on every tick.
// Upstream read failures are already degraded to an empty scene by the
// controller, so a run only fails when publishing does.
type Poller struct {
	src      Refresher
	interval time.Duration
	name     string
}

// New creates a poller from cfg.
func New(src Refresher, cfg config.PollerConfig) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		src:      src,
		interval: interval,
		name:     "position-poller",
	}
}

// Interval returns the refresh interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Serve implements suture.Service. It refreshes once immediately, then on
// every tick until ctx is done.
func (p *Poller) Serve(ctx context.Context) error {
	logging.Info().Dur("interval", p.interval).Msg("position poller starting")

	p.runOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("position poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	start := time.Now()

	scene, err := p.src.RefreshScene(ctx)
	count := 0
	if scene != nil {
		count = scene.Count
	}
	metrics.RecordPollerRun(count, err)

	if err != nil {
		logging.ReadFailure(ctx, models.EndpointPositions, err).Msg("position refresh failed")
		return
	}
	logging.Ctx(ctx).Debug().
		Int("satellites", count).
		Dur("duration", time.Since(start)).
		Msg("positions refreshed")
}

// String implements fmt.Stringer for suture logs.
func (p *Poller) String() string {
	return p.name
}
