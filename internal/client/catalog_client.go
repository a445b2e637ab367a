// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package client

import (
	"context"
	"net/http"

	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/metrics"
	"github.com/tomtom215/cubesat-console/internal/models"
)

// CatalogClient fetches satellite positions and orbit tracks.
type CatalogClient struct {
	doer Doer
}

// NewCatalogClient creates a CatalogClient.
func NewCatalogClient(doer Doer) *CatalogClient {
	return &CatalogClient{doer: doer}
}

// Positions returns the current position records. Invalid records are
// skipped, logged and counted.
func (c *CatalogClient) Positions(ctx context.Context) ([]models.PositionRecord, error) {
	data, err := c.doer.Do(ctx, Request{Method: http.MethodGet, Path: models.EndpointPositions})
	if err != nil {
		return nil, err
	}
	records, skipped, err := models.DecodePositions(data)
	if err != nil {
		return nil, err
	}
	reportSkipped(ctx, models.EndpointPositions, skipped)
	return records, nil
}

// Orbits returns the orbit tracks.
func (c *CatalogClient) Orbits(ctx context.Context) ([]models.OrbitRecord, error) {
	data, err := c.doer.Do(ctx, Request{Method: http.MethodGet, Path: models.EndpointOrbits})
	if err != nil {
		return nil, err
	}
	orbits, skipped, err := models.DecodeOrbits(data)
	if err != nil {
		return nil, err
	}
	reportSkipped(ctx, models.EndpointOrbits, skipped)
	return orbits, nil
}

func reportSkipped(ctx context.Context, endpoint string, skipped int) {
	if skipped == 0 {
		return
	}
	metrics.RecordSkippedRecords(endpoint, skipped)
	logging.Ctx(ctx).Warn().Str("endpoint", endpoint).Int("skipped", skipped).Msg("Skipped invalid records")
}
