// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/cubesat-console/internal/models"
	"github.com/tomtom215/cubesat-console/internal/validation"
)

// HistoryClient reads and deletes stored captures and classifications.
// It never mutates entries.
type HistoryClient struct {
	doer Doer
}

// NewHistoryClient creates a HistoryClient.
func NewHistoryClient(doer Doer) *HistoryClient {
	return &HistoryClient{doer: doer}
}

// Images returns the stored captures.
func (c *HistoryClient) Images(ctx context.Context) ([]models.HistoryEntry, error) {
	data, err := c.doer.Do(ctx, Request{Method: http.MethodGet, Path: models.EndpointImageHistory})
	if err != nil {
		return nil, err
	}
	entries, skipped, err := models.DecodeImageHistory(data)
	if err != nil {
		return nil, err
	}
	reportSkipped(ctx, models.EndpointImageHistory, skipped)
	return entries, nil
}

// Classifications returns the stored classifications.
func (c *HistoryClient) Classifications(ctx context.Context) ([]models.ClassificationEntry, error) {
	data, err := c.doer.Do(ctx, Request{Method: http.MethodGet, Path: models.EndpointClassificationHistory})
	if err != nil {
		return nil, err
	}
	entries, skipped, err := models.DecodeClassificationHistory(data)
	if err != nil {
		return nil, err
	}
	reportSkipped(ctx, models.EndpointClassificationHistory, skipped)
	return entries, nil
}

// DeleteImage deletes a stored capture. An {"error"} body fails even with
// a success status.
func (c *HistoryClient) DeleteImage(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return validation.NewRequestValidationError("id", "required", "id is required", id)
	}
	data, err := c.doer.Do(ctx, Request{
		Method:   http.MethodDelete,
		Path:     models.EndpointDeleteImage + "/" + url.PathEscape(id),
		Endpoint: models.EndpointDeleteImage,
	})
	if err != nil {
		return err
	}
	return models.DecodeAck(models.EndpointDeleteImage, data)
}
