// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package panel

import (
	"context"
	"sync"

	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/models"
)

// Source is the history API the panel reads and deletes through.
// *client.HistoryClient implements it.
type Source interface {
	Images(ctx context.Context) ([]models.HistoryEntry, error)
	Classifications(ctx context.Context) ([]models.ClassificationEntry, error)
	DeleteImage(ctx context.Context, id string) error
}

// Panel keeps the last fetched history and the active filter.
type Panel struct {
	src Source

	mu              sync.RWMutex
	entries         []models.HistoryEntry
	classifications []models.ClassificationEntry
	filter          Filter
}

// New creates an empty Panel.
func New(src Source) *Panel {
	return &Panel{src: src}
}

// Load fetches the capture history and re-renders. A failed fetch is logged
// and the panel shows no data.
func (p *Panel) Load(ctx context.Context) Rendered {
	entries, err := p.src.Images(ctx)
	if err != nil {
		logging.ReadFailure(ctx, models.EndpointImageHistory, err).Msg("History fetch failed, showing no data")
		entries = nil
	}

	p.mu.Lock()
	p.entries = entries
	f := p.filter
	p.mu.Unlock()
	return Render(entries, f)
}

// LoadClassifications fetches the classification history, with the same
// failure policy as Load.
func (p *Panel) LoadClassifications(ctx context.Context) []ClassificationCard {
	entries, err := p.src.Classifications(ctx)
	if err != nil {
		logging.ReadFailure(ctx, models.EndpointClassificationHistory, err).Msg("Classification history fetch failed, showing no data")
		entries = nil
	}

	p.mu.Lock()
	p.classifications = entries
	p.mu.Unlock()
	return RenderClassifications(entries)
}

// Delete removes an entry on the server and then re-fetches the whole
// list. When the delete fails the current list is returned unchanged
// together with the error, which callers surface as an alert.
func (p *Panel) Delete(ctx context.Context, id string) (Rendered, error) {
	if err := p.src.DeleteImage(ctx, id); err != nil {
		logging.WriteFailure(ctx, "delete_image", err).Str("id", id).Msg("Delete history entry failed")
		return p.View(), err
	}
	logging.Ctx(ctx).Info().Str("id", id).Msg("History entry deleted")
	return p.Load(ctx), nil
}

// SetFilter replaces the filter and re-renders the cached entries.
func (p *Panel) SetFilter(f Filter) Rendered {
	p.mu.Lock()
	p.filter = f
	entries := p.entries
	p.mu.Unlock()
	return Render(entries, f)
}

// View renders the cached entries with the current filter.
func (p *Panel) View() Rendered {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Render(p.entries, p.filter)
}

// ClassificationView renders the cached classifications.
func (p *Panel) ClassificationView() []ClassificationCard {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return RenderClassifications(p.classifications)
}
