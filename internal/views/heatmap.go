// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package views

import (
	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/models"
)

const tileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`

// HeatmapLayer is the tile map plus heat layer configuration.
type HeatmapLayer struct {
	Points      [][3]float64 `json:"points"`
	Radius      int          `json:"radius"`
	Center      [2]float64   `json:"center"`
	Zoom        int          `json:"zoom"`
	TileURL     string       `json:"tileUrl"`
	Attribution string       `json:"attribution"`
}

// HeatmapView builds heat layers.
type HeatmapView struct {
	cfg config.ViewsConfig
}

// NewHeatmapView creates a HeatmapView.
func NewHeatmapView(cfg config.ViewsConfig) *HeatmapView {
	return &HeatmapView{cfg: cfg}
}

// Build returns one [lat, lon, intensity] point per valid position.
func (h *HeatmapView) Build(positions []models.PositionRecord) HeatmapLayer {
	layer := HeatmapLayer{
		Points:      make([][3]float64, 0, len(positions)),
		Radius:      h.cfg.HeatRadius,
		Zoom:        2,
		TileURL:     h.cfg.TileURL,
		Attribution: tileAttribution,
	}
	for _, p := range positions {
		if validCoordinate(p.Lat, p.Lon) {
			layer.Points = append(layer.Points, [3]float64{p.Lat, p.Lon, h.cfg.HeatIntensity})
		}
	}
	return layer
}
