// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package views

import (
	"sort"
	"time"

	"github.com/tomtom215/cubesat-console/internal/models"
)

var seriesPalette = []string{
	"rgba(75, 192, 192, 1)",
	"rgba(255, 99, 132, 1)",
	"rgba(54, 162, 235, 1)",
	"rgba(255, 206, 86, 1)",
	"rgba(153, 102, 255, 1)",
	"rgba(255, 159, 64, 1)",
}

// Point is one chart sample.
type Point struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// Series is one satellite's line.
type Series struct {
	Label       string  `json:"label"`
	Data        []Point `json:"data"`
	BorderColor string  `json:"borderColor"`
	Fill        bool    `json:"fill"`
}

// Chart is a time-series line chart.
type Chart struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	XLabel   string   `json:"xLabel"`
	YLabel   string   `json:"yLabel"`
	Datasets []Series `json:"datasets"`
}

// ChartSet holds the altitude and velocity charts.
type ChartSet struct {
	Altitude Chart `json:"altitude"`
	Velocity Chart `json:"velocity"`
}

// ChartView builds chart configurations.
type ChartView struct{}

// NewChartView creates a ChartView.
func NewChartView() *ChartView {
	return &ChartView{}
}

// Build returns altitude-vs-time and velocity-vs-time charts with one
// series per satellite. Records without a timestamp are left out of both;
// records without a velocity are left out of the velocity chart.
func (ChartView) Build(positions []models.PositionRecord) ChartSet {
	altitude := make(map[string][]Point)
	velocity := make(map[string][]Point)
	var order []string

	for _, p := range positions {
		if p.Timestamp == nil {
			continue
		}
		if _, seen := altitude[p.Satellite]; !seen {
			order = append(order, p.Satellite)
		}
		altitude[p.Satellite] = append(altitude[p.Satellite], Point{X: *p.Timestamp, Y: p.Alt})
		if p.Velocity != nil {
			velocity[p.Satellite] = append(velocity[p.Satellite], Point{X: *p.Timestamp, Y: *p.Velocity})
		}
	}

	return ChartSet{
		Altitude: Chart{Type: "line", Title: "Altitude", XLabel: "Time", YLabel: "Altitude (km)", Datasets: series(order, altitude)},
		Velocity: Chart{Type: "line", Title: "Velocity", XLabel: "Time", YLabel: "Velocity (km/s)", Datasets: series(order, velocity)},
	}
}

func series(order []string, points map[string][]Point) []Series {
	out := make([]Series, 0, len(order))
	for i, name := range order {
		data := points[name]
		if len(data) == 0 {
			continue
		}
		sort.SliceStable(data, func(a, b int) bool { return data[a].X.Before(data[b].X) })
		out = append(out, Series{
			Label:       name,
			Data:        data,
			BorderColor: seriesPalette[i%len(seriesPalette)],
		})
	}
	return out
}
