// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package views

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/models"
)

// Widget colors, by globe widget color name.
const (
	ColorRed    = "RED"
	ColorWhite  = "WHITE"
	ColorBlue   = "BLUE"
	ColorYellow = "YELLOW"
	ColorCyan   = "CYAN"
)

// Polyline kinds.
const (
	TrackReported  = "reported"
	TrackPredicted = "predicted"
)

// Geodetic is a latitude/longitude in degrees and a height in meters.
type Geodetic struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    float64 `json:"height"`
}

// PointGraphics styles a satellite marker.
type PointGraphics struct {
	PixelSize int    `json:"pixelSize"`
	Color     string `json:"color"`
}

// LabelGraphics styles a marker label.
type LabelGraphics struct {
	Text           string `json:"text"`
	Font           string `json:"font"`
	FillColor      string `json:"fillColor"`
	ShowBackground bool   `json:"showBackground"`
	PixelOffset    [2]int `json:"pixelOffset"`
}

// PathGraphics styles the trailing path drawn behind a moving entity.
type PathGraphics struct {
	TrailTime  float64 `json:"trailTime"`
	LeadTime   float64 `json:"leadTime"`
	Width      float64 `json:"width"`
	Resolution float64 `json:"resolution"`
	GlowPower  float64 `json:"glowPower"`
	Color      string  `json:"color"`
}

// Entity is one satellite marker.
type Entity struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Position    Cartesian3    `json:"position"`
	Geodetic    Geodetic      `json:"geodetic"`
	Time        *time.Time    `json:"time,omitempty"`
	Point       PointGraphics `json:"point"`
	Label       LabelGraphics `json:"label"`
	Path        PathGraphics  `json:"path"`
	Description string        `json:"description"`
}

// Polyline is an orbit track drawn as a line.
type Polyline struct {
	ID        string       `json:"id"`
	Satellite string       `json:"satellite"`
	Kind      string       `json:"kind"`
	Positions []Cartesian3 `json:"positions"`
	Width     float64      `json:"width"`
	Color     string       `json:"color"`
}

// GlobeScene is the full globe widget configuration.
type GlobeScene struct {
	Entities    []Entity   `json:"entities"`
	Polylines   []Polyline `json:"polylines"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// GlobeView builds globe scenes.
type GlobeView struct {
	cfg config.ViewsConfig
	now func() time.Time
}

// NewGlobeView creates a GlobeView.
func NewGlobeView(cfg config.ViewsConfig) *GlobeView {
	return &GlobeView{cfg: cfg, now: time.Now}
}

// Build returns one entity per valid position and one polyline per orbit
// track with at least two samples. Positions carrying TLE lines also get a
// predicted track when a track horizon is configured.
func (g *GlobeView) Build(positions []models.PositionRecord, orbits []models.OrbitRecord) GlobeScene {
	now := g.now()
	scene := GlobeScene{
		Entities:    make([]Entity, 0, len(positions)),
		Polylines:   make([]Polyline, 0, len(orbits)),
		GeneratedAt: now,
	}

	ids := make(map[string]int)
	for _, p := range positions {
		if !validCoordinate(p.Lat, p.Lon) {
			continue
		}
		id := uniqueID(ids, p.Satellite)
		scene.Entities = append(scene.Entities, g.entity(id, p))

		if g.cfg.TrackHorizon > 0 && p.HasTLE() {
			if line := g.predicted(id, p, now); line != nil {
				scene.Polylines = append(scene.Polylines, *line)
			}
		}
	}

	for _, o := range orbits {
		line := Polyline{
			ID:        "orbit-" + o.Satellite,
			Satellite: o.Satellite,
			Kind:      TrackReported,
			Width:     2,
			Color:     ColorYellow,
		}
		for _, s := range o.Samples {
			if validCoordinate(s.Lat, s.Lon) {
				line.Positions = append(line.Positions, Cartesian3FromDegrees(s.Lon, s.Lat, s.Alt*1000))
			}
		}
		if len(line.Positions) >= 2 {
			scene.Polylines = append(scene.Polylines, line)
		}
	}
	return scene
}

func (g *GlobeView) entity(id string, p models.PositionRecord) Entity {
	height := p.Alt * 1000
	return Entity{
		ID:       id,
		Name:     p.Satellite,
		Position: Cartesian3FromDegrees(p.Lon, p.Lat, height),
		Geodetic: Geodetic{Latitude: p.Lat, Longitude: p.Lon, Height: height},
		Time:     p.Timestamp,
		Point:    PointGraphics{PixelSize: g.cfg.MarkerPixelSize, Color: ColorRed},
		Label: LabelGraphics{
			Text:           p.Satellite,
			Font:           "14px sans-serif",
			FillColor:      ColorWhite,
			ShowBackground: true,
			PixelOffset:    [2]int{0, -20},
		},
		Path: PathGraphics{
			TrailTime:  g.cfg.TrailTime.Seconds(),
			Width:      2,
			Resolution: 120,
			GlowPower:  0.16,
			Color:      ColorBlue,
		},
		Description: describe(p),
	}
}

func (g *GlobeView) predicted(id string, p models.PositionRecord, now time.Time) *Polyline {
	start := now
	if p.Timestamp != nil {
		start = *p.Timestamp
	}
	points, err := PredictTrack(p.Line1, p.Line2, start, g.cfg.TrackHorizon, g.cfg.TrackStep)
	if err != nil {
		logging.Warn().Err(err).Str("satellite", p.Satellite).Msg("Predicted track skipped")
		return nil
	}
	if len(points) < 2 {
		return nil
	}
	line := &Polyline{
		ID:        "predicted-" + id,
		Satellite: p.Satellite,
		Kind:      TrackPredicted,
		Positions: make([]Cartesian3, 0, len(points)),
		Width:     1,
		Color:     ColorCyan,
	}
	for _, pt := range points {
		line.Positions = append(line.Positions, Cartesian3FromDegrees(pt.Longitude, pt.Latitude, pt.AltitudeK*1000))
	}
	return line
}

// describe renders the info box table for a marker.
func describe(p models.PositionRecord) string {
	rows := [][2]string{
		{"Latitude", strconv.FormatFloat(p.Lat, 'f', 6, 64)},
		{"Longitude", strconv.FormatFloat(p.Lon, 'f', 6, 64)},
		{"Altitude (km)", strconv.FormatFloat(p.Alt, 'f', 2, 64)},
	}
	if p.Velocity != nil {
		rows = append(rows, [2]string{"Velocity (km/s)", strconv.FormatFloat(*p.Velocity, 'f', 3, 64)})
	}
	if p.Timestamp != nil {
		rows = append(rows, [2]string{"Timestamp", p.Timestamp.UTC().Format(time.RFC3339)})
	}

	var b strings.Builder
	b.WriteString(`<table class="cesium-infoBox-defaultTable"><tbody>`)
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><th>%s</th><td>%s</td></tr>", html.EscapeString(r[0]), html.EscapeString(r[1]))
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// uniqueID returns name, suffixed with a counter when name was seen before.
func uniqueID(seen map[string]int, name string) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		return name + "#" + strconv.Itoa(n)
	}
	return name
}
