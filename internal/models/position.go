// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package models

import (
	"math"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

const (
	EndpointPositions = "/cubesat_positions"
	EndpointOrbits    = "/cubesat_orbits"
)

// PositionRecord is one satellite sample.
type PositionRecord struct {
	Satellite string     `json:"satellite"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Alt       float64    `json:"alt"`                // kilometers
	Velocity  *float64   `json:"velocity,omitempty"` // km/s
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Line1     string     `json:"line1,omitempty"`
	Line2     string     `json:"line2,omitempty"`
}

// HasTLE reports whether the record carries both TLE lines.
func (p PositionRecord) HasTLE() bool {
	return p.Line1 != "" && p.Line2 != ""
}

// OrbitRecord is a time-ordered track for one satellite.
type OrbitRecord struct {
	Satellite string           `json:"satellite"`
	Samples   []PositionRecord `json:"samples"`
}

type rawPosition struct {
	Satellite json.RawMessage `json:"satellite"`
	Name      json.RawMessage `json:"name"`
	Lat       json.RawMessage `json:"lat"`
	Latitude  json.RawMessage `json:"latitude"`
	Lon       json.RawMessage `json:"lon"`
	Longitude json.RawMessage `json:"longitude"`
	Alt       json.RawMessage `json:"alt"`
	Altitude  json.RawMessage `json:"altitude"`
	Velocity  json.RawMessage `json:"velocity"`
	Timestamp json.RawMessage `json:"timestamp"`
	Time      json.RawMessage `json:"time"`
	Line1     json.RawMessage `json:"line1"`
	Line2     json.RawMessage `json:"line2"`

	Samples   json.RawMessage `json:"samples"`
	Positions json.RawMessage `json:"positions"`
	Track     json.RawMessage `json:"track"`
}

func first(a, b json.RawMessage) json.RawMessage {
	if len(a) > 0 && string(a) != "null" {
		return a
	}
	return b
}

// position validates one raw sample. name is used when the sample carries none.
func (r *rawPosition) position(name string) (PositionRecord, bool) {
	if s, ok := text(first(r.Satellite, r.Name)); ok && s != "" {
		name = s
	}
	if name == "" {
		return PositionRecord{}, false
	}

	lat, okLat := number(first(r.Lat, r.Latitude))
	lon, okLon := number(first(r.Lon, r.Longitude))
	alt, okAlt := number(first(r.Alt, r.Altitude))
	if !okLat || !okLon || !okAlt {
		return PositionRecord{}, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return PositionRecord{}, false
	}

	rec := PositionRecord{Satellite: name, Lat: lat, Lon: lon, Alt: alt}
	if v, ok := velocity(r.Velocity); ok {
		rec.Velocity = &v
	}
	if ts, ok := ParseTimestamp(first(r.Timestamp, r.Time)); ok {
		rec.Timestamp = &ts
	}
	rec.Line1, _ = text(r.Line1)
	rec.Line2, _ = text(r.Line2)
	return rec, true
}

// velocity accepts a scalar speed or an {x, y, z} vector (magnitude).
func velocity(raw json.RawMessage) (float64, bool) {
	if v, ok := number(raw); ok {
		return v, true
	}
	var vec struct {
		X, Y, Z json.RawMessage
	}
	if len(raw) == 0 || json.Unmarshal(raw, &vec) != nil {
		return 0, false
	}
	x, okX := number(vec.X)
	y, okY := number(vec.Y)
	z, okZ := number(vec.Z)
	if !okX || !okY || !okZ {
		return 0, false
	}
	return math.Sqrt(x*x + y*y + z*z), true
}

// DecodePositions decodes the positions payload. Records with a missing name,
// missing or non-numeric coordinates, or out-of-range coordinates are
// skipped and counted.
func DecodePositions(data []byte) ([]PositionRecord, int, error) {
	items, err := decodeArray(EndpointPositions, data)
	if err != nil {
		return nil, 0, err
	}

	records := make([]PositionRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		var raw rawPosition
		if json.Unmarshal(item, &raw) != nil {
			skipped++
			continue
		}
		rec, ok := raw.position("")
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// DecodeOrbits decodes the orbits payload. Both {"orbit": [...]} and a bare
// array are accepted. Elements may be tracks ({satellite, samples}) or flat
// samples carrying a satellite name, which are grouped per satellite in
// order of first appearance. Samples without a parseable timestamp are
// dropped, samples are sorted by time, and tracks left empty are omitted.
// The returned count is the number of dropped samples and elements.
func DecodeOrbits(data []byte) ([]OrbitRecord, int, error) {
	if err := upstreamError(EndpointOrbits, data); err != nil {
		return nil, 0, err
	}

	var wrapped struct {
		Orbit  json.RawMessage `json:"orbit"`
		Orbits json.RawMessage `json:"orbits"`
	}
	payload := data
	if json.Unmarshal(data, &wrapped) == nil {
		if inner := first(wrapped.Orbit, wrapped.Orbits); len(inner) > 0 {
			payload = inner
		}
	}

	items, err := decodeArray(EndpointOrbits, payload)
	if err != nil {
		return nil, 0, err
	}

	var (
		order   []string
		tracks  = make(map[string][]PositionRecord)
		skipped int
	)
	add := func(name string, rec PositionRecord) {
		if _, seen := tracks[name]; !seen {
			order = append(order, name)
		}
		tracks[name] = append(tracks[name], rec)
	}

	for _, item := range items {
		var raw rawPosition
		if json.Unmarshal(item, &raw) != nil {
			skipped++
			continue
		}

		name, _ := text(first(raw.Satellite, raw.Name))
		samples := first(first(raw.Samples, raw.Positions), raw.Track)
		if len(samples) == 0 {
			rec, ok := raw.position("")
			if !ok || rec.Timestamp == nil {
				skipped++
				continue
			}
			add(rec.Satellite, rec)
			continue
		}

		var sampleItems []json.RawMessage
		if name == "" || json.Unmarshal(samples, &sampleItems) != nil {
			skipped++
			continue
		}
		if _, seen := tracks[name]; !seen {
			order = append(order, name)
			tracks[name] = nil
		}
		for _, s := range sampleItems {
			var rs rawPosition
			if json.Unmarshal(s, &rs) != nil {
				skipped++
				continue
			}
			rec, ok := rs.position(name)
			if !ok || rec.Timestamp == nil {
				skipped++
				continue
			}
			rec.Satellite = name
			tracks[name] = append(tracks[name], rec)
		}
	}

	orbits := make([]OrbitRecord, 0, len(order))
	for _, name := range order {
		samples := tracks[name]
		if len(samples) == 0 {
			continue
		}
		sort.SliceStable(samples, func(i, j int) bool {
			return samples[i].Timestamp.Before(*samples[j].Timestamp)
		})
		orbits = append(orbits, OrbitRecord{Satellite: name, Samples: samples})
	}
	return orbits, skipped, nil
}
