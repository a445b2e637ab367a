// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package views

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// ErrInvalidTLE is returned for element sets that fail the format checks.
var ErrInvalidTLE = errors.New("views: invalid TLE")

const tleLineLength = 69

// TrackPoint is one propagated sample.
type TrackPoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	AltitudeK float64   `json:"altitude_km"`
	Time      time.Time `json:"time"`
}

// ValidTLE checks line numbers, length and the modulo-10 checksum of both lines.
func ValidTLE(line1, line2 string) bool {
	line1 = strings.TrimRight(line1, " \r\n")
	line2 = strings.TrimRight(line2, " \r\n")
	return tleLineOK(line1, '1') && tleLineOK(line2, '2')
}

func tleLineOK(line string, number byte) bool {
	if len(line) < tleLineLength || line[0] != number || line[1] != ' ' {
		return false
	}
	sum := 0
	for i := 0; i < tleLineLength-1; i++ {
		switch c := line[i]; {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	check := line[tleLineLength-1]
	return check >= '0' && check <= '9' && sum%10 == int(check-'0')
}

// PredictTrack propagates a TLE with SGP4 from start over horizon, one
// sample per step. Samples where propagation diverges are dropped.
func PredictTrack(line1, line2 string, start time.Time, horizon, step time.Duration) (points []TrackPoint, err error) {
	if !ValidTLE(line1, line2) {
		return nil, ErrInvalidTLE
	}
	if horizon <= 0 || step <= 0 {
		return nil, nil
	}

	// The element set parser panics on malformed numeric fields.
	defer func() {
		if r := recover(); r != nil {
			points, err = nil, fmt.Errorf("%w: %v", ErrInvalidTLE, r)
		}
	}()

	sat := satellite.TLEToSat(strings.TrimSpace(line1), strings.TrimSpace(line2), satellite.GravityWGS72)

	start = start.UTC()
	points = make([]TrackPoint, 0, int(horizon/step)+1)
	for offset := time.Duration(0); offset <= horizon; offset += step {
		at := start.Add(offset)
		year, month, day := at.Date()
		hour, minute, sec := at.Clock()

		posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, minute, sec)
		gmst := satellite.ThetaG_JD(satellite.JDay(year, int(month), day, hour, minute, sec))
		altitude, _, rad := satellite.ECIToLLA(posECI, gmst)

		lat := rad.Latitude * 180 / math.Pi
		lon := wrapLongitude(rad.Longitude * 180 / math.Pi)
		if math.IsNaN(altitude) || math.IsInf(altitude, 0) || !validCoordinate(lat, lon) {
			continue
		}
		points = append(points, TrackPoint{Latitude: lat, Longitude: lon, AltitudeK: altitude, Time: at})
	}
	return points, nil
}
