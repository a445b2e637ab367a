// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package views turns fetched position, orbit and history data into
// configuration documents for the globe, chart and heatmap widgets.
// Bindings are one way: user interaction with a widget comes back only as
// coordinates for the capture workflow.
package views

import "math"

// WGS84 ellipsoid.
const (
	wgs84A  = 6378137.0
	wgs84F  = 1 / 298.257223563
	wgs84E2 = wgs84F * (2 - wgs84F)
)

// Cartesian3 is an Earth-fixed position in meters.
type Cartesian3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Cartesian3FromDegrees converts geodetic longitude and latitude (degrees)
// and height above the ellipsoid (meters) to Earth-fixed coordinates.
func Cartesian3FromDegrees(lon, lat, height float64) Cartesian3 {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)
	sinLambda, cosLambda := math.Sincos(lambda)

	n := wgs84A / math.Sqrt(1-wgs84E2*sinPhi*sinPhi)
	return Cartesian3{
		X: (n + height) * cosPhi * cosLambda,
		Y: (n + height) * cosPhi * sinLambda,
		Z: (n*(1-wgs84E2) + height) * sinPhi,
	}
}

// Magnitude returns the distance from the Earth's center.
func (c Cartesian3) Magnitude() float64 {
	return math.Sqrt(c.X*c.X + c.Y*c.Y + c.Z*c.Z)
}

// wrapLongitude maps a longitude in degrees into [-180, 180).
func wrapLongitude(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// validCoordinate reports whether lat and lon are finite and in range.
func validCoordinate(lat, lon float64) bool {
	return !math.IsNaN(lat) && !math.IsNaN(lon) &&
		lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
