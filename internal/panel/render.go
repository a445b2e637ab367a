// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package panel renders the capture and classification history panels.
//
// Render is a pure function of the full entry list and a filter. The
// filter matches coordinate substrings of the decimal form of each
// coordinate, so a latitude filter of "12" matches 12.345 and 112.5 but
// not 21.0.
package panel

import (
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cubesat-console/internal/models"
)

// Filter holds optional latitude and longitude substrings.
type Filter struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Empty reports whether the filter matches everything.
func (f Filter) Empty() bool {
	return strings.TrimSpace(f.Lat) == "" && strings.TrimSpace(f.Lon) == ""
}

// Match reports whether e passes the filter.
func (f Filter) Match(e models.HistoryEntry) bool {
	return matches(FormatCoordinate(e.Latitude), f.Lat) && matches(FormatCoordinate(e.Longitude), f.Lon)
}

func matches(value, sub string) bool {
	sub = strings.TrimSpace(sub)
	return sub == "" || strings.Contains(value, sub)
}

// FormatCoordinate returns the shortest decimal form of v.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Card is one rendered capture.
type Card struct {
	ID             string `json:"id"`
	ImageURL       string `json:"image_url"`
	Latitude       string `json:"latitude"`
	Longitude      string `json:"longitude"`
	Timestamp      string `json:"timestamp,omitempty"`
	Classification string `json:"classification,omitempty"`
	Confidence     string `json:"confidence,omitempty"`
}

// Rendered is the capture panel contents.
type Rendered struct {
	Cards  []Card `json:"cards"`
	Shown  int    `json:"shown"`
	Total  int    `json:"total"`
	Filter Filter `json:"filter"`
}

// IDs returns the IDs of the rendered cards in display order.
func (r Rendered) IDs() []string {
	ids := make([]string, len(r.Cards))
	for i, c := range r.Cards {
		ids[i] = c.ID
	}
	return ids
}

// Render builds the capture panel from entries in server order.
func Render(entries []models.HistoryEntry, f Filter) Rendered {
	r := Rendered{Cards: make([]Card, 0, len(entries)), Total: len(entries), Filter: f}
	for _, e := range entries {
		if !f.Match(e) {
			continue
		}
		r.Cards = append(r.Cards, card(e))
	}
	r.Shown = len(r.Cards)
	return r
}

func card(e models.HistoryEntry) Card {
	c := Card{
		ID:             e.ID,
		ImageURL:       e.ImageURL,
		Latitude:       FormatCoordinate(e.Latitude),
		Longitude:      FormatCoordinate(e.Longitude),
		Classification: e.Classification,
	}
	if e.Timestamp != nil {
		c.Timestamp = e.Timestamp.UTC().Format(time.DateTime)
	}
	if e.Confidence != nil {
		c.Confidence = formatConfidence(*e.Confidence)
	}
	return c
}

// ClassificationCard is one rendered classification.
type ClassificationCard struct {
	ID             string `json:"id"`
	ImageURL       string `json:"image_url"`
	Classification string `json:"classification"`
	Confidence     string `json:"confidence"`
}

// RenderClassifications builds the classification panel.
func RenderClassifications(entries []models.ClassificationEntry) []ClassificationCard {
	cards := make([]ClassificationCard, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, ClassificationCard{
			ID:             e.ID,
			ImageURL:       e.ImageURL,
			Classification: e.Classification,
			Confidence:     formatConfidence(e.Confidence),
		})
	}
	return cards
}

// formatConfidence renders a 0..1 confidence as a percentage. Values above
// 1 are taken to be percentages already.
func formatConfidence(v float64) string {
	if v <= 1 {
		v *= 100
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}
