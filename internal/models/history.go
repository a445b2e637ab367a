// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package models

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const (
	EndpointImageHistory          = "/image_history"
	EndpointClassificationHistory = "/classification_history"
	EndpointDeleteImage           = "/delete_image"
)

// HistoryEntry is a stored capture. Classification and Confidence are set
// only when the server attached a label to the capture.
type HistoryEntry struct {
	ID             string     `json:"id"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	ImageURL       string     `json:"image_url"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
	Classification string     `json:"classification,omitempty"`
	Confidence     *float64   `json:"confidence,omitempty"`
}

// ClassificationEntry is a stored classification.
type ClassificationEntry struct {
	ID             string  `json:"id"`
	ImageURL       string  `json:"image_url"`
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
}

type rawHistory struct {
	ID             json.RawMessage `json:"id"`
	Latitude       json.RawMessage `json:"latitude"`
	Longitude      json.RawMessage `json:"longitude"`
	ImageURL       json.RawMessage `json:"image_url"`
	Timestamp      json.RawMessage `json:"timestamp"`
	Classification json.RawMessage `json:"classification"`
	Confidence     json.RawMessage `json:"confidence"`
}

// identifier accepts string or integer IDs.
func identifier(raw json.RawMessage) (string, bool) {
	if s, ok := text(raw); ok && s != "" {
		return s, true
	}
	if v, ok := number(raw); ok && v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10), true
	}
	return "", false
}

// DecodeImageHistory decodes the image history payload, skipping entries
// without an ID, image URL or valid coordinates.
func DecodeImageHistory(data []byte) ([]HistoryEntry, int, error) {
	items, err := decodeArray(EndpointImageHistory, data)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]HistoryEntry, 0, len(items))
	skipped := 0
	for _, item := range items {
		var raw rawHistory
		if json.Unmarshal(item, &raw) != nil {
			skipped++
			continue
		}
		id, okID := identifier(raw.ID)
		url, okURL := text(raw.ImageURL)
		lat, okLat := number(raw.Latitude)
		lon, okLon := number(raw.Longitude)
		if !okID || !okURL || url == "" || !okLat || !okLon ||
			lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			skipped++
			continue
		}

		entry := HistoryEntry{ID: id, Latitude: lat, Longitude: lon, ImageURL: url}
		if ts, ok := ParseTimestamp(raw.Timestamp); ok {
			entry.Timestamp = &ts
		}
		if label, ok := text(raw.Classification); ok && label != "" {
			entry.Classification = label
			if conf, ok := number(raw.Confidence); ok {
				entry.Confidence = &conf
			}
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

// DecodeClassificationHistory decodes the classification history payload.
func DecodeClassificationHistory(data []byte) ([]ClassificationEntry, int, error) {
	items, err := decodeArray(EndpointClassificationHistory, data)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]ClassificationEntry, 0, len(items))
	skipped := 0
	for _, item := range items {
		var raw rawHistory
		if json.Unmarshal(item, &raw) != nil {
			skipped++
			continue
		}
		id, okID := identifier(raw.ID)
		url, okURL := text(raw.ImageURL)
		label, okLabel := text(raw.Classification)
		conf, okConf := number(raw.Confidence)
		if !okID || !okURL || !okLabel || !okConf {
			skipped++
			continue
		}
		entries = append(entries, ClassificationEntry{ID: id, ImageURL: url, Classification: label, Confidence: conf})
	}
	return entries, skipped, nil
}

// DecodeAck checks the payload of a write call (delete, store). An
// {"error"} body fails even with a success status.
func DecodeAck(endpoint string, data []byte) error {
	return upstreamError(endpoint, data)
}
