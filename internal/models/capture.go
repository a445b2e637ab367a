// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package models

import (
	"sort"

	"github.com/goccy/go-json"
)

const (
	EndpointCapture  = "/capture_image"
	EndpointClassify = "/classify_image"
	EndpointUpload   = "/upload_image"
	EndpointStore    = "/store_image"
)

// Product names returned by a capture.
const (
	ProductRGB    = "rgb_url"
	ProductRawRGB = "raw_rgb_url"
	ProductNDVI   = "ndvi_url"
	ProductEVI    = "evi_url"
	ProductSAVI   = "savi_url"
	ProductGCI    = "gci_url"
)

// CaptureRequest is the body of a capture call.
type CaptureRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Dataset   string  `json:"dataset"`
}

// CaptureResult maps product name to image URL for one capture.
type CaptureResult struct {
	Products map[string]string `json:"products"`
}

// RawRGB returns the raw RGB image URL: rgb_url, then raw_rgb_url, then the
// legacy image_url key.
func (c CaptureResult) RawRGB() (string, bool) {
	for _, key := range []string{ProductRGB, ProductRawRGB, "image_url"} {
		if u := c.Products[key]; u != "" {
			return u, true
		}
	}
	return "", false
}

// Names returns the product names in sorted order.
func (c CaptureResult) Names() []string {
	names := make([]string, 0, len(c.Products))
	for name := range c.Products {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecodeCaptureResult decodes a capture payload. Non-string values are
// ignored; a result with no raw RGB URL is a decode error.
func DecodeCaptureResult(data []byte) (CaptureResult, error) {
	if err := upstreamError(EndpointCapture, data); err != nil {
		return CaptureResult{}, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return CaptureResult{}, &DecodeError{Endpoint: EndpointCapture, Err: err}
	}

	result := CaptureResult{Products: make(map[string]string, len(fields))}
	for name, raw := range fields {
		if u, ok := text(raw); ok && u != "" {
			result.Products[name] = u
		}
	}
	if _, ok := result.RawRGB(); !ok {
		return CaptureResult{}, &DecodeError{Endpoint: EndpointCapture, Err: errMissing("rgb_url")}
	}
	return result, nil
}

// ClassificationResult maps class name to percentage. Percentages are as
// reported and are not normalized.
type ClassificationResult struct {
	Percentages map[string]float64 `json:"classification_percentages"`
}

// ClassShare is one class and its percentage.
type ClassShare struct {
	Class      string  `json:"class"`
	Percentage float64 `json:"percentage"`
}

// Sorted returns classes by descending percentage, ties by name.
func (c ClassificationResult) Sorted() []ClassShare {
	shares := make([]ClassShare, 0, len(c.Percentages))
	for class, pct := range c.Percentages {
		shares = append(shares, ClassShare{Class: class, Percentage: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percentage != shares[j].Percentage {
			return shares[i].Percentage > shares[j].Percentage
		}
		return shares[i].Class < shares[j].Class
	})
	return shares
}

// Total returns the sum of all percentages.
func (c ClassificationResult) Total() float64 {
	var total float64
	for _, pct := range c.Percentages {
		total += pct
	}
	return total
}

// DecodeClassification decodes a classify payload. The single-label form
// {classification, confidence} becomes a one-entry map.
func DecodeClassification(data []byte) (ClassificationResult, error) {
	if err := upstreamError(EndpointClassify, data); err != nil {
		return ClassificationResult{}, err
	}
	var body struct {
		Percentages    map[string]json.RawMessage `json:"classification_percentages"`
		Classification json.RawMessage            `json:"classification"`
		Confidence     json.RawMessage            `json:"confidence"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ClassificationResult{}, &DecodeError{Endpoint: EndpointClassify, Err: err}
	}

	result := ClassificationResult{Percentages: make(map[string]float64)}
	if body.Percentages != nil {
		for class, raw := range body.Percentages {
			if pct, ok := number(raw); ok {
				result.Percentages[class] = pct
			}
		}
		return result, nil
	}

	label, okLabel := text(body.Classification)
	conf, okConf := number(body.Confidence)
	if !okLabel || !okConf {
		return ClassificationResult{}, &DecodeError{Endpoint: EndpointClassify, Err: errMissing("classification_percentages")}
	}
	result.Percentages[label] = conf
	return result, nil
}

// ImageRecord is the body of a store_image call.
type ImageRecord struct {
	ImageURL  string  `json:"imageUrl" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// DecodeUpload returns the image URL of an upload payload.
func DecodeUpload(data []byte) (string, error) {
	if err := upstreamError(EndpointUpload, data); err != nil {
		return "", err
	}
	var body struct {
		ImageURL json.RawMessage `json:"image_url"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", &DecodeError{Endpoint: EndpointUpload, Err: err}
	}
	u, ok := text(body.ImageURL)
	if !ok || u == "" {
		return "", &DecodeError{Endpoint: EndpointUpload, Err: errMissing("image_url")}
	}
	return u, nil
}

type missingFieldError string

func (e missingFieldError) Error() string {
	return "missing field " + string(e)
}

func errMissing(field string) error {
	return missingFieldError(field)
}
