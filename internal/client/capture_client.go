// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package client

import (
	"context"
	"io"
	"net/http"
	"path/filepath"

	"github.com/tomtom215/cubesat-console/internal/models"
	"github.com/tomtom215/cubesat-console/internal/validation"
)

// UploadField is the multipart field name for image uploads.
const UploadField = "image_file"

// CaptureClient sends capture, classify, upload and store requests. The
// capture/classify state machine lives in the capture package.
type CaptureClient struct {
	doer Doer
}

// NewCaptureClient creates a CaptureClient.
func NewCaptureClient(doer Doer) *CaptureClient {
	return &CaptureClient{doer: doer}
}

// RequestCapture asks the API for imagery at a coordinate. Coordinates out
// of range fail with *ValidationError before any network call.
func (c *CaptureClient) RequestCapture(ctx context.Context, req models.CaptureRequest) (models.CaptureResult, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return models.CaptureResult{}, err
	}
	data, err := c.doer.Do(ctx, Request{Method: http.MethodPost, Path: models.EndpointCapture, Body: req})
	if err != nil {
		return models.CaptureResult{}, err
	}
	return models.DecodeCaptureResult(data)
}

// RequestClassification asks the API to classify a server-relative image path.
func (c *CaptureClient) RequestClassification(ctx context.Context, imagePath string) (models.ClassificationResult, error) {
	body := map[string]string{"image_url": imagePath}
	data, err := c.doer.Do(ctx, Request{Method: http.MethodPost, Path: models.EndpointClassify, Body: body})
	if err != nil {
		return models.ClassificationResult{}, err
	}
	return models.DecodeClassification(data)
}

// UploadImage uploads a local image file and returns its URL. Only png,
// jpg, jpeg and gif names are accepted.
func (c *CaptureClient) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	name := filepath.Base(filename)
	if !validation.HasImageExtension(name) {
		return "", validation.NewRequestValidationError(UploadField, "imageext", UploadField+" must be a png, jpg, jpeg or gif image", name)
	}
	data, err := c.doer.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   models.EndpointUpload,
		Upload: &Upload{Field: UploadField, Filename: name, Content: content},
	})
	if err != nil {
		return "", err
	}
	return models.DecodeUpload(data)
}

// StoreImage records a captured image in the server-side history.
func (c *CaptureClient) StoreImage(ctx context.Context, rec models.ImageRecord) error {
	if err := validation.ValidateStruct(&rec); err != nil {
		return err
	}
	data, err := c.doer.Do(ctx, Request{Method: http.MethodPost, Path: models.EndpointStore, Body: rec})
	if err != nil {
		return err
	}
	return models.DecodeAck(models.EndpointStore, data)
}
