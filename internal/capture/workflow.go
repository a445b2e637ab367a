// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package capture implements the capture and classify workflow.
//
// A capture cycle moves Idle -> Capturing -> Captured -> Classifying ->
// Classified. Failed is reachable from Capturing and Classifying. Only the
// raw RGB URL of a capture is kept, in a store.Slot, and classify reads it
// back from there.
//
// Captures are not queued. A second Capture issued while the first is in
// flight races it, and whichever response arrives last owns the slot.
package capture

import (
	"context"
	"io"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/metrics"
	"github.com/tomtom215/cubesat-console/internal/models"
	"github.com/tomtom215/cubesat-console/internal/store"
	"github.com/tomtom215/cubesat-console/internal/validation"
)

// State is a workflow state.
type State string

const (
	StateIdle        State = "idle"
	StateCapturing   State = "capturing"
	StateCaptured    State = "captured"
	StateClassifying State = "classifying"
	StateClassified  State = "classified"
	StateFailed      State = "failed"
)

// Operation names used in transitions and precondition errors.
const (
	OpCapture  = "capture"
	OpClassify = "classify"
	OpUpload   = "upload"
)

// API is the subset of the upstream capture client the workflow needs.
// *client.CaptureClient implements it.
type API interface {
	RequestCapture(ctx context.Context, req models.CaptureRequest) (models.CaptureResult, error)
	RequestClassification(ctx context.Context, imagePath string) (models.ClassificationResult, error)
	UploadImage(ctx context.Context, filename string, content io.Reader) (string, error)
	StoreImage(ctx context.Context, rec models.ImageRecord) error
}

// Transition describes one state change.
type Transition struct {
	Op   string    `json:"op"`
	From State     `json:"from"`
	To   State     `json:"to"`
	Err  string    `json:"error,omitempty"`
	At   time.Time `json:"at"`
}

// Listener is called after every transition, outside the workflow lock.
type Listener func(Transition)

// Snapshot is a copy of the workflow's visible state.
type Snapshot struct {
	State          State                        `json:"state"`
	Latitude       *float64                     `json:"latitude,omitempty"`
	Longitude      *float64                     `json:"longitude,omitempty"`
	Dataset        string                       `json:"dataset,omitempty"`
	Products       map[string]string            `json:"products,omitempty"`
	RawRGBURL      string                       `json:"raw_rgb_url,omitempty"`
	Classification *models.ClassificationResult `json:"classification,omitempty"`
	LastError      string                       `json:"last_error,omitempty"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

// Workflow runs capture cycles against an API and a Slot. It is safe for
// concurrent use.
type Workflow struct {
	api  API
	slot store.Slot
	cfg  config.CaptureConfig

	mu        sync.Mutex
	snap      Snapshot
	listeners []Listener
}

// NewWorkflow creates a Workflow in the Idle state.
func NewWorkflow(api API, slot store.Slot, cfg config.CaptureConfig) *Workflow {
	return &Workflow{
		api:  api,
		slot: slot,
		cfg:  cfg,
		snap: Snapshot{State: StateIdle, UpdatedAt: time.Now()},
	}
}

// OnTransition registers a listener.
func (w *Workflow) OnTransition(fn Listener) {
	w.mu.Lock()
	w.listeners = append(w.listeners, fn)
	w.mu.Unlock()
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap.State
}

// Snapshot returns a copy of the current state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := w.snap
	if snap.Products != nil {
		snap.Products = maps.Clone(snap.Products)
	}
	return snap
}

// StoredImage returns the URL in the slot, if any.
func (w *Workflow) StoredImage(ctx context.Context) (string, bool, error) {
	return w.slot.Get(ctx)
}

// Dataset returns the dataset a capture will use: requested when allowed,
// otherwise the configured default.
func (w *Workflow) Dataset(requested string) string {
	if requested != "" && slices.Contains(w.cfg.AllowedDatasets, requested) {
		return requested
	}
	return w.cfg.DefaultDataset
}

// Capture requests imagery at (lat, lon). Out-of-range coordinates fail
// with a validation error before any network call and leave the state
// alone. On success the raw RGB URL, with separators normalized, replaces
// the slot contents.
func (w *Workflow) Capture(ctx context.Context, lat, lon float64, dataset string) (models.CaptureResult, error) {
	ctx = withCorrelation(ctx)
	req := models.CaptureRequest{Latitude: lat, Longitude: lon, Dataset: w.Dataset(dataset)}
	if err := validation.ValidateStruct(&req); err != nil {
		logging.Ctx(ctx).Warn().Float64("latitude", lat).Float64("longitude", lon).Msg("Capture rejected")
		return models.CaptureResult{}, err
	}
	if dataset != "" && dataset != req.Dataset {
		logging.Ctx(ctx).Warn().Str("requested", dataset).Str("dataset", req.Dataset).Msg("Dataset not allowed, using default")
	}

	w.transition(OpCapture, StateCapturing, nil, func(s *Snapshot) {
		s.Latitude, s.Longitude, s.Dataset = &lat, &lon, req.Dataset
	})

	result, err := w.api.RequestCapture(ctx, req)
	if err != nil {
		return models.CaptureResult{}, w.fail(ctx, OpCapture, err)
	}

	rgb, _ := result.RawRGB()
	rgb = NormalizeSeparators(rgb)
	if err := w.persist(ctx, rgb); err != nil {
		return models.CaptureResult{}, w.fail(ctx, OpCapture, err)
	}

	w.transition(OpCapture, StateCaptured, nil, func(s *Snapshot) {
		s.Products = maps.Clone(result.Products)
		s.RawRGBURL = rgb
		s.Classification = nil
	})
	logging.Ctx(ctx).Info().Str("rgb_url", rgb).Strs("products", result.Names()).Msg("Capture complete")

	if w.cfg.StoreRecords {
		w.storeRecord(ctx, models.ImageRecord{ImageURL: rgb, Latitude: lat, Longitude: lon})
	}
	return result, nil
}

// Classify classifies imageURL, or the slot contents when imageURL is nil
// or empty. With nothing to classify it fails with *client.PreconditionError
// before any network call.
func (w *Workflow) Classify(ctx context.Context, imageURL *string) (models.ClassificationResult, error) {
	ctx = withCorrelation(ctx)

	var stored string
	if imageURL != nil && *imageURL != "" {
		stored = *imageURL
	} else {
		u, ok, err := w.slot.Get(ctx)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Read image slot failed")
			return models.ClassificationResult{}, err
		}
		if !ok {
			return models.ClassificationResult{}, &client.PreconditionError{Op: OpClassify, Reason: "no captured image to classify"}
		}
		stored = u
	}

	path := ServerRelativePath(stored)
	if path == "" {
		return models.ClassificationResult{}, &client.PreconditionError{Op: OpClassify, Reason: "stored image URL is empty"}
	}

	w.transition(OpClassify, StateClassifying, nil, nil)

	result, err := w.api.RequestClassification(ctx, path)
	if err != nil {
		return models.ClassificationResult{}, w.fail(ctx, OpClassify, err)
	}

	w.transition(OpClassify, StateClassified, nil, func(s *Snapshot) {
		s.Classification = &result
	})
	logging.Ctx(ctx).Info().Str("image_url", path).Int("classes", len(result.Percentages)).Msg("Classification complete")
	return result, nil
}

// Upload sends a local image and stores its URL in the slot so it can be
// classified like a capture.
func (w *Workflow) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	ctx = withCorrelation(ctx)
	if !validation.HasImageExtension(filename) {
		return "", validation.NewRequestValidationError(client.UploadField, "imageext", "only png, jpg, jpeg and gif images can be uploaded", filename)
	}

	w.transition(OpUpload, StateCapturing, nil, nil)

	u, err := w.api.UploadImage(ctx, filename, content)
	if err != nil {
		return "", w.fail(ctx, OpUpload, err)
	}
	u = NormalizeSeparators(u)
	if err := w.persist(ctx, u); err != nil {
		return "", w.fail(ctx, OpUpload, err)
	}

	w.transition(OpUpload, StateCaptured, nil, func(s *Snapshot) {
		s.Latitude, s.Longitude, s.Dataset = nil, nil, ""
		s.Products = map[string]string{models.ProductRGB: u}
		s.RawRGBURL = u
		s.Classification = nil
	})
	logging.Ctx(ctx).Info().Str("image_url", u).Msg("Upload complete")
	return u, nil
}

func (w *Workflow) persist(ctx context.Context, u string) error {
	err := w.slot.Set(ctx, u)
	metrics.RecordSlotWrite(w.slot.Backend(), err)
	return err
}

// storeRecord posts the history record. Failures are logged only: the
// capture itself already succeeded.
func (w *Workflow) storeRecord(ctx context.Context, rec models.ImageRecord) {
	if err := w.api.StoreImage(ctx, rec); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("image_url", rec.ImageURL).Msg("Store image record failed")
	}
}

func (w *Workflow) fail(ctx context.Context, op string, err error) error {
	logging.WriteFailure(ctx, op, err).Str("kind", client.Kind(err)).Msg("Capture workflow step failed")
	w.transition(op, StateFailed, err, func(s *Snapshot) {
		s.LastError = err.Error()
	})
	return err
}

// transition moves to next, applies mutate under the lock and notifies
// listeners afterwards.
func (w *Workflow) transition(op string, next State, cause error, mutate func(*Snapshot)) {
	w.mu.Lock()
	prev := w.snap.State
	w.snap.State = next
	w.snap.UpdatedAt = time.Now()
	if next != StateFailed {
		w.snap.LastError = ""
	}
	if mutate != nil {
		mutate(&w.snap)
	}
	t := Transition{Op: op, From: prev, To: next, At: w.snap.UpdatedAt}
	if cause != nil {
		t.Err = cause.Error()
	}
	listeners := slices.Clone(w.listeners)
	w.mu.Unlock()

	metrics.RecordCaptureTransition(string(prev), string(next))
	for _, fn := range listeners {
		fn(t)
	}
}

func withCorrelation(ctx context.Context) context.Context {
	if logging.CorrelationIDFromContext(ctx) != "" {
		return ctx
	}
	return logging.ContextWithNewCorrelationID(ctx)
}
