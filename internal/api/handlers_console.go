// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cubesat-console/internal/capture"
	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/controller"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/panel"
	"github.com/tomtom215/cubesat-console/internal/validation"
)

// maxUploadBytes bounds image uploads.
const maxUploadBytes = 32 << 20

// captureRequest is the body of POST /api/v1/capture.
type captureRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Dataset   string   `json:"dataset,omitempty"`
}

// classifyRequest is the body of POST /api/v1/classify. An empty
// ImageURL classifies the last capture.
type classifyRequest struct {
	ImageURL string `json:"image_url,omitempty"`
}

// workflowResponse pairs the console state with the capture workflow.
type workflowResponse struct {
	State   controller.State `json:"state"`
	Capture capture.Snapshot `json:"capture"`
}

// uploadResponse is returned by POST /api/v1/upload.
type uploadResponse struct {
	ImageURL string           `json:"image_url"`
	Capture  capture.Snapshot `json:"capture"`
}

// sceneFor returns the cached scene, or builds one when none is cached or
// refresh=true is passed.
func (h *Handler) sceneFor(w http.ResponseWriter, r *http.Request) (*controller.Scene, bool) {
	scene := h.ctrl.State().Scene
	if scene == nil || r.URL.Query().Get("refresh") == "true" {
		var err error
		scene, err = h.ctrl.RefreshScene(r.Context())
		if err != nil {
			NewResponseWriter(w, r).FromError(err)
			return nil, false
		}
	}
	if scene == nil {
		NewResponseWriter(w, r).Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Scene not available", nil)
		return nil, false
	}
	return scene, true
}

// Globe returns the globe scene: entities, reference frame and tile layer.
func (h *Handler) Globe(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.sceneFor(w, r)
	if !ok {
		return
	}
	NewResponseWriter(w, r).List(scene.Globe, len(scene.Globe.Entities))
}

// Charts returns the altitude, velocity and position chart configurations.
func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.sceneFor(w, r)
	if !ok {
		return
	}
	NewResponseWriter(w, r).Success(scene.Charts)
}

// Heatmap returns the position heatmap layer.
func (h *Handler) Heatmap(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.sceneFor(w, r)
	if !ok {
		return
	}
	NewResponseWriter(w, r).Success(scene.Heatmap)
}

// State returns the console state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.ctrl.State())
}

// Events dispatches a UI event from the page. Write-path failures are
// reported through the returned state's notice, not the status code.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	var ev controller.Event
	if !decodeJSON(w, r, &ev) {
		return
	}
	if !ev.Kind.IsUI() {
		NewResponseWriter(w, r).BadRequest("Unknown event kind")
		return
	}

	state, err := h.ctrl.Dispatch(r.Context(), ev)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Str("event", string(ev.Kind)).Msg("Event handled with failure")
	}
	NewResponseWriter(w, r).Success(state)
}

// Capture requests imagery at the given coordinates.
func (h *Handler) Capture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	switch {
	case req.Latitude == nil:
		NewResponseWriter(w, r).FromError(validation.NewRequestValidationError("latitude", "required", "latitude is required", nil))
		return
	case req.Longitude == nil:
		NewResponseWriter(w, r).FromError(validation.NewRequestValidationError("longitude", "required", "longitude is required", nil))
		return
	}

	state, err := h.ctrl.Dispatch(r.Context(), controller.Event{
		Kind:      controller.EventCaptureClicked,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Dataset:   req.Dataset,
	})
	if err != nil {
		NewResponseWriter(w, r).FromError(err)
		return
	}
	NewResponseWriter(w, r).Success(workflowResponse{State: state, Capture: h.workflow.Snapshot()})
}

// Classify classifies the given image, or the last capture.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.ctrl.Dispatch(r.Context(), controller.Event{
		Kind:     controller.EventClassifyClicked,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		NewResponseWriter(w, r).FromError(err)
		return
	}
	NewResponseWriter(w, r).Success(workflowResponse{State: state, Capture: h.workflow.Snapshot()})
}

// Upload accepts a multipart image and makes it the image to classify.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile(client.UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			NewResponseWriter(w, r).Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Image too large", nil)
			return
		}
		NewResponseWriter(w, r).FromError(validation.NewRequestValidationError(client.UploadField, "required", client.UploadField+" is required", nil))
		return
	}
	defer func() { _ = file.Close() }()

	u, err := h.workflow.Upload(r.Context(), header.Filename, file)
	if err != nil {
		NewResponseWriter(w, r).FromError(err)
		return
	}

	snap := h.workflow.Snapshot()
	if h.hub != nil {
		h.hub.Broadcast(controller.MessageCapture, snap)
	}
	NewResponseWriter(w, r).Success(uploadResponse{ImageURL: u, Capture: snap})
}

// historyFilter reads the lat and lon query parameters.
func historyFilter(r *http.Request) panel.Filter {
	q := r.URL.Query()
	return panel.Filter{Lat: q.Get("lat"), Lon: q.Get("lon")}
}

// loadHistory fetches the history and applies the request's filter.
func (h *Handler) loadHistory(r *http.Request) controller.State {
	ctx := r.Context()
	_, _ = h.ctrl.Dispatch(ctx, controller.Event{Kind: controller.EventHistoryOpened})
	state, _ := h.ctrl.Dispatch(ctx, controller.Event{Kind: controller.EventHistoryFiltered, Filter: historyFilter(r)})
	return state
}

// History returns the filtered capture history. Fetch failures yield an
// empty list.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	state := h.loadHistory(r)
	NewResponseWriter(w, r).List(state.History, len(state.History.Cards))
}

// Classifications returns the classification history.
func (h *Handler) Classifications(w http.ResponseWriter, r *http.Request) {
	cards := h.panel.LoadClassifications(r.Context())
	NewResponseWriter(w, r).List(cards, len(cards))
}

// DeleteHistory deletes one capture and returns the refreshed history.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		NewResponseWriter(w, r).BadRequest("Missing image id")
		return
	}

	state, err := h.ctrl.Dispatch(r.Context(), controller.Event{Kind: controller.EventHistoryDeleteClicked, ID: id})
	if err != nil {
		NewResponseWriter(w, r).FromError(err)
		return
	}
	NewResponseWriter(w, r).List(state.History, len(state.History.Cards))
}
