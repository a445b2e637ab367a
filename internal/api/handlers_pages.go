// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cubesat-console/internal/controller"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/panel"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// indexPage is the data behind the console page.
type indexPage struct {
	APIBase        string
	WSPath         string
	TileURL        string
	Datasets       []string
	DefaultDataset string
	State          controller.State
}

// Index serves the console page shell. The page loads its scene through
// the JSON API and follows state over the websocket.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		APIBase: "/api/v1",
		WSPath:  "/api/v1/ws",
		State:   h.ctrl.State(),
	}
	if h.cfg != nil {
		page.TileURL = h.cfg.Views.TileURL
		page.Datasets = h.cfg.Capture.AllowedDatasets
		page.DefaultDataset = h.cfg.Capture.DefaultDataset
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render console page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, r, http.StatusOK, buf.Bytes())
}

// HistoryPage serves the server-rendered history panel. The lat and lon
// query parameters filter it.
func (h *Handler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	state := h.loadHistory(r)
	h.renderHistory(w, r, http.StatusOK, state, "")
}

// HistoryDeleteForm handles the delete button of the history page. On
// success it redirects back to the page; on failure the page is shown
// with an alert and the list unchanged.
func (h *Handler) HistoryDeleteForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, err := h.ctrl.Dispatch(r.Context(), controller.Event{Kind: controller.EventHistoryDeleteClicked, ID: id})
	if err != nil {
		h.renderHistory(w, r, classify(err).status, state, "Delete failed: "+controller.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

func (h *Handler) renderHistory(w http.ResponseWriter, r *http.Request, status int, state controller.State, alert string) {
	var buf bytes.Buffer
	err := panel.WriteHTML(&buf, panel.Page{
		History:         state.History,
		Classifications: state.Classifications,
		Alert:           alert,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render history page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, r, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write page")
	}
}
