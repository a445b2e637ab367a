// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package controller

import (
	"github.com/tomtom215/cubesat-console/internal/models"
	"github.com/tomtom215/cubesat-console/internal/panel"
	"github.com/tomtom215/cubesat-console/internal/views"
)

// EventKind names a UI event or an effect result.
type EventKind string

// UI events.
const (
	EventPageLoaded           EventKind = "page_loaded"
	EventPointerMoved         EventKind = "pointer_moved"
	EventGlobeClicked         EventKind = "globe_clicked"
	EventCaptureClicked       EventKind = "capture_clicked"
	EventClassifyClicked      EventKind = "classify_clicked"
	EventHistoryOpened        EventKind = "history_opened"
	EventHistoryFiltered      EventKind = "history_filtered"
	EventHistoryDeleteClicked EventKind = "history_delete_clicked"
	EventLoginSubmitted       EventKind = "login_submitted"
	EventLogoutClicked        EventKind = "logout_clicked"
)

var uiEvents = map[EventKind]bool{
	EventPageLoaded:           true,
	EventPointerMoved:         true,
	EventGlobeClicked:         true,
	EventCaptureClicked:       true,
	EventClassifyClicked:      true,
	EventHistoryOpened:        true,
	EventHistoryFiltered:      true,
	EventHistoryDeleteClicked: true,
	EventLoginSubmitted:       true,
	EventLogoutClicked:        true,
}

// IsUI reports whether k is a UI event a page may send.
func (k EventKind) IsUI() bool {
	return uiEvents[k]
}

// Result events, produced by effects.
const (
	EventSceneLoaded       EventKind = "scene_loaded"
	EventSessionChecked    EventKind = "session_checked"
	EventCaptureSucceeded  EventKind = "capture_succeeded"
	EventCaptureFailed     EventKind = "capture_failed"
	EventClassifySucceeded EventKind = "classify_succeeded"
	EventClassifyFailed    EventKind = "classify_failed"
	EventHistoryLoaded     EventKind = "history_loaded"
	EventDeleteSucceeded   EventKind = "delete_succeeded"
	EventDeleteFailed      EventKind = "delete_failed"
	EventLoginSucceeded    EventKind = "login_succeeded"
	EventLoginFailed       EventKind = "login_failed"
	EventLoggedOut         EventKind = "logged_out"
)

// Event is a UI event or an effect result. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind      EventKind    `json:"kind"`
	Latitude  *float64     `json:"latitude,omitempty"`
	Longitude *float64     `json:"longitude,omitempty"`
	Dataset   string       `json:"dataset,omitempty"`
	ImageURL  string       `json:"image_url,omitempty"`
	ID        string       `json:"id,omitempty"`
	Filter    panel.Filter `json:"filter,omitempty"`
	Username  string       `json:"username,omitempty"`
	Password  string       `json:"password,omitempty"`

	Scene           *Scene                       `json:"-"`
	Session         *models.SessionStatus        `json:"-"`
	Capture         *models.CaptureResult        `json:"-"`
	Classification  *models.ClassificationResult `json:"-"`
	History         *panel.Rendered              `json:"-"`
	Classifications []panel.ClassificationCard   `json:"-"`
	Err             error                        `json:"-"`
}

// NoticeKind selects how a notice is shown: inline next to the form, or
// as an alert.
type NoticeKind string

const (
	NoticeInline NoticeKind = "inline"
	NoticeAlert  NoticeKind = "alert"
)

// Notice is a message for the user.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Coordinate is a picked globe location.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Scene is everything the widgets render.
type Scene struct {
	Globe   views.GlobeScene   `json:"globe"`
	Charts  views.ChartSet     `json:"charts"`
	Heatmap views.HeatmapLayer `json:"heatmap"`
	Count   int                `json:"count"`
}

// State is the console state visible to the page.
type State struct {
	PointerLat      string                     `json:"pointer_lat"`
	PointerLon      string                     `json:"pointer_lon"`
	Selected        *Coordinate                `json:"selected,omitempty"`
	Status          string                     `json:"status"`
	Pending         int                        `json:"pending"`
	Busy            bool                       `json:"busy"`
	Notice          *Notice                    `json:"notice,omitempty"`
	Products        map[string]string          `json:"products,omitempty"`
	Classification  []models.ClassShare        `json:"classification,omitempty"`
	Session         models.SessionStatus       `json:"session"`
	History         panel.Rendered             `json:"history"`
	Classifications []panel.ClassificationCard `json:"classifications,omitempty"`
	Scene           *Scene                     `json:"-"`
}

// EffectKind names a side effect.
type EffectKind string

const (
	EffectLoadScene     EffectKind = "load_scene"
	EffectCheckSession  EffectKind = "check_session"
	EffectCapture       EffectKind = "capture"
	EffectClassify      EffectKind = "classify"
	EffectLoadHistory   EffectKind = "load_history"
	EffectFilterHistory EffectKind = "filter_history"
	EffectDeleteHistory EffectKind = "delete_history"
	EffectLogin         EffectKind = "login"
	EffectLogout        EffectKind = "logout"
)

// Effect is a side effect requested by a command.
type Effect struct {
	Kind     EffectKind
	At       Coordinate
	Dataset  string
	ImageURL *string
	ID       string
	Filter   panel.Filter
	Username string
	Password string
}
