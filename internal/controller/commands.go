// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package controller

import (
	"errors"
	"fmt"
	"maps"
	"strconv"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/models"
)

// Command is a pure transition from the current state and an event to the
// next state and the effects to run.
type Command func(State, Event) (State, []Effect)

// Commands returns the dispatch table.
func Commands() map[EventKind]Command {
	return map[EventKind]Command{
		EventPageLoaded:           pageLoaded,
		EventPointerMoved:         pointerMoved,
		EventGlobeClicked:         globeClicked,
		EventCaptureClicked:       captureClicked,
		EventClassifyClicked:      classifyClicked,
		EventHistoryOpened:        historyOpened,
		EventHistoryFiltered:      historyFiltered,
		EventHistoryDeleteClicked: historyDeleteClicked,
		EventLoginSubmitted:       loginSubmitted,
		EventLogoutClicked:        logoutClicked,

		EventSceneLoaded:       sceneLoaded,
		EventSessionChecked:    sessionChecked,
		EventCaptureSucceeded:  captureSucceeded,
		EventCaptureFailed:     captureFailed,
		EventClassifySucceeded: classifySucceeded,
		EventClassifyFailed:    classifyFailed,
		EventHistoryLoaded:     historyLoaded,
		EventDeleteSucceeded:   deleteSucceeded,
		EventDeleteFailed:      deleteFailed,
		EventLoginSucceeded:    loginSucceeded,
		EventLoginFailed:       loginFailed,
		EventLoggedOut:         loggedOut,
	}
}

// FormatCoordinate formats a pointer coordinate to six decimals.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func begin(s State, status string) State {
	s.Pending++
	s.Busy = true
	s.Status = status
	s.Notice = nil
	return s
}

func finish(s State, status string) State {
	if s.Pending > 0 {
		s.Pending--
	}
	s.Busy = s.Pending > 0
	s.Status = status
	return s
}

func pageLoaded(s State, _ Event) (State, []Effect) {
	s.Status = "Loading satellite positions"
	return s, []Effect{{Kind: EffectLoadScene}, {Kind: EffectCheckSession}, {Kind: EffectLoadHistory}}
}

// pointerMoved shows the coordinates under the pointer. An event without
// coordinates means the pointer left the globe.
func pointerMoved(s State, ev Event) (State, []Effect) {
	if ev.Latitude == nil || ev.Longitude == nil {
		s.PointerLat, s.PointerLon = "", ""
		return s, nil
	}
	s.PointerLat = FormatCoordinate(*ev.Latitude)
	s.PointerLon = FormatCoordinate(*ev.Longitude)
	return s, nil
}

// globeClicked selects a location and captures it.
func globeClicked(s State, ev Event) (State, []Effect) {
	if ev.Latitude == nil || ev.Longitude == nil {
		return s, nil
	}
	at := Coordinate{Latitude: *ev.Latitude, Longitude: *ev.Longitude}
	s.Selected = &at
	s = begin(s, "Capturing image")
	return s, []Effect{{Kind: EffectCapture, At: at, Dataset: ev.Dataset}}
}

// captureClicked captures at the event coordinates, or at the selected
// location when the event carries none.
func captureClicked(s State, ev Event) (State, []Effect) {
	var at Coordinate
	switch {
	case ev.Latitude != nil && ev.Longitude != nil:
		at = Coordinate{Latitude: *ev.Latitude, Longitude: *ev.Longitude}
		s.Selected = &at
	case s.Selected != nil:
		at = *s.Selected
	default:
		s.Notice = &Notice{Kind: NoticeInline, Message: "Select a location on the globe first"}
		return s, nil
	}
	s = begin(s, "Capturing image")
	return s, []Effect{{Kind: EffectCapture, At: at, Dataset: ev.Dataset}}
}

func classifyClicked(s State, ev Event) (State, []Effect) {
	s = begin(s, "Classifying image")
	eff := Effect{Kind: EffectClassify}
	if ev.ImageURL != "" {
		u := ev.ImageURL
		eff.ImageURL = &u
	}
	return s, []Effect{eff}
}

func historyOpened(s State, _ Event) (State, []Effect) {
	return s, []Effect{{Kind: EffectLoadHistory}}
}

func historyFiltered(s State, ev Event) (State, []Effect) {
	return s, []Effect{{Kind: EffectFilterHistory, Filter: ev.Filter}}
}

func historyDeleteClicked(s State, ev Event) (State, []Effect) {
	if ev.ID == "" {
		return s, nil
	}
	s = begin(s, "Deleting image")
	return s, []Effect{{Kind: EffectDeleteHistory, ID: ev.ID}}
}

func loginSubmitted(s State, ev Event) (State, []Effect) {
	s = begin(s, "Signing in")
	return s, []Effect{{Kind: EffectLogin, Username: ev.Username, Password: ev.Password}}
}

func logoutClicked(s State, _ Event) (State, []Effect) {
	s = begin(s, "Signing out")
	return s, []Effect{{Kind: EffectLogout}}
}

func sceneLoaded(s State, ev Event) (State, []Effect) {
	s.Scene = ev.Scene
	if s.Busy {
		return s, nil
	}
	if ev.Scene == nil || ev.Scene.Count == 0 {
		s.Status = "No satellite positions available"
		return s, nil
	}
	s.Status = fmt.Sprintf("Tracking %d satellites", ev.Scene.Count)
	return s, nil
}

func sessionChecked(s State, ev Event) (State, []Effect) {
	if ev.Session != nil {
		s.Session = *ev.Session
	}
	return s, nil
}

func captureSucceeded(s State, ev Event) (State, []Effect) {
	s = finish(s, "Image captured")
	if ev.Capture != nil {
		s.Products = maps.Clone(ev.Capture.Products)
	}
	s.Classification = nil
	return s, nil
}

func captureFailed(s State, ev Event) (State, []Effect) {
	s = finish(s, "Capture failed")
	s.Notice = noticeFor("Capture failed", ev.Err)
	return s, nil
}

func classifySucceeded(s State, ev Event) (State, []Effect) {
	s = finish(s, "Image classified")
	if ev.Classification != nil {
		s.Classification = ev.Classification.Sorted()
	}
	return s, nil
}

func classifyFailed(s State, ev Event) (State, []Effect) {
	s = finish(s, "Classification failed")
	s.Notice = noticeFor("Classification failed", ev.Err)
	return s, nil
}

func historyLoaded(s State, ev Event) (State, []Effect) {
	if ev.History != nil {
		s.History = *ev.History
	}
	if ev.Classifications != nil {
		s.Classifications = ev.Classifications
	}
	return s, nil
}

// deleteSucceeded shows the re-fetched list.
func deleteSucceeded(s State, ev Event) (State, []Effect) {
	s = finish(s, "Image deleted")
	if ev.History != nil {
		s.History = *ev.History
	}
	return s, nil
}

// deleteFailed keeps the displayed list as it was.
func deleteFailed(s State, ev Event) (State, []Effect) {
	s = finish(s, "Delete failed")
	s.Notice = &Notice{Kind: NoticeAlert, Message: "Delete failed: " + errorMessage(ev.Err)}
	return s, nil
}

func loginSucceeded(s State, _ Event) (State, []Effect) {
	s = finish(s, "Signed in")
	return s, []Effect{{Kind: EffectCheckSession}}
}

func loginFailed(s State, ev Event) (State, []Effect) {
	s = finish(s, "Sign in failed")
	s.Notice = noticeFor("Sign in failed", ev.Err)
	return s, nil
}

func loggedOut(s State, ev Event) (State, []Effect) {
	if ev.Err != nil {
		s = finish(s, "Sign out failed")
		s.Notice = noticeFor("Sign out failed", ev.Err)
		return s, nil
	}
	s = finish(s, "Signed out")
	s.Session = models.SessionStatus{}
	return s, nil
}

// noticeFor maps a write-path error to a notice: validation and missing
// prior state are shown inline, everything else as an alert.
func noticeFor(prefix string, err error) *Notice {
	var preErr *client.PreconditionError
	if client.IsValidation(err) || errors.As(err, &preErr) {
		return &Notice{Kind: NoticeInline, Message: UserMessage(err)}
	}
	return &Notice{Kind: NoticeAlert, Message: prefix + ": " + UserMessage(err)}
}

// UserMessage returns the text shown to the user for err: the upstream or
// auth message when there is one, a fixed hint for a classify attempted
// before any capture, and the error text otherwise.
func UserMessage(err error) string {
	var preErr *client.PreconditionError
	if errors.As(err, &preErr) {
		if preErr.Op == "classify" {
			return "Capture an image before classifying"
		}
		return preErr.Reason
	}
	return errorMessage(err)
}

func errorMessage(err error) string {
	var authErr *client.AuthError
	var upErr *client.UpstreamError
	switch {
	case err == nil:
		return "unknown error"
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &upErr):
		return upErr.Message
	default:
		return err.Error()
	}
}
