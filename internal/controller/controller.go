// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package controller wires UI events to the clients.
//
// Each event kind maps to a pure Command that returns the next State and a
// list of Effects. Dispatch applies the command, runs the effects against
// the clients and feeds their results back in as events, until no effects
// remain. Read-path failures are logged and degrade to empty data;
// write-path failures end up as a Notice and are returned to the caller.
// No failure leaves the console unusable.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/models"
	"github.com/tomtom215/cubesat-console/internal/panel"
	"github.com/tomtom215/cubesat-console/internal/views"
)

// ErrUnknownEvent is returned by Dispatch for an event kind with no command.
var ErrUnknownEvent = errors.New("controller: unknown event")

// Message types pushed to connected pages.
const (
	MessageStatus         = "status"
	MessagePositions      = "positions"
	MessageCapture        = "capture"
	MessageClassification = "classification"
	MessageHistory        = "history"
	MessageTransition     = "transition"
)

// Catalog fetches positions and orbits.
type Catalog interface {
	Positions(ctx context.Context) ([]models.PositionRecord, error)
	Orbits(ctx context.Context) ([]models.OrbitRecord, error)
}

// Capturer runs the capture workflow.
type Capturer interface {
	Capture(ctx context.Context, lat, lon float64, dataset string) (models.CaptureResult, error)
	Classify(ctx context.Context, imageURL *string) (models.ClassificationResult, error)
}

// Session signs in and out and reports the session status.
type Session interface {
	Login(ctx context.Context, form client.LoginForm) (models.AuthResult, error)
	Logout(ctx context.Context) (models.AuthResult, error)
	Status(ctx context.Context) (models.SessionStatus, error)
}

// Broadcaster pushes messages to connected pages.
type Broadcaster interface {
	Broadcast(msgType string, data interface{})
}

// Deps are the collaborators effects run against.
type Deps struct {
	Catalog  Catalog
	Capture  Capturer
	Session  Session
	Panel    *panel.Panel
	Globe    *views.GlobeView
	Charts   *views.ChartView
	Heatmap  *views.HeatmapView
	Notifier Broadcaster
}

// Controller holds the console state and dispatches events.
type Controller struct {
	deps     Deps
	commands map[EventKind]Command

	mu    sync.RWMutex
	state State
}

// New creates a Controller with the default dispatch table.
func New(deps Deps) *Controller {
	return &Controller{
		deps:     deps,
		commands: Commands(),
		state:    State{Status: "Ready"},
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Dispatch handles ev and every follow-up event its effects produce. It
// returns the resulting state and the first write-path error, if any.
func (c *Controller) Dispatch(ctx context.Context, ev Event) (State, error) {
	if _, ok := c.commands[ev.Kind]; !ok {
		return c.State(), fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}

	var firstErr error
	queue := []Event{ev}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		effects := c.apply(next)
		if next.Err != nil && firstErr == nil {
			firstErr = next.Err
		}
		c.publish(next)

		for _, eff := range effects {
			queue = append(queue, c.run(ctx, eff)...)
		}
	}
	return c.State(), firstErr
}

// RefreshScene rebuilds the scene without a UI event, for the poller.
func (c *Controller) RefreshScene(ctx context.Context) (*Scene, error) {
	_, err := c.Dispatch(ctx, Event{Kind: EventSceneLoaded, Scene: c.loadScene(ctx)})
	return c.State().Scene, err
}

func (c *Controller) apply(ev Event) []Effect {
	cmd := c.commands[ev.Kind]
	if cmd == nil {
		logging.Warn().Str("event", string(ev.Kind)).Msg("No command for event")
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next, effects := cmd(c.state, ev)
	c.state = next
	return effects
}

// run executes one effect and returns the resulting events.
func (c *Controller) run(ctx context.Context, eff Effect) []Event {
	switch eff.Kind {
	case EffectLoadScene:
		return []Event{{Kind: EventSceneLoaded, Scene: c.loadScene(ctx)}}

	case EffectCheckSession:
		status, err := c.deps.Session.Status(ctx)
		if err != nil {
			logging.ReadFailure(ctx, "/auth/status", err).Msg("Session status check failed, treating as signed out")
			status = models.SessionStatus{}
		}
		return []Event{{Kind: EventSessionChecked, Session: &status}}

	case EffectCapture:
		result, err := c.deps.Capture.Capture(ctx, eff.At.Latitude, eff.At.Longitude, eff.Dataset)
		if err != nil {
			return []Event{{Kind: EventCaptureFailed, Err: err}}
		}
		return []Event{{Kind: EventCaptureSucceeded, Capture: &result}}

	case EffectClassify:
		result, err := c.deps.Capture.Classify(ctx, eff.ImageURL)
		if err != nil {
			return []Event{{Kind: EventClassifyFailed, Err: err}}
		}
		return []Event{{Kind: EventClassifySucceeded, Classification: &result}}

	case EffectLoadHistory:
		history := c.deps.Panel.Load(ctx)
		return []Event{{Kind: EventHistoryLoaded, History: &history, Classifications: c.deps.Panel.LoadClassifications(ctx)}}

	case EffectFilterHistory:
		history := c.deps.Panel.SetFilter(eff.Filter)
		return []Event{{Kind: EventHistoryLoaded, History: &history}}

	case EffectDeleteHistory:
		history, err := c.deps.Panel.Delete(ctx, eff.ID)
		if err != nil {
			return []Event{{Kind: EventDeleteFailed, Err: err}}
		}
		return []Event{{Kind: EventDeleteSucceeded, History: &history}}

	case EffectLogin:
		_, err := c.deps.Session.Login(ctx, client.LoginForm{Username: eff.Username, Password: eff.Password})
		if err != nil {
			return []Event{{Kind: EventLoginFailed, Err: err}}
		}
		return []Event{{Kind: EventLoginSucceeded}}

	case EffectLogout:
		_, err := c.deps.Session.Logout(ctx)
		return []Event{{Kind: EventLoggedOut, Err: err}}

	default:
		logging.Ctx(ctx).Warn().Str("effect", string(eff.Kind)).Msg("Unknown effect")
		return nil
	}
}

// loadScene fetches positions and orbits and builds every widget
// configuration. Fetch failures leave the affected data empty.
func (c *Controller) loadScene(ctx context.Context) *Scene {
	positions, err := c.deps.Catalog.Positions(ctx)
	if err != nil {
		logging.ReadFailure(ctx, models.EndpointPositions, err).Msg("Position fetch failed, showing no data")
		positions = nil
	}
	orbits, err := c.deps.Catalog.Orbits(ctx)
	if err != nil {
		logging.ReadFailure(ctx, models.EndpointOrbits, err).Msg("Orbit fetch failed, showing no tracks")
		orbits = nil
	}

	globe := c.deps.Globe.Build(positions, orbits)
	return &Scene{
		Globe:   globe,
		Charts:  c.deps.Charts.Build(positions),
		Heatmap: c.deps.Heatmap.Build(positions),
		Count:   len(globe.Entities),
	}
}

// publish pushes the state and, for result events, the result itself.
func (c *Controller) publish(ev Event) {
	n := c.deps.Notifier
	if n == nil {
		return
	}
	state := c.State()
	n.Broadcast(MessageStatus, state)

	switch ev.Kind {
	case EventSceneLoaded:
		if ev.Scene != nil {
			n.Broadcast(MessagePositions, ev.Scene)
		}
	case EventCaptureSucceeded:
		n.Broadcast(MessageCapture, state.Products)
	case EventClassifySucceeded:
		n.Broadcast(MessageClassification, state.Classification)
	case EventHistoryLoaded, EventDeleteSucceeded:
		n.Broadcast(MessageHistory, state.History)
	}
}
