// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package services

import (
	"context"

	"github.com/tomtom215/cubesat-console/internal/logging"
)

// Hub is satisfied by *websocket.Hub.
type Hub interface {
	RunWithContext(ctx context.Context) error
}

// HubService supervises the push hub. Pages reconnect on their own after
// a restart, so a restarted hub starts empty.
type HubService struct {
	hub Hub
}

func NewHubService(hub Hub) *HubService {
	return &HubService{hub: hub}
}

// Serve implements suture.Service.
func (s *HubService) Serve(ctx context.Context) error {
	err := s.hub.RunWithContext(ctx)
	if ctx.Err() == nil {
		logging.Warn().Err(err).Msg("Push hub exited before shutdown, restarting")
	}
	return err
}

func (s *HubService) String() string {
	return "websocket-hub"
}
