// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cubesat-console/internal/api"
	"github.com/tomtom215/cubesat-console/internal/capture"
	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/controller"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/panel"
	"github.com/tomtom215/cubesat-console/internal/poller"
	"github.com/tomtom215/cubesat-console/internal/store"
	"github.com/tomtom215/cubesat-console/internal/supervisor"
	"github.com/tomtom215/cubesat-console/internal/supervisor/services"
	"github.com/tomtom215/cubesat-console/internal/views"
	ws "github.com/tomtom215/cubesat-console/internal/websocket"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("upstream", cfg.Upstream.BaseURL).
		Str("auth", cfg.Upstream.AuthURL()).
		Str("slot_backend", cfg.Storage.Backend).
		Bool("breaker", cfg.Upstream.Breaker.Enabled).
		Msg("Starting CubeSat console")

	slot, err := store.Open(cfg.Storage)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open image slot")
	}
	defer func() {
		if err := slot.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing image slot")
		}
	}()

	clients, err := client.NewSet(cfg.Upstream)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create CubeSat API clients")
	}

	hub := ws.NewHub()

	workflow := capture.NewWorkflow(clients.Capture, slot, cfg.Capture)
	workflow.OnTransition(func(t capture.Transition) {
		hub.Broadcast(controller.MessageTransition, t)
	})

	history := panel.New(clients.History)

	ctrl := controller.New(controller.Deps{
		Catalog:  clients.Catalog,
		Capture:  workflow,
		Session:  clients.Session,
		Panel:    history,
		Globe:    views.NewGlobeView(cfg.Views),
		Charts:   views.NewChartView(),
		Heatmap:  views.NewHeatmapView(cfg.Views),
		Notifier: hub,
	})

	handler := api.NewHandler(api.Dependencies{
		Controller: ctrl,
		Workflow:   workflow,
		Clients:    clients,
		Panel:      history,
		Hub:        hub,
		Slot:       slot,
		Config:     cfg,
	})
	router := api.NewRouter(handler, cfg.Server)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMessagingService(services.NewHubService(hub))
	if cfg.Poller.Enabled {
		p := poller.New(ctrl, cfg.Poller)
		tree.AddMessagingService(p)
		logging.Info().Dur("interval", p.Interval()).Msg("Position poller added to supervisor tree")
	} else {
		logging.Info().Msg("Position poller disabled (POSITION_POLLER_ENABLED=false)")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("CubeSat console stopped")
}
