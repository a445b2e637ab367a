// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tomtom215/cubesat-console/docs" // registers the Swagger document
	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/middleware"
)

// compressionLevel is the gzip level for pages and JSON responses.
const compressionLevel = 5

// Router sets up HTTP routes using the chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router for handler with middleware from cfg.
func NewRouter(handler *Handler, cfg config.ServerConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(cfg),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	h := router.handler

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chimiddleware.Compress(compressionLevel))
		r.Get("/", h.Index)
		r.Get("/history", h.HistoryPage)
		r.Post("/history/{id}/delete", h.HistoryDeleteForm)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitAuth))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/register", h.Register)
		r.Get("/status", h.AuthStatus)
		r.Post("/password-reset-request", h.RequestPasswordReset)
		r.Post("/password-reset/{token}", h.ResetPassword)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/ws", h.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Compress(compressionLevel))
			r.Get("/globe", h.Globe)
			r.Get("/charts", h.Charts)
			r.Get("/heatmap", h.Heatmap)
			r.Get("/state", h.State)
			r.Post("/events", h.Events)
			r.Get("/history", h.History)
			r.Get("/history/classifications", h.Classifications)
			r.Delete("/history/{id}", h.DeleteHistory)
		})

		// Each of these starts a job upstream.
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitCustom(RateLimitImaging))
			r.Post("/capture", h.Capture)
			r.Post("/classify", h.Classify)
			r.Post("/upload", h.Upload)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// API documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
