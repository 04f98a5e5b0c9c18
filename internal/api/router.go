// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

// Package api exposes the inference engine over HTTP with chi.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jcarmona/fitbrain/internal/config"
	"github.com/jcarmona/fitbrain/internal/metrics"
)

// NewRouter assembles the HTTP routes and middleware stack.
func NewRouter(h *Handler, cfg config.APIConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(metricsMiddleware)

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimit,
				cfg.RatePeriod,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
		}

		r.Post("/recommendations", h.Recommend)
		r.Post("/plans", h.GeneratePlan)
		r.Post("/predictions", h.Predict)
		r.Post("/parameters", h.InferParameters)
		r.Post("/classification", h.Classify)
		r.Post("/anomalies", h.Anomalies)
		r.Post("/feedback", h.Feedback)
		r.Post("/report", h.Report)
		r.Get("/stats", h.Stats)

		r.Route("/health", func(r chi.Router) {
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// metricsMiddleware records request duration labeled by method, route
// pattern, and status.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(r.Method, route, ww.Status(), time.Since(start))
	})
}
