// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jcarmona/fitbrain/internal/detection"
	"github.com/jcarmona/fitbrain/internal/engine"
	"github.com/jcarmona/fitbrain/internal/profile"
)

// Handler serves the inference API on top of the engine and the anomaly
// detector.
type Handler struct {
	engine   *engine.Engine
	detector *detection.Engine
	log      zerolog.Logger
}

// NewHandler wires the API handlers.
func NewHandler(eng *engine.Engine, det *detection.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine:   eng,
		detector: det,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// buildProfile converts and validates the request profile, writing the
// error response itself on failure.
func (h *Handler) buildProfile(w http.ResponseWriter, req ProfileRequest) (profile.Profile, bool) {
	p, err := profile.New(req.toInput())
	if err != nil {
		respondValidationError(w, err)
		return profile.Profile{}, false
	}
	return p, true
}

// Recommend returns routine and diet category distributions for a
// profile.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, ok := h.buildProfile(w, req.Profile)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.engine.Recommend(p))
}

// GeneratePlan returns a generated weekly plan with its provenance and
// predicted satisfaction.
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, ok := h.buildProfile(w, req.Profile)
	if !ok {
		return
	}
	plan, pred := h.engine.GeneratePlan(p)
	respondJSON(w, http.StatusOK, PlanResponse{Plan: plan, Prediction: pred})
}

// Predict returns the expected satisfaction for a proposed plan.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictionRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, ok := h.buildProfile(w, req.Profile)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.engine.Predict(p, req.Plan))
}

// InferParameters returns mined or heuristic training parameters.
func (h *Handler) InferParameters(w http.ResponseWriter, r *http.Request) {
	var req ParametersRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, ok := h.buildProfile(w, req.Profile)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.engine.InferParameters(p))
}

// Classify tiers the user from their own rating history.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassificationRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if _, ok := h.buildProfile(w, req.Profile); !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.engine.Classify(req.Ratings))
}

// Anomalies analyzes a rating history for anomalous trends.
func (h *Handler) Anomalies(w http.ResponseWriter, r *http.Request) {
	var req AnomalyRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, h.detector.Analyze(req.Ratings))
}

// Feedback ingests one feedback cycle. A failed persist returns 503 so
// the caller knows the feedback was not recorded and can retry.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, ok := h.buildProfile(w, req.Profile)
	if !ok {
		return
	}

	err := h.engine.Ingest(r.Context(), p, req.Plan, req.Rating,
		req.CompletedUnits, req.ScheduledUnits, req.Comment)
	if err != nil {
		h.log.Error().Err(err).Msg("feedback ingestion failed")
		respondError(w, http.StatusServiceUnavailable, "feedback could not be recorded")
		return
	}

	stats := h.engine.Stats()
	respondJSON(w, http.StatusOK, FeedbackResponse{
		Recorded:   true,
		History:    stats.TotalFeedback,
		Generation: stats.Generation,
	})
}

// Stats returns aggregate statistics over the learning state.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Stats())
}

// Report returns the combined inference report for a profile.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, ok := h.buildProfile(w, req.Profile)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.engine.Report(p, req.Ratings))
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady reports readiness. The engine loads its state in New, so a
// constructed handler is always ready.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
