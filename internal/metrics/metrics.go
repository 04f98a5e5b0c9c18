// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the inference engine and its HTTP
// surface: feedback ingestion volume, plan generation mode split,
// prediction distributions, learning-state gauges, and API latency.

var (
	// Engine metrics
	feedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_feedback_ingested_total",
			Help: "Total number of feedback records ingested",
		},
		[]string{"rating"},
	)

	plansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_plans_generated_total",
			Help: "Total number of plans generated",
		},
		[]string{"mode"}, // "explore", "exploit"
	)

	predictionScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_prediction_score",
			Help:    "Distribution of predicted satisfaction scores",
			Buckets: prometheus.LinearBuckets(1, 0.5, 9), // 1.0 .. 5.0
		},
	)

	predictionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_prediction_confidence",
			Help:    "Distribution of prediction confidence values",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11), // 0.0 .. 1.0
		},
	)

	generationGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_generation",
			Help: "Current learning generation counter",
		},
	)

	explorationGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_exploration_factor",
			Help: "Current exploration factor",
		},
	)

	anomaliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_anomalies_detected_total",
			Help: "Total number of anomalies detected in user trends",
		},
		[]string{"type"},
	)

	storeSaveErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_save_errors_total",
			Help: "Total number of failed learning-state persists",
		},
	)

	// HTTP metrics
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// FeedbackIngested records one ingested feedback with its star rating.
func FeedbackIngested(rating int) {
	feedbackTotal.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// PlanGenerated counts a generated plan by mode.
func PlanGenerated(mode string) {
	plansTotal.WithLabelValues(mode).Inc()
}

// ObservePrediction records a prediction's score and confidence.
func ObservePrediction(score, confidence float64) {
	predictionScore.Observe(score)
	predictionConfidence.Observe(confidence)
}

// SetGeneration publishes the learning generation counter.
func SetGeneration(gen int) {
	generationGauge.Set(float64(gen))
}

// SetExplorationFactor publishes the current exploration factor.
func SetExplorationFactor(f float64) {
	explorationGauge.Set(f)
}

// AnomalyDetected counts one detected anomaly by type.
func AnomalyDetected(anomalyType string) {
	anomaliesTotal.WithLabelValues(anomalyType).Inc()
}

// RecordStoreSaveError counts one failed state persist.
func RecordStoreSaveError() {
	storeSaveErrors.Inc()
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
