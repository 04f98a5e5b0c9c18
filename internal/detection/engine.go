// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

// Package detection flags anomalous patterns in a user's chronological
// satisfaction ratings. Each rule is an independent detector; all matches
// are reported together.
package detection

import (
	"github.com/rs/zerolog"

	"github.com/jcarmona/fitbrain/internal/metrics"
)

// minSamples is the minimum rating history length before any rule runs.
const minSamples = 3

// Engine runs every registered detector over a rating history.
type Engine struct {
	detectors []Detector
	log       zerolog.Logger
}

// NewEngine returns an engine with the standard rule set.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		detectors: []Detector{
			DecliningTrendDetector{},
			AbruptDropDetector{},
			StagnationDetector{},
		},
		log: log.With().Str("component", "detection").Logger(),
	}
}

// Analyze evaluates all rules against the ordered rating history. Fewer
// than three samples always reports a normal state with no anomalies.
func (e *Engine) Analyze(ratings []int) Report {
	report := Report{
		State:     StateNormal,
		Anomalies: []Anomaly{},
		Samples:   len(ratings),
	}
	if len(ratings) < minSamples {
		return report
	}

	for _, d := range e.detectors {
		if a := d.Check(ratings); a != nil {
			report.Anomalies = append(report.Anomalies, *a)
			metrics.AnomalyDetected(string(a.Type))
		}
	}
	if len(report.Anomalies) > 0 {
		report.State = StateAnomalous
		e.log.Debug().
			Int("samples", len(ratings)).
			Int("anomalies", len(report.Anomalies)).
			Msg("anomalous trend detected")
	}
	return report
}
