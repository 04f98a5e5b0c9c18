// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package detection

import (
	"testing"

	"github.com/rs/zerolog"
)

func anomalyTypes(r Report) []AnomalyType {
	types := make([]AnomalyType, 0, len(r.Anomalies))
	for _, a := range r.Anomalies {
		types = append(types, a.Type)
	}
	return types
}

func TestAnalyze(t *testing.T) {
	e := NewEngine(zerolog.Nop())

	tests := []struct {
		name    string
		ratings []int
		state   string
		types   []AnomalyType
	}{
		{"steady decline", []int{5, 4, 3, 2}, StateAnomalous, []AnomalyType{AnomalyDecliningTrend}},
		{"single drop no trend", []int{5, 5, 1}, StateAnomalous, []AnomalyType{AnomalyAbruptDrop}},
		{"decline ending in a drop", []int{5, 4, 2}, StateAnomalous, []AnomalyType{AnomalyDecliningTrend, AnomalyAbruptDrop}},
		{"consistently high", []int{4, 4, 4, 4, 4}, StateNormal, nil},
		{"consistently low but stable", []int{2, 2, 2, 2, 2}, StateNormal, nil},
		{"stagnation", []int{3, 3, 3, 3, 3}, StateAnomalous, []AnomalyType{AnomalyStagnation}},
		{"recovering trend", []int{2, 3, 4, 5}, StateNormal, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := e.Analyze(tt.ratings)
			if rep.State != tt.state {
				t.Errorf("state = %q, want %q", rep.State, tt.state)
			}
			if rep.Samples != len(tt.ratings) {
				t.Errorf("samples = %d, want %d", rep.Samples, len(tt.ratings))
			}
			got := anomalyTypes(rep)
			if len(got) != len(tt.types) {
				t.Fatalf("anomalies = %v, want %v", got, tt.types)
			}
			for i := range got {
				if got[i] != tt.types[i] {
					t.Errorf("anomaly %d = %v, want %v", i, got[i], tt.types[i])
				}
			}
		})
	}
}

func TestAnalyzeTooFewSamples(t *testing.T) {
	e := NewEngine(zerolog.Nop())

	for _, ratings := range [][]int{nil, {5}, {5, 1}} {
		rep := e.Analyze(ratings)
		if rep.State != StateNormal {
			t.Errorf("ratings %v: state = %q, want normal below the sample floor", ratings, rep.State)
		}
		if rep.Anomalies == nil || len(rep.Anomalies) != 0 {
			t.Errorf("ratings %v: anomalies should be an empty slice, got %v", ratings, rep.Anomalies)
		}
	}
}

func TestAnomaliesCarryGuidance(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	rep := e.Analyze([]int{5, 4, 3, 2})
	for _, a := range rep.Anomalies {
		if a.Description == "" || a.Recommendation == "" {
			t.Errorf("anomaly %s missing description or recommendation", a.Type)
		}
	}
}
