// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import "time"

// Stats is the aggregate view of the learning state for dashboards.
type Stats struct {
	TotalFeedback     int     `json:"total_feedback"`
	MeanRating        float64 `json:"mean_rating"`
	SatisfactionRate  float64 `json:"satisfaction_rate"`
	AdherenceRate     float64 `json:"adherence_rate"`
	PatternKeys       int     `json:"pattern_keys"`
	StoredPatterns    int     `json:"stored_patterns"`
	TrackedGroups     int     `json:"tracked_groups"`
	Generation        int     `json:"generation"`
	ExplorationFactor float64 `json:"exploration_factor"`
}

// computeStats derives the aggregate statistics from a state snapshot.
// Empty histories yield zero rates rather than NaN.
func computeStats(s *State) Stats {
	st := Stats{
		TotalFeedback:     len(s.History),
		PatternKeys:       len(s.Patterns),
		TrackedGroups:     len(s.ComboStats),
		Generation:        s.Generation,
		ExplorationFactor: s.ExplorationFactor,
	}
	for _, recs := range s.Patterns {
		st.StoredPatterns += len(recs)
	}
	if len(s.History) == 0 {
		return st
	}

	ratingSum := 0
	satisfied := 0
	adherent := 0
	for _, rec := range s.History {
		ratingSum += rec.Rating
		if rec.Satisfied {
			satisfied++
		}
		if rec.Adherent {
			adherent++
		}
	}
	n := float64(len(s.History))
	st.MeanRating = float64(ratingSum) / n
	st.SatisfactionRate = float64(satisfied) / n
	st.AdherenceRate = float64(adherent) / n
	return st
}

// Report bundles every inference the engine can make for one profile into
// a single response.
type Report struct {
	Recommendation Recommendation `json:"recommendation"`
	Prediction     Prediction     `json:"prediction"`
	Parameters     Parameters     `json:"parameters"`
	Classification Classification `json:"classification"`
	Stats          Stats          `json:"stats"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
