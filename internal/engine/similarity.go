// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"math"
	"sort"

	"github.com/jcarmona/fitbrain/internal/profile"
)

// Similarity thresholds used across the engine. The general threshold
// gates prediction queries, the parameter threshold is stricter because
// inferred series/reps transfer poorly between dissimilar users, and the
// high tier feeds confidence scoring.
const (
	SimilarityThreshold       = 0.70
	SimilarityParamsThreshold = 0.75
	SimilarityHighThreshold   = 0.85
)

// Result caps for similar-user retrieval.
const (
	topKPrediction = 10
	topKPatterns   = 5
)

// Normalization ranges for the per-dimension differences.
const (
	ageRange        = 100.0
	bmiRange        = 20.0
	experienceRange = 3.0
	daysRange       = 7.0
)

// Similarity computes profile similarity as 1/(1+d) where d is the
// Euclidean distance over five normalized dimensions: age, BMI,
// experience ordinal, training days, and a binary goal mismatch.
//
// Properties: Similarity(p, p) == 1, symmetric, bounded in (0, 1], and
// monotonically decreasing in each normalized difference.
func Similarity(a, b profile.Profile) float64 {
	dAge := math.Abs(float64(a.Age-b.Age)) / ageRange
	dBMI := math.Abs(a.BMI-b.BMI) / bmiRange
	dExp := math.Abs(float64(a.Experience.Ordinal()-b.Experience.Ordinal())) / experienceRange
	dDays := math.Abs(float64(a.TrainingDays-b.TrainingDays)) / daysRange
	dGoal := 0.0
	if a.Goal != b.Goal {
		dGoal = 1.0
	}

	dist := math.Sqrt(dAge*dAge + dBMI*dBMI + dExp*dExp + dDays*dDays + dGoal*dGoal)
	return 1 / (1 + dist)
}

// Match pairs a historical feedback record with its similarity to the
// query profile.
type Match struct {
	Record     FeedbackRecord
	Similarity float64
}

// findSimilar returns the records whose profile similarity to p meets the
// threshold, ordered by descending similarity and capped at limit. Ties
// are broken by recency so the ordering is deterministic for equal scores.
func findSimilar(p profile.Profile, history []FeedbackRecord, threshold float64, limit int) []Match {
	matches := make([]Match, 0)
	for _, rec := range history {
		sim := Similarity(p, rec.Profile)
		if sim >= threshold {
			matches = append(matches, Match{Record: rec, Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Record.Timestamp.After(matches[j].Record.Timestamp)
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// meanSimilarity returns the average similarity of a match set, 0 for an
// empty set.
func meanSimilarity(matches []Match) float64 {
	if len(matches) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range matches {
		sum += m.Similarity
	}
	return sum / float64(len(matches))
}
