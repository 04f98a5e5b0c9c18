// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"math"
	"time"

	"github.com/jcarmona/fitbrain/internal/profile"
)

// Base prior tables. These are designer-set constants keyed by BMI band
// (routines) or derived from BMI band and goal (diets); feedback only
// boosts them, it never rewrites them.
var routineBasePriors = map[profile.BMIBand]map[RoutineCategory]float64{
	profile.BMIBandLow: {
		RoutineStrength: 0.5, RoutineHypertrophy: 0.3, RoutineFullBody: 0.2,
		RoutineCardio: 0.0, RoutineHIIT: 0.0, RoutineYoga: 0.0,
	},
	profile.BMIBandNormal: {
		RoutineStrength: 0.3, RoutineCardio: 0.25, RoutineFullBody: 0.25,
		RoutineHIIT: 0.2, RoutineHypertrophy: 0.0, RoutineYoga: 0.0,
	},
	profile.BMIBandOverweight: {
		RoutineCardio: 0.4, RoutineFullBody: 0.3, RoutineHIIT: 0.2,
		RoutineYoga: 0.1, RoutineStrength: 0.0, RoutineHypertrophy: 0.0,
	},
	profile.BMIBandObese: {
		RoutineCardio: 0.6, RoutineYoga: 0.25, RoutineFullBody: 0.15,
		RoutineStrength: 0.0, RoutineHypertrophy: 0.0, RoutineHIIT: 0.0,
	},
}

// dietBasePriors derives the diet prior row for a profile. Unlike routines
// the diet row depends on the goal as well as the BMI band.
func dietBasePriors(p profile.Profile) map[DietCategory]float64 {
	priors := map[DietCategory]float64{
		DietDeficit:       0.0,
		DietSurplus:       0.0,
		DietMaintenance:   0.0,
		DietRecomposition: 0.0,
	}

	switch p.BMIBand {
	case profile.BMIBandOverweight, profile.BMIBandObese:
		priors[DietDeficit] = 0.8
		priors[DietMaintenance] = 0.2
	case profile.BMIBandLow:
		priors[DietSurplus] = 0.7
		priors[DietRecomposition] = 0.3
	default: // normal, and the fallback row for unknown bands
		if p.Goal == profile.GoalRoutine {
			priors[DietMaintenance] = 0.5
			priors[DietRecomposition] = 0.5
		} else {
			priors[DietRecomposition] = 0.6
			priors[DietMaintenance] = 0.4
		}
	}
	return priors
}

// Boost application constants. Routines and diets are tuned asymmetrically
// on purpose: diet adherence signal is sparser, so each matching record
// moves the needle slightly more.
const (
	routineBoostGain = 0.5
	dietBoostGain    = 0.6
)

// Quality blend weights for a feedback record: star rating dominates,
// adherence tops it up.
const (
	qualityRatingWeight    = 0.7
	qualityAdherenceWeight = 0.3
	maxRating              = 5.0
)

// Coarse profile-match weights used by the scoring filter. This is a
// deliberately cheaper filter than the Euclidean similarity metric: it
// runs over the entire pool on every scoring call, while the precise
// metric is reserved for top-K retrieval.
const (
	coarseBMIBandWeight = 0.5
	coarseAgeWeight     = 0.3
	coarseGoalWeight    = 0.2
	coarseAgeWindow     = 10
	coarseThreshold     = 0.7
)

// coarseMatch computes the weighted profile match used to filter the
// feedback pool during scoring.
func coarseMatch(query, candidate profile.Profile) float64 {
	score := 0.0
	if query.BMIBand == candidate.BMIBand {
		score += coarseBMIBandWeight
	}
	if abs(query.Age-candidate.Age) <= coarseAgeWindow {
		score += coarseAgeWeight
	}
	if query.Goal == candidate.Goal {
		score += coarseGoalWeight
	}
	return score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// feedbackQuality scores a record in [0,1] from its rating and adherence.
func feedbackQuality(rec FeedbackRecord) float64 {
	q := qualityRatingWeight * (float64(rec.Rating) / maxRating)
	if rec.Adherent {
		q += qualityAdherenceWeight
	}
	return q
}

// scoreRoutines produces the normalized probability distribution over
// routine categories for a profile, starting from the BMI-band priors and
// boosting categories that similar users rated well, discounted by
// recency. The result always sums to 1 and every value is >= 0.
func scoreRoutines(p profile.Profile, pool []FeedbackRecord, now time.Time, graceDays int) map[RoutineCategory]float64 {
	base, ok := routineBasePriors[p.BMIBand]
	if !ok {
		base = routineBasePriors[profile.BMIBandNormal]
	}

	scores := make(map[RoutineCategory]float64, len(base))
	for cat, prior := range base {
		scores[cat] = prior
	}

	boosts := make(map[RoutineCategory]float64)
	for _, rec := range pool {
		if coarseMatch(p, rec.Profile) < coarseThreshold {
			continue
		}
		boosts[rec.Plan.Category] += feedbackQuality(rec) * RecencyFactor(rec.Timestamp, now, graceDays)
	}

	for cat, boost := range boosts {
		if _, known := scores[cat]; known {
			scores[cat] *= 1 + boost*routineBoostGain
		}
	}

	return normalizeRoutineScores(scores)
}

// scoreDiets is the diet counterpart of scoreRoutines. The boost keys off
// the diet category the matching user actually followed, read from the
// plan snapshot's category when it names a diet.
func scoreDiets(p profile.Profile, pool []FeedbackRecord, now time.Time, graceDays int) map[DietCategory]float64 {
	scores := dietBasePriors(p)

	boosts := make(map[DietCategory]float64)
	for _, rec := range pool {
		if coarseMatch(p, rec.Profile) < coarseThreshold {
			continue
		}
		cat := dietForGoal(rec.Profile)
		boosts[cat] += feedbackQuality(rec) * RecencyFactor(rec.Timestamp, now, graceDays)
	}

	for cat, boost := range boosts {
		if _, known := scores[cat]; known {
			scores[cat] *= 1 + boost*dietBoostGain
		}
	}

	return normalizeDietScores(scores)
}

// dietForGoal maps a historical user's profile to the diet category their
// feedback reinforces.
func dietForGoal(p profile.Profile) DietCategory {
	switch {
	case p.Goal == profile.GoalLoseWeight:
		return DietDeficit
	case p.Goal == profile.GoalGainMass:
		return DietSurplus
	case p.Goal == profile.GoalRoutine:
		return DietMaintenance
	default:
		return DietRecomposition
	}
}

// normalizeRoutineScores scales the map so values sum to 1.0. An all-zero
// map falls back to the uniform distribution over the present categories;
// division by zero is impossible by construction.
func normalizeRoutineScores(scores map[RoutineCategory]float64) map[RoutineCategory]float64 {
	total := 0.0
	for _, v := range scores {
		total += v
	}
	out := make(map[RoutineCategory]float64, len(scores))
	if total == 0 {
		uniform := 1.0 / float64(len(scores))
		for cat := range scores {
			out[cat] = uniform
		}
		return out
	}
	for cat, v := range scores {
		out[cat] = v / total
	}
	return out
}

func normalizeDietScores(scores map[DietCategory]float64) map[DietCategory]float64 {
	total := 0.0
	for _, v := range scores {
		total += v
	}
	out := make(map[DietCategory]float64, len(scores))
	if total == 0 {
		uniform := 1.0 / float64(len(scores))
		for cat := range scores {
			out[cat] = uniform
		}
		return out
	}
	for cat, v := range scores {
		out[cat] = v / total
	}
	return out
}

// Recommendation summarizes the scoring output: the full distributions
// plus the best pick in each dimension with an interpretable explanation.
type Recommendation struct {
	Routine            RoutineCategory             `json:"routine"`
	RoutineConfidence  float64                     `json:"routine_confidence"`
	RoutineExplanation string                      `json:"routine_explanation"`
	Diet               DietCategory                `json:"diet"`
	DietConfidence     float64                     `json:"diet_confidence"`
	DietExplanation    string                      `json:"diet_explanation"`
	RoutineScores      map[RoutineCategory]float64 `json:"routine_scores"`
	DietScores         map[DietCategory]float64    `json:"diet_scores"`
}

// bestRoutine returns the highest-scoring category. Ties resolve to the
// lexically smallest name so the result is deterministic across map
// iteration orders.
func bestRoutine(scores map[RoutineCategory]float64) (RoutineCategory, float64) {
	var best RoutineCategory
	bestScore := math.Inf(-1)
	for cat, s := range scores {
		if s > bestScore || (s == bestScore && cat < best) {
			best, bestScore = cat, s
		}
	}
	return best, bestScore
}

func bestDiet(scores map[DietCategory]float64) (DietCategory, float64) {
	var best DietCategory
	bestScore := math.Inf(-1)
	for cat, s := range scores {
		if s > bestScore || (s == bestScore && cat < best) {
			best, bestScore = cat, s
		}
	}
	return best, bestScore
}
