// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"math"

	"github.com/jcarmona/fitbrain/internal/profile"
)

// Prediction method labels.
const (
	MethodBaseline = "baseline"
	MethodBayesian = "bayesian"
)

// Baseline prediction returned when no similar users exist.
const (
	baselineScore      = 3.5
	baselineConfidence = 0.3
)

// PredictionFactors exposes the inputs that shaped a prediction, for
// dashboards and debugging.
type PredictionFactors struct {
	SimilarUsers    int     `json:"similar_users"`
	MeanRating      float64 `json:"mean_rating"`
	MeanSimilarity  float64 `json:"mean_similarity"`
	ComplexityFit   float64 `json:"complexity_fit"`
	PatternCount    int     `json:"pattern_count"`
	RatingStdDev    float64 `json:"rating_std_dev"`
}

// Prediction is the expected satisfaction for a proposed plan.
type Prediction struct {
	Score      float64           `json:"score"`
	Confidence float64           `json:"confidence"`
	Factors    PredictionFactors `json:"factors"`
	Recommend  bool              `json:"recommend"`
	Method     string            `json:"method"`
}

// Recommendation gates: a plan is recommended when the predicted score and
// the confidence both clear their floors.
const (
	recommendScoreFloor      = 3.5
	recommendConfidenceFloor = 0.4
)

// Ideal exercises per training day by experience tier, used by the
// complexity-fit term.
var idealExercisesPerDay = map[profile.Experience]float64{
	profile.ExperienceBeginner:     4,
	profile.ExperienceIntermediate: 5,
	profile.ExperienceAdvanced:     6,
}

// predictSatisfaction estimates the satisfaction a profile would report
// for a proposed plan. The prior is the mean rating of similar users;
// four bounded adjustment terms shift it and the result is clamped to the
// 1-5 rating scale.
func predictSatisfaction(p profile.Profile, plan *Plan, state *State) Prediction {
	matches := findSimilar(p, state.History, SimilarityThreshold, topKPrediction)
	if len(matches) == 0 {
		return Prediction{
			Score:      baselineScore,
			Confidence: baselineConfidence,
			Recommend:  true,
			Method:     MethodBaseline,
		}
	}

	meanRating := 0.0
	for _, m := range matches {
		meanRating += float64(m.Record.Rating)
	}
	meanRating /= float64(len(matches))

	meanSim := meanSimilarity(matches)
	fit := complexityFit(p, plan)
	patterns := len(state.Patterns[PatternKey(p.Experience, p.Goal)])

	factors := PredictionFactors{
		SimilarUsers:   len(matches),
		MeanRating:     meanRating,
		MeanSimilarity: meanSim,
		ComplexityFit:  fit,
		PatternCount:   patterns,
		RatingStdDev:   ratingStdDev(matches),
	}

	score := meanRating
	score += similarityTerm(meanSim)
	score += sampleSizeTerm(len(matches))
	score += complexityTerm(fit)
	if patterns >= 5 {
		score += 0.3
	}
	score = clamp(score, 1, 5)

	conf := predictionConfidence(factors)

	return Prediction{
		Score:      score,
		Confidence: conf,
		Factors:    factors,
		Recommend:  score >= recommendScoreFloor && conf >= recommendConfidenceFloor,
		Method:     MethodBayesian,
	}
}

// similarityTerm rewards high mean similarity and mildly penalizes a weak
// match set.
func similarityTerm(meanSim float64) float64 {
	switch {
	case meanSim > SimilarityHighThreshold:
		return 0.3
	case meanSim > SimilarityThreshold:
		return 0.1
	default:
		return -0.1
	}
}

func sampleSizeTerm(n int) float64 {
	switch {
	case n >= 5:
		return 0.2
	case n >= 3:
		return 0.1
	default:
		return 0
	}
}

// complexityFit compares the plan's exercises-per-day density against the
// tier ideal, returning 1 at a perfect match and decreasing linearly. Nil
// plans (pre-generation queries) count as a perfect fit.
func complexityFit(p profile.Profile, plan *Plan) float64 {
	if plan == nil || len(plan.Days) == 0 {
		return 1.0
	}
	days := p.TrainingDays
	if days <= 0 {
		days = len(plan.Days)
	}
	perDay := float64(plan.ExerciseCount()) / float64(days)
	ideal := idealExercisesPerDay[p.Experience]
	if ideal == 0 {
		ideal = idealExercisesPerDay[profile.ExperienceIntermediate]
	}
	return 1 - math.Abs(perDay-ideal)/ideal
}

func complexityTerm(fit float64) float64 {
	switch {
	case fit > 0.8:
		return 0.2
	case fit > 0.6:
		return 0.0
	default:
		return -0.2
	}
}

// predictionConfidence scores how much to trust the prediction: 0.5 base,
// up to +0.3 for sample size, up to +0.3 for similarity tier, up to +0.2
// for low rating variance, capped at 1.
func predictionConfidence(f PredictionFactors) float64 {
	conf := 0.5

	switch {
	case f.SimilarUsers >= 10:
		conf += 0.3
	case f.SimilarUsers >= 5:
		conf += 0.2
	case f.SimilarUsers >= 3:
		conf += 0.1
	}

	switch {
	case f.MeanSimilarity > SimilarityHighThreshold:
		conf += 0.3
	case f.MeanSimilarity > SimilarityThreshold:
		conf += 0.2
	case f.MeanSimilarity > 0.5:
		conf += 0.1
	}

	switch {
	case f.RatingStdDev < 0.5:
		conf += 0.2
	case f.RatingStdDev < 1.0:
		conf += 0.1
	}

	return math.Min(conf, 1.0)
}

// ratingStdDev computes the population standard deviation of the match
// ratings. A single sample reports 1.0 (maximum uncertainty, matching the
// no-variance-information case).
func ratingStdDev(matches []Match) float64 {
	if len(matches) <= 1 {
		return 1.0
	}
	mean := 0.0
	for _, m := range matches {
		mean += float64(m.Record.Rating)
	}
	mean /= float64(len(matches))

	variance := 0.0
	for _, m := range matches {
		d := float64(m.Record.Rating) - mean
		variance += d * d
	}
	variance /= float64(len(matches))
	return math.Sqrt(variance)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
