// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

// Tier buckets a user by how many feedback cycles they have completed.
type Tier string

const (
	TierNovice      Tier = "novice"
	TierRegular     Tier = "regular"
	TierExperienced Tier = "experienced"
	TierVeteran     Tier = "veteran"
	TierExpert      Tier = "expert"
)

// Performance sub-tiers from the user's mean historical rating.
type Performance string

const (
	PerformanceExcellent       Performance = "excellent"
	PerformanceGood            Performance = "good"
	PerformanceAcceptable      Performance = "acceptable"
	PerformanceNeedsAdjustment Performance = "needs_adjustment"
)

// Classification is the tier/performance pairing plus fixed guidance.
type Classification struct {
	Tier        Tier        `json:"tier"`
	Description string      `json:"description"`
	Experiences int         `json:"experiences"`
	MeanRating  float64     `json:"mean_rating"`
	Performance Performance `json:"performance"`
	Generation  int         `json:"generation"`
	Guidance    []string    `json:"guidance"`
}

// tierFor is a step function over the prior-experience count.
func tierFor(n int) (Tier, string) {
	switch {
	case n == 0:
		return TierNovice, "first time using the system"
	case n <= 5:
		return TierRegular, "regular user with some experience"
	case n <= 15:
		return TierExperienced, "experienced user with a solid history"
	case n <= 50:
		return TierVeteran, "veteran user with extensive history"
	default:
		return TierExpert, "expert user of the system"
	}
}

func performanceFor(meanRating float64) Performance {
	switch {
	case meanRating >= 4.5:
		return PerformanceExcellent
	case meanRating >= 4.0:
		return PerformanceGood
	case meanRating >= 3.5:
		return PerformanceAcceptable
	default:
		return PerformanceNeedsAdjustment
	}
}

// classifyUser tiers the user from their personal rating history. Ratings
// must be in chronological order; only count and mean matter here.
func classifyUser(ratings []int, generation int) Classification {
	mean := 0.0
	for _, r := range ratings {
		mean += float64(r)
	}
	if len(ratings) > 0 {
		mean /= float64(len(ratings))
	}

	tier, desc := tierFor(len(ratings))
	perf := performanceFor(mean)

	return Classification{
		Tier:        tier,
		Description: desc,
		Experiences: len(ratings),
		MeanRating:  mean,
		Performance: perf,
		Generation:  generation,
		Guidance:    guidanceFor(tier, perf),
	}
}

// guidanceFor maps each (tier, performance) pair to a fixed list of
// guidance strings. Deterministic lookup, no randomness.
func guidanceFor(tier Tier, perf Performance) []string {
	var gs []string
	switch tier {
	case TierNovice:
		gs = append(gs,
			"start with full-body routines 3 days per week",
			"focus on learning correct technique",
			"give detailed feedback to help the system learn")
	case TierRegular:
		if perf == PerformanceNeedsAdjustment {
			gs = append(gs,
				"consider adjusting your training days",
				"review whether the intensity suits you")
		} else {
			gs = append(gs,
				"keep up the consistency",
				"consider adding a training day")
		}
	case TierExperienced, TierVeteran:
		if perf == PerformanceExcellent {
			gs = append(gs,
				"excellent progress, keep the pace",
				"consider advanced techniques")
		}
		gs = append(gs, "review your goals every 4-6 weeks")
	case TierExpert:
		gs = append(gs,
			"long-standing user of the system",
			"consider sharing detailed feedback",
			"experiment with advanced variations")
	}
	return gs
}
