// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"sort"

	"github.com/jcarmona/fitbrain/internal/profile"
)

// Parameter sources.
const (
	SourceInferred  = "inferred"
	SourceHeuristic = "heuristic"
)

// Parameters are the training knobs either mined from successful similar
// users or derived from goal heuristics.
type Parameters struct {
	Sets        int     `json:"sets"`
	RepsMin     int     `json:"reps_min"`
	RepsMax     int     `json:"reps_max"`
	RestSeconds int     `json:"rest_seconds"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source"`
	SampleSize  int     `json:"sample_size"`
}

// minRepsFloor keeps the mined rep range from collapsing below a usable
// minimum.
const minRepsFloor = 4

// inferParameters mines sets/reps/rest from highly similar users who rated
// their plan 4 or above. With no qualifying donors it falls back to goal
// heuristics.
func inferParameters(p profile.Profile, history []FeedbackRecord) Parameters {
	matches := findSimilar(p, history, SimilarityParamsThreshold, 0)

	var sets, reps, rests []int
	for _, m := range matches {
		if m.Record.Rating < satisfiedMinRating {
			continue
		}
		pl := m.Record.Plan
		if pl.Sets <= 0 || pl.RepsMax <= 0 {
			continue
		}
		mid := pl.RepsMax
		if pl.RepsMin > 0 {
			mid = (pl.RepsMin + pl.RepsMax) / 2
		}
		sets = append(sets, pl.Sets)
		reps = append(reps, mid)
		rests = append(rests, pl.RestSeconds)
	}

	if len(sets) == 0 {
		return heuristicParameters(p.Goal, p.Experience)
	}

	setMed := median(sets)
	repMed := median(reps)
	repsMin := repMed - 2
	if repsMin < minRepsFloor {
		repsMin = minRepsFloor
	}

	conf := float64(len(sets)) / 10.0
	if conf > 1 {
		conf = 1
	}

	return Parameters{
		Sets:        setMed,
		RepsMin:     repsMin,
		RepsMax:     repMed + 2,
		RestSeconds: restSeconds(p.Goal, setMed, repMed, median(rests)),
		Confidence:  conf,
		Source:      SourceInferred,
		SampleSize:  len(sets),
	}
}

// restBand returns the rest range in seconds for the goal and the mined
// workload. Strength work and high set counts rest longest, endurance
// and high-rep work rest shortest.
func restBand(goal profile.Goal, sets, reps int) (lo, hi int) {
	switch {
	case goal == profile.GoalStrength || sets >= 5:
		return 120, 180
	case goal == profile.GoalGainMass:
		return 60, 90
	case goal == profile.GoalEndurance || reps >= 15:
		return 30, 45
	default:
		return 45, 60
	}
}

// restSeconds clamps the mined rest time into the band for the goal and
// workload.
func restSeconds(goal profile.Goal, sets, reps, minedRest int) int {
	lo, hi := restBand(goal, sets, reps)
	switch {
	case minedRest < lo:
		return lo
	case minedRest > hi:
		return hi
	}
	return minedRest
}

// heuristicParameters returns goal-typical training parameters when no
// similar successful users exist yet. Beginners drop one working set,
// advanced lifters add one.
func heuristicParameters(goal profile.Goal, exp profile.Experience) Parameters {
	p := Parameters{Confidence: 0.5, Source: SourceHeuristic}
	switch goal {
	case profile.GoalStrength:
		p.Sets, p.RepsMin, p.RepsMax, p.RestSeconds = 5, 4, 8, 180
	case profile.GoalLoseWeight:
		p.Sets, p.RepsMin, p.RepsMax, p.RestSeconds = 3, 12, 18, 60
	case profile.GoalEndurance:
		p.Sets, p.RepsMin, p.RepsMax, p.RestSeconds = 3, 15, 25, 45
	default:
		p.Sets, p.RepsMin, p.RepsMax, p.RestSeconds = 4, 8, 12, 90
	}
	switch exp {
	case profile.ExperienceBeginner:
		if p.Sets > 3 {
			p.Sets--
		}
	case profile.ExperienceAdvanced:
		p.Sets++
	}
	return p
}

// median of a non-empty int slice; even-length inputs take the lower
// middle so results stay within observed values.
func median(vs []int) int {
	s := make([]int, len(vs))
	copy(s, vs)
	sort.Ints(s)
	return s[(len(s)-1)/2]
}
