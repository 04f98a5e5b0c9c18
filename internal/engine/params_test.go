// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"testing"
	"time"

	"github.com/jcarmona/fitbrain/internal/profile"
)

func TestInferParametersHeuristicFallback(t *testing.T) {
	tests := []struct {
		goal    profile.Goal
		sets    int
		repsMin int
		repsMax int
		rest    int
	}{
		{profile.GoalStrength, 5, 4, 8, 180},
		{profile.GoalGainMass, 4, 8, 12, 90},
		{profile.GoalLoseWeight, 3, 12, 18, 60},
		{profile.GoalEndurance, 3, 15, 25, 45},
		{profile.GoalHealth, 4, 8, 12, 90},
	}
	for _, tt := range tests {
		t.Run(string(tt.goal), func(t *testing.T) {
			p := testProfile(30, 22, profile.ExperienceIntermediate, tt.goal, 4)
			got := inferParameters(p, nil)
			if got.Source != SourceHeuristic {
				t.Fatalf("source = %q, want heuristic", got.Source)
			}
			if got.Sets != tt.sets || got.RepsMin != tt.repsMin ||
				got.RepsMax != tt.repsMax || got.RestSeconds != tt.rest {
				t.Errorf("got %+v, want sets=%d reps=%d-%d rest=%d",
					got, tt.sets, tt.repsMin, tt.repsMax, tt.rest)
			}
			if got.Confidence != 0.5 {
				t.Errorf("heuristic confidence = %v, want 0.5", got.Confidence)
			}
		})
	}
}

func TestHeuristicParametersExperienceAdjustment(t *testing.T) {
	tests := []struct {
		name string
		goal profile.Goal
		exp  profile.Experience
		sets int
	}{
		{"beginner drops a strength set", profile.GoalStrength, profile.ExperienceBeginner, 4},
		{"beginner keeps the three-set floor", profile.GoalLoseWeight, profile.ExperienceBeginner, 3},
		{"intermediate unchanged", profile.GoalGainMass, profile.ExperienceIntermediate, 4},
		{"advanced adds a set", profile.GoalGainMass, profile.ExperienceAdvanced, 5},
		{"advanced strength", profile.GoalStrength, profile.ExperienceAdvanced, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := heuristicParameters(tt.goal, tt.exp)
			if got.Sets != tt.sets {
				t.Errorf("sets = %d, want %d", got.Sets, tt.sets)
			}
		})
	}
}

func TestInferParametersFromSimilarUsers(t *testing.T) {
	now := time.Now()
	p := testProfile(30, 22, profile.ExperienceIntermediate, profile.GoalGainMass, 4)

	var history []FeedbackRecord
	for i := 0; i < 6; i++ {
		rec := feedbackAt(p, 5, now)
		rec.Plan = Plan{Sets: 4, RepsMin: 8, RepsMax: 12, RestSeconds: 75, Days: []PlanDay{{}}}
		history = append(history, rec)
	}

	got := inferParameters(p, history)
	if got.Source != SourceInferred {
		t.Fatalf("source = %q, want inferred", got.Source)
	}
	if got.Sets != 4 {
		t.Errorf("sets = %d, want mined median 4", got.Sets)
	}
	if got.RepsMin != 8 || got.RepsMax != 12 {
		t.Errorf("reps = %d-%d, want 8-12 around the mined 8-12 midpoint", got.RepsMin, got.RepsMax)
	}
	if got.RestSeconds != 75 {
		t.Errorf("rest = %d, want mined 75 inside the gain_mass band", got.RestSeconds)
	}
	if got.SampleSize != 6 {
		t.Errorf("sample size = %d, want 6", got.SampleSize)
	}
	if got.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 6/10", got.Confidence)
	}
}

func TestInferParametersStrengthRestBand(t *testing.T) {
	now := time.Now()
	p := testProfile(32, 24, profile.ExperienceAdvanced, profile.GoalStrength, 5)

	var history []FeedbackRecord
	for i := 0; i < 5; i++ {
		rec := feedbackAt(p, 5, now)
		rec.Plan = Plan{Sets: 5, RepsMin: 4, RepsMax: 6, RestSeconds: 90, Days: []PlanDay{{}}}
		history = append(history, rec)
	}

	got := inferParameters(p, history)
	if got.Source != SourceInferred {
		t.Fatalf("source = %q, want inferred", got.Source)
	}
	if got.RestSeconds < 120 || got.RestSeconds > 180 {
		t.Errorf("rest = %d, want within the 120-180 strength band", got.RestSeconds)
	}
}

func TestInferParametersIgnoresLowRatings(t *testing.T) {
	now := time.Now()
	p := testProfile(30, 22, profile.ExperienceIntermediate, profile.GoalGainMass, 4)

	rec := feedbackAt(p, 2, now)
	rec.Plan = Plan{Sets: 6, RepsMin: 4, RepsMax: 6, RestSeconds: 240}

	got := inferParameters(p, []FeedbackRecord{rec})
	if got.Source != SourceHeuristic {
		t.Errorf("low-rated donor should not be mined, source = %q", got.Source)
	}
}

func TestInferParametersRepsFloor(t *testing.T) {
	now := time.Now()
	p := testProfile(30, 22, profile.ExperienceAdvanced, profile.GoalStrength, 5)

	rec := feedbackAt(p, 5, now)
	rec.Plan = Plan{Sets: 5, RepsMin: 3, RepsMax: 5, RestSeconds: 180}

	got := inferParameters(p, []FeedbackRecord{rec})
	if got.RepsMin < minRepsFloor {
		t.Errorf("reps min = %d, want floor %d", got.RepsMin, minRepsFloor)
	}
}

func TestRestSeconds(t *testing.T) {
	tests := []struct {
		name  string
		goal  profile.Goal
		sets  int
		reps  int
		mined int
		want  int
	}{
		{"strength raises short rest", profile.GoalStrength, 4, 10, 90, 120},
		{"strength keeps in-band rest", profile.GoalStrength, 5, 5, 150, 150},
		{"five sets rest like strength", profile.GoalGainMass, 5, 10, 150, 150},
		{"gain_mass keeps in-band rest", profile.GoalGainMass, 4, 10, 75, 75},
		{"gain_mass raises short rest", profile.GoalGainMass, 4, 10, 30, 60},
		{"gain_mass caps long rest", profile.GoalGainMass, 4, 10, 200, 90},
		{"endurance caps long rest", profile.GoalEndurance, 3, 20, 120, 45},
		{"high reps rest short", profile.GoalHealth, 3, 16, 40, 40},
		{"default caps long rest", profile.GoalHealth, 3, 10, 100, 60},
		{"default keeps in-band rest", profile.GoalHealth, 3, 10, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := restSeconds(tt.goal, tt.sets, tt.reps, tt.mined)
			if got != tt.want {
				t.Errorf("restSeconds(%s, %d, %d, %d) = %d, want %d",
					tt.goal, tt.sets, tt.reps, tt.mined, got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		in   []int
		want int
	}{
		{[]int{3}, 3},
		{[]int{1, 3, 2}, 2},
		{[]int{4, 2, 3, 1}, 2},
	}
	for _, tt := range tests {
		if got := median(tt.in); got != tt.want {
			t.Errorf("median(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
