// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"math"
	"testing"
	"time"

	"github.com/jcarmona/fitbrain/internal/profile"
)

// testProfile builds a profile directly for engine tests, bypassing
// request validation.
func testProfile(age int, bmi float64, exp profile.Experience, goal profile.Goal, days int) profile.Profile {
	return profile.Profile{
		Age:          age,
		BMI:          bmi,
		BMIBand:      profile.BandForBMI(bmi),
		Experience:   exp,
		Goal:         goal,
		TrainingDays: days,
	}
}

func feedbackAt(p profile.Profile, rating int, ts time.Time) FeedbackRecord {
	return FeedbackRecord{
		Profile:   p,
		Rating:    rating,
		Timestamp: ts,
		Satisfied: rating >= satisfiedMinRating,
	}
}

func TestSimilarityIdentity(t *testing.T) {
	profiles := []profile.Profile{
		testProfile(30, 22, profile.ExperienceBeginner, profile.GoalLoseWeight, 3),
		testProfile(55, 31, profile.ExperienceAdvanced, profile.GoalStrength, 6),
		testProfile(18, 17, profile.ExperienceIntermediate, profile.GoalGainMass, 0),
	}
	for _, p := range profiles {
		if got := Similarity(p, p); got != 1.0 {
			t.Errorf("Similarity(p, p) = %v, want 1.0", got)
		}
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	a := testProfile(25, 21, profile.ExperienceBeginner, profile.GoalLoseWeight, 4)
	b := testProfile(48, 29, profile.ExperienceAdvanced, profile.GoalStrength, 2)
	if ab, ba := Similarity(a, b), Similarity(b, a); ab != ba {
		t.Errorf("Similarity not symmetric: %v vs %v", ab, ba)
	}
}

func TestSimilarityBounds(t *testing.T) {
	a := testProfile(12, 15, profile.ExperienceBeginner, profile.GoalLoseWeight, 0)
	b := testProfile(80, 45, profile.ExperienceAdvanced, profile.GoalStrength, 7)
	got := Similarity(a, b)
	if got <= 0 || got > 1 {
		t.Errorf("Similarity = %v, want in (0, 1]", got)
	}
}

func TestSimilarityDecreasesWithDistance(t *testing.T) {
	base := testProfile(30, 22, profile.ExperienceIntermediate, profile.GoalGainMass, 4)
	near := testProfile(32, 23, profile.ExperienceIntermediate, profile.GoalGainMass, 4)
	far := testProfile(60, 33, profile.ExperienceBeginner, profile.GoalLoseWeight, 1)

	if sNear, sFar := Similarity(base, near), Similarity(base, far); sNear <= sFar {
		t.Errorf("near similarity %v should exceed far similarity %v", sNear, sFar)
	}
}

func TestFindSimilarThresholdAndOrder(t *testing.T) {
	now := time.Now()
	query := testProfile(30, 22, profile.ExperienceIntermediate, profile.GoalGainMass, 4)
	history := []FeedbackRecord{
		feedbackAt(testProfile(31, 22.5, profile.ExperienceIntermediate, profile.GoalGainMass, 4), 5, now),
		feedbackAt(testProfile(65, 35, profile.ExperienceBeginner, profile.GoalLoseWeight, 1), 4, now),
		feedbackAt(testProfile(29, 21.5, profile.ExperienceIntermediate, profile.GoalGainMass, 4), 3, now),
	}

	matches := findSimilar(query, history, SimilarityThreshold, 0)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Similarity < matches[1].Similarity {
		t.Errorf("matches not ordered by similarity: %v, %v",
			matches[0].Similarity, matches[1].Similarity)
	}
	for _, m := range matches {
		if m.Similarity < SimilarityThreshold {
			t.Errorf("match below threshold: %v", m.Similarity)
		}
	}
}

func TestFindSimilarLimit(t *testing.T) {
	now := time.Now()
	query := testProfile(30, 22, profile.ExperienceIntermediate, profile.GoalGainMass, 4)
	var history []FeedbackRecord
	for i := 0; i < 20; i++ {
		history = append(history, feedbackAt(query, 4, now))
	}

	matches := findSimilar(query, history, SimilarityThreshold, topKPrediction)
	if len(matches) != topKPrediction {
		t.Errorf("got %d matches, want %d", len(matches), topKPrediction)
	}
}

func TestMeanSimilarityEmpty(t *testing.T) {
	if got := meanSimilarity(nil); got != 0 {
		t.Errorf("meanSimilarity(nil) = %v, want 0", got)
	}
}

func TestRecencyFactor(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		ageDays int
		want    float64
	}{
		{"fresh", 0, 1.0},
		{"at grace boundary", 90, 1.0},
		{"just past grace", 91, math.Exp(-0.01)},
		{"old", 300, math.Exp(-0.01 * 210)},
		{"ancient hits floor", 3000, recencyFloor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := now.AddDate(0, 0, -tt.ageDays)
			got := RecencyFactor(ts, now, RecencyGraceDays)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RecencyFactor(%d days) = %v, want %v", tt.ageDays, got, tt.want)
			}
		})
	}
}

func TestRecencyFactorMissingTimestamp(t *testing.T) {
	if got := RecencyFactor(time.Time{}, time.Now(), RecencyGraceDays); got != recencyNeutral {
		t.Errorf("RecencyFactor(zero) = %v, want %v", got, recencyNeutral)
	}
}

func TestRecencyFactorNeverNegative(t *testing.T) {
	now := time.Now()
	for _, days := range []int{0, 90, 365, 3650, 36500} {
		got := RecencyFactor(now.AddDate(0, 0, -days), now, RecencyGraceDays)
		if got < recencyFloor || got > 1.0 {
			t.Errorf("RecencyFactor(%d days) = %v, want in [%v, 1.0]", days, got, recencyFloor)
		}
	}
}
