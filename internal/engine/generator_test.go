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

// fakeRand replays fixed sequences; exhausted sequences repeat the last
// value so tests stay deterministic regardless of call count.
type fakeRand struct {
	floats []float64
	fi     int
	ints   []int
	ii     int
}

func (f *fakeRand) Float64() float64 {
	if len(f.floats) == 0 {
		return 0.5
	}
	v := f.floats[min(f.fi, len(f.floats)-1)]
	f.fi++
	return v
}

func (f *fakeRand) Intn(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[min(f.ii, len(f.ints)-1)]
	f.ii++
	return v % n
}

func TestStructureFor(t *testing.T) {
	tests := []struct {
		days      int
		structure Structure
		wantDays  int
	}{
		{1, StructureFullBody, 1},
		{3, StructureFullBody, 3},
		{4, StructureUpperLower, 4},
		{5, StructureSplit, 5},
		{7, StructureSplit, 6}, // split table caps at six sessions
	}
	for _, tt := range tests {
		structure, groups := structureFor(tt.days)
		if structure != tt.structure {
			t.Errorf("structureFor(%d) = %v, want %v", tt.days, structure, tt.structure)
		}
		if len(groups) != tt.wantDays {
			t.Errorf("structureFor(%d) produced %d days, want %d", tt.days, len(groups), tt.wantDays)
		}
	}
}

func TestExercisesPerGroup(t *testing.T) {
	tests := []struct {
		group     string
		structure Structure
		exp       profile.Experience
		want      int
	}{
		{GroupChest, StructureFullBody, profile.ExperienceBeginner, 1},
		{GroupChest, StructureFullBody, profile.ExperienceAdvanced, 2},
		{GroupLegs, StructureUpperLower, profile.ExperienceBeginner, 2},
		{GroupChest, StructureUpperLower, profile.ExperienceAdvanced, 1},
		{GroupBack, StructureSplit, profile.ExperienceAdvanced, 3},
		{GroupBack, StructureSplit, profile.ExperienceIntermediate, 2},
	}
	for _, tt := range tests {
		if got := exercisesPerGroup(tt.group, tt.structure, tt.exp); got != tt.want {
			t.Errorf("exercisesPerGroup(%s, %s, %s) = %d, want %d",
				tt.group, tt.structure, tt.exp, got, tt.want)
		}
	}
}

func TestGenerateExploreShape(t *testing.T) {
	p := testProfile(30, 22, profile.ExperienceBeginner, profile.GoalGainMass, 3)
	rng := &fakeRand{floats: []float64{0.99}, ints: []int{0, 1, 2, 3}} // no cardio

	plan := generateExplore(p, RoutineHypertrophy, 2, rng, time.Now())

	if plan.Mode != ModeExplore {
		t.Errorf("mode = %v, want explore", plan.Mode)
	}
	if plan.Structure != StructureFullBody {
		t.Errorf("structure = %v, want fullbody for 3 days", plan.Structure)
	}
	if len(plan.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(plan.Days))
	}
	if plan.Generation != 2 {
		t.Errorf("generation = %d, want 2", plan.Generation)
	}
	if plan.ID == "" {
		t.Error("plan ID should be set")
	}
	// Beginner full-body: one exercise per group, five groups per day.
	for _, day := range plan.Days {
		if len(day.Exercises) != 5 {
			t.Errorf("day %d has %d exercises, want 5", day.Day, len(day.Exercises))
		}
	}
}

func TestGenerateExploreBeginnersGetCompounds(t *testing.T) {
	p := testProfile(25, 21, profile.ExperienceBeginner, profile.GoalGainMass, 2)
	rng := &fakeRand{floats: []float64{0.99}, ints: []int{0, 1, 2}}

	plan := generateExplore(p, RoutineHypertrophy, 0, rng, time.Now())

	compounds := make(map[string]bool)
	for _, cat := range Catalog {
		for _, name := range cat.Compound {
			compounds[name] = true
		}
	}
	for _, day := range plan.Days {
		for _, ex := range day.Exercises {
			if ex.Group == GroupCardio {
				continue
			}
			if !compounds[ex.Name] {
				t.Errorf("beginner plan contains non-compound %q", ex.Name)
			}
		}
	}
}

func TestGenerateExploreCardioInsertion(t *testing.T) {
	p := testProfile(35, 28, profile.ExperienceIntermediate, profile.GoalLoseWeight, 2)
	// Low floats force cardio on every day (prob 0.8 for lose_weight).
	rng := &fakeRand{floats: []float64{0.1}, ints: []int{0}}

	plan := generateExplore(p, RoutineCardio, 0, rng, time.Now())
	for _, day := range plan.Days {
		last := day.Exercises[len(day.Exercises)-1]
		if last.Group != GroupCardio {
			t.Errorf("day %d missing cardio entry", day.Day)
		}
		if last.Duration < 15 || last.Duration > 30 {
			t.Errorf("cardio duration %d outside 15-30", last.Duration)
		}
	}
}

func TestGenerateExploitUsesMinedExercises(t *testing.T) {
	now := time.Now()
	p := testProfile(30, 22, profile.ExperienceIntermediate, profile.GoalGainMass, 3)

	donorPlan := Plan{
		Structure: StructureFullBody,
		Sets:      4, RepsMin: 8, RepsMax: 12, RestSeconds: 90,
		Days: []PlanDay{{
			Day: 1,
			Exercises: []Exercise{
				{Name: "Bench press", Group: GroupChest},
				{Name: "Pull-ups", Group: GroupBack},
				{Name: "Squat", Group: GroupLegs},
				{Name: "Overhead press", Group: GroupShoulders},
				{Name: "Barbell curl", Group: GroupArms},
			},
		}},
	}
	var donors []Match
	for i := 0; i < 3; i++ {
		donors = append(donors, Match{
			Record:     FeedbackRecord{Profile: p, Plan: donorPlan, Rating: 5, Timestamp: now, Satisfied: true},
			Similarity: 0.9,
		})
	}

	// Float sequence: below the mined share for every group pick, above
	// the cardio probability at day end.
	rng := &fakeRand{floats: []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.99}, ints: []int{0}}
	plan := generateExploit(p, RoutineHypertrophy, donors, 1, rng, now)

	if plan.Mode != ModeExploit {
		t.Errorf("mode = %v, want exploit", plan.Mode)
	}
	if plan.BasedOn != 3 {
		t.Errorf("based_on = %d, want 3", plan.BasedOn)
	}
	if diff := plan.Confidence - 0.9; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("confidence = %v, want mean similarity 0.9", plan.Confidence)
	}
	if plan.Sets != 4 || plan.RepsMax != 12 || plan.RestSeconds != 90 {
		t.Errorf("plan params = %d/%d/%d, want mined 4/12/90",
			plan.Sets, plan.RepsMax, plan.RestSeconds)
	}

	mined := map[string]bool{
		"Bench press": true, "Pull-ups": true, "Squat": true,
		"Overhead press": true, "Barbell curl": true,
	}
	found := false
	for _, day := range plan.Days {
		for _, ex := range day.Exercises {
			if mined[ex.Name] {
				found = true
			}
		}
	}
	if !found {
		t.Error("exploit plan contains no mined exercises")
	}
}

func TestGenerateExploitNeverAllMined(t *testing.T) {
	now := time.Now()
	p := testProfile(30, 22, profile.ExperienceIntermediate, profile.GoalGainMass, 3)

	donorPlan := Plan{
		Structure: StructureFullBody,
		Sets:      4, RepsMin: 8, RepsMax: 12, RestSeconds: 90,
		Days: []PlanDay{{
			Day: 1,
			Exercises: []Exercise{
				{Name: "Bench press", Group: GroupChest},
				{Name: "Pull-ups", Group: GroupBack},
				{Name: "Squat", Group: GroupLegs},
				{Name: "Overhead press", Group: GroupShoulders},
				{Name: "Barbell curl", Group: GroupArms},
			},
		}},
	}
	var donors []Match
	for i := 0; i < 3; i++ {
		donors = append(donors, Match{
			Record:     FeedbackRecord{Profile: p, Plan: donorPlan, Rating: 5, Timestamp: now, Satisfied: true},
			Similarity: 0.9,
		})
	}

	// Every draw lands below the mined share, so without the fresh-pick
	// swap the whole plan would reuse donor exercises.
	rng := &fakeRand{floats: []float64{0}, ints: []int{0}}
	plan := generateExploit(p, RoutineHypertrophy, donors, 1, rng, now)

	mined := map[string]bool{
		"Bench press": true, "Pull-ups": true, "Squat": true,
		"Overhead press": true, "Barbell curl": true,
	}
	fresh := 0
	for _, day := range plan.Days {
		for _, ex := range day.Exercises {
			if ex.Group != GroupCardio && !mined[ex.Name] {
				fresh++
			}
		}
	}
	if fresh == 0 {
		t.Error("plan reuses donor exercises in every slot, want at least one catalog pick")
	}
}

func TestMinePatternsTopThreePerGroup(t *testing.T) {
	mkPlan := func(names ...string) Plan {
		var exs []Exercise
		for _, n := range names {
			exs = append(exs, Exercise{Name: n, Group: GroupChest})
		}
		return Plan{Days: []PlanDay{{Exercises: exs}}}
	}

	donors := []Match{
		{Record: FeedbackRecord{Plan: mkPlan("A", "B", "C", "D")}},
		{Record: FeedbackRecord{Plan: mkPlan("A", "B", "C")}},
		{Record: FeedbackRecord{Plan: mkPlan("A", "B")}},
		{Record: FeedbackRecord{Plan: mkPlan("A")}},
	}
	mined := minePatterns(donors)
	top := mined.byGroup[GroupChest]
	if len(top) != 3 {
		t.Fatalf("got %d mined exercises, want 3", len(top))
	}
	if top[0] != "A" || top[1] != "B" || top[2] != "C" {
		t.Errorf("mined top = %v, want [A B C]", top)
	}
}

func TestMinePatternsSkipsCardio(t *testing.T) {
	donors := []Match{{Record: FeedbackRecord{Plan: Plan{Days: []PlanDay{{
		Exercises: []Exercise{{Name: "Jogging", Group: GroupCardio}},
	}}}}}}
	mined := minePatterns(donors)
	if len(mined.byGroup) != 0 {
		t.Errorf("cardio should not be mined, got %v", mined.byGroup)
	}
}

func TestSampleStringsNoDuplicates(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	rng := &fakeRand{ints: []int{3, 0, 1, 0}}
	out := sampleStrings(pool, 4, rng)
	if len(out) != 4 {
		t.Fatalf("got %d samples, want 4", len(out))
	}
	seen := make(map[string]bool)
	for _, s := range out {
		if seen[s] {
			t.Fatalf("duplicate sample %q", s)
		}
		seen[s] = true
	}
}

func TestApplyParameters(t *testing.T) {
	plan := Plan{
		Sets: 3, RepsMin: 10, RepsMax: 12, RestSeconds: 60,
		Days: []PlanDay{{Exercises: []Exercise{
			{Name: "Squat", Group: GroupLegs, Series: 3, RepsMin: 10, RepsMax: 12, Rest: "60s"},
			{Name: "Jogging", Group: GroupCardio, Duration: 20},
		}}},
	}
	applyParameters(&plan, Parameters{Sets: 5, RepsMin: 4, RepsMax: 6, RestSeconds: 180})

	if plan.Sets != 5 || plan.RepsMin != 4 || plan.RepsMax != 6 || plan.RestSeconds != 180 {
		t.Errorf("plan params not applied: %+v", plan)
	}
	lift := plan.Days[0].Exercises[0]
	if lift.Series != 5 || lift.RepsMin != 4 || lift.RepsMax != 6 || lift.Rest != "180s" {
		t.Errorf("exercise params not applied: %+v", lift)
	}
	cardio := plan.Days[0].Exercises[1]
	if cardio.Series != 0 || cardio.Duration != 20 {
		t.Errorf("cardio entry should be untouched: %+v", cardio)
	}
}

func TestCardioProbability(t *testing.T) {
	tests := []struct {
		goal profile.Goal
		want float64
	}{
		{profile.GoalLoseWeight, 0.8},
		{profile.GoalEndurance, 0.9},
		{profile.GoalStrength, 0.3},
		{profile.GoalGainMass, 0.3},
	}
	for _, tt := range tests {
		if got := cardioProbability(tt.goal); got != tt.want {
			t.Errorf("cardioProbability(%s) = %v, want %v", tt.goal, got, tt.want)
		}
	}
}
