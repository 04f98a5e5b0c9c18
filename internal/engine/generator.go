// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jcarmona/fitbrain/internal/profile"
)

// Share of mined exercises in an exploit plan. The remainder is drawn
// fresh from the catalog so no plan is ever 100% recycled.
const minedExerciseShare = 0.7

// Cardio insertion probability per training day, by goal.
func cardioProbability(goal profile.Goal) float64 {
	switch goal {
	case profile.GoalLoseWeight:
		return 0.8
	case profile.GoalEndurance:
		return 0.9
	default:
		return 0.3
	}
}

// structureFor picks the weekly split shape and the muscle groups trained
// each day. Three or fewer days gets full-body sessions, four days an
// upper/lower rotation, five or more a body-part split.
func structureFor(days int) (Structure, [][]string) {
	switch {
	case days <= 3:
		groups := make([][]string, days)
		for i := range groups {
			groups[i] = []string{GroupChest, GroupBack, GroupLegs, GroupShoulders, GroupArms}
		}
		return StructureFullBody, groups
	case days == 4:
		return StructureUpperLower, [][]string{
			{GroupChest, GroupBack, GroupShoulders, GroupArms},
			{GroupLegs, GroupCore},
			{GroupChest, GroupBack, GroupArms},
			{GroupLegs, GroupShoulders, GroupCore},
		}
	default:
		split := [][]string{
			{GroupChest, GroupArms},
			{GroupBack},
			{GroupLegs},
			{GroupShoulders, GroupArms},
			{GroupChest, GroupBack},
			{GroupLegs, GroupCore},
		}
		if days < len(split) {
			split = split[:days]
		}
		return StructureSplit, split
	}
}

// exercisesPerGroup decides how many exercises each muscle group gets,
// given the split shape and experience tier.
func exercisesPerGroup(group string, structure Structure, exp profile.Experience) int {
	switch structure {
	case StructureFullBody:
		if exp == profile.ExperienceBeginner {
			return 1
		}
		return 2
	case StructureUpperLower:
		if group == GroupLegs || group == GroupCore {
			return 2
		}
		return 1
	default:
		if exp == profile.ExperienceAdvanced {
			return 3
		}
		return 2
	}
}

// experimentalParams samples training parameters from goal-typical ranges.
// Set counts scale with experience; mass and strength goals add one.
func experimentalParams(goal profile.Goal, exp profile.Experience, rng Rand) (sets, repsMin, repsMax, restSec int) {
	sets = 2 + exp.Ordinal()

	switch goal {
	case profile.GoalLoseWeight:
		repsMin = 12 + rng.Intn(4)
		repsMax = 15 + rng.Intn(6)
		restSec = 30 + rng.Intn(31)
	case profile.GoalGainMass:
		sets++
		repsMin = 8 + rng.Intn(3)
		repsMax = 10 + rng.Intn(3)
		restSec = 60 + rng.Intn(31)
	case profile.GoalEndurance:
		repsMin = 15 + rng.Intn(6)
		repsMax = 20 + rng.Intn(6)
		restSec = 20 + rng.Intn(26)
	default: // strength and the remaining goals train heavy
		sets++
		repsMin = 4 + rng.Intn(3)
		repsMax = 6 + rng.Intn(3)
		restSec = 120 + rng.Intn(61)
	}
	if repsMax <= repsMin {
		repsMax = repsMin + 2
	}
	return sets, repsMin, repsMax, restSec
}

// pickExercises samples n movements for a group. Beginners draw from
// compounds only; everyone else mixes compounds and isolation work.
func pickExercises(group string, n int, exp profile.Experience, rng Rand) []string {
	cat, ok := Catalog[group]
	if !ok {
		return nil
	}
	pool := cat.All()
	if exp == profile.ExperienceBeginner && len(cat.Compound) > 0 {
		pool = cat.Compound
	}
	return sampleStrings(pool, n, rng)
}

// sampleStrings draws up to n distinct elements from pool without
// replacement. The input slice is not modified.
func sampleStrings(pool []string, n int, rng Rand) []string {
	if n > len(pool) {
		n = len(pool)
	}
	tmp := make([]string, len(pool))
	copy(tmp, pool)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(len(tmp))
		out = append(out, tmp[j])
		tmp[j] = tmp[len(tmp)-1]
		tmp = tmp[:len(tmp)-1]
	}
	return out
}

func restLabel(sec int) string {
	return fmt.Sprintf("%ds", sec)
}

// generateExplore assembles a fresh weekly plan straight from the catalog
// using goal-typical experimental parameters.
func generateExplore(p profile.Profile, category RoutineCategory, generation int, rng Rand, now time.Time) Plan {
	days := p.TrainingDays
	if days <= 0 {
		days = profile.DefaultTrainingDays
	}
	structure, dayGroups := structureFor(days)
	sets, repsMin, repsMax, restSec := experimentalParams(p.Goal, p.Experience, rng)

	plan := Plan{
		ID:          uuid.NewString(),
		Category:    category,
		Structure:   structure,
		Sets:        sets,
		RepsMin:     repsMin,
		RepsMax:     repsMax,
		RestSeconds: restSec,
		Mode:        ModeExplore,
		Generation:  generation,
		GeneratedAt: now,
	}

	for i, groups := range dayGroups {
		day := PlanDay{Day: i + 1, Category: category}
		for _, group := range groups {
			n := exercisesPerGroup(group, structure, p.Experience)
			for _, name := range pickExercises(group, n, p.Experience, rng) {
				day.Exercises = append(day.Exercises, Exercise{
					Name:    name,
					Group:   group,
					Series:  sets,
					RepsMin: repsMin,
					RepsMax: repsMax,
					Rest:    restLabel(restSec),
				})
			}
		}
		if rng.Float64() < cardioProbability(p.Goal) {
			day.Exercises = append(day.Exercises, Exercise{
				Name:      CardioCatalog[rng.Intn(len(CardioCatalog))],
				Group:     GroupCardio,
				Duration:  15 + rng.Intn(16),
				Intensity: cardioIntensities[rng.Intn(len(cardioIntensities))],
			})
		}
		plan.Days = append(plan.Days, day)
	}
	return plan
}

// minedPatterns is what generateExploit learns from donor plans: the most
// common split shape, the top exercises per muscle group, and the median
// plan-level parameters.
type minedPatterns struct {
	structure   Structure
	byGroup     map[string][]string
	sets        int
	repsMin     int
	repsMax     int
	restSeconds int
	hasParams   bool
}

// minePatterns aggregates the donors' successful plans. Only non-cardio
// exercises feed the per-group lists; the top three per group survive.
func minePatterns(donors []Match) minedPatterns {
	structCount := make(map[Structure]int)
	groupCount := make(map[string]map[string]int)
	var sets, repsMin, repsMax, rests []int

	for _, d := range donors {
		pl := d.Record.Plan
		if pl.Structure != "" {
			structCount[pl.Structure]++
		}
		if pl.Sets > 0 {
			sets = append(sets, pl.Sets)
			repsMin = append(repsMin, pl.RepsMin)
			repsMax = append(repsMax, pl.RepsMax)
			rests = append(rests, pl.RestSeconds)
		}
		for _, day := range pl.Days {
			for _, ex := range day.Exercises {
				if ex.Group == GroupCardio || ex.Group == "" {
					continue
				}
				if groupCount[ex.Group] == nil {
					groupCount[ex.Group] = make(map[string]int)
				}
				groupCount[ex.Group][ex.Name]++
			}
		}
	}

	mined := minedPatterns{byGroup: make(map[string][]string)}

	best, bestN := Structure(""), 0
	for s, n := range structCount {
		if n > bestN || (n == bestN && s < best) {
			best, bestN = s, n
		}
	}
	mined.structure = best

	for group, counts := range groupCount {
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if counts[names[i]] != counts[names[j]] {
				return counts[names[i]] > counts[names[j]]
			}
			return names[i] < names[j]
		})
		if len(names) > 3 {
			names = names[:3]
		}
		mined.byGroup[group] = names
	}

	if len(sets) > 0 {
		mined.hasParams = true
		mined.sets = median(sets)
		mined.repsMin = median(repsMin)
		mined.repsMax = median(repsMax)
		mined.restSeconds = median(rests)
	}
	return mined
}

// generateExploit builds a plan from patterns mined out of the donors'
// successful plans, blending roughly 70% mined exercises with 30% fresh
// picks per muscle group. At least one exercise always comes from outside
// the donor pool. Donors without stored plans force an explore fallback
// at the caller.
func generateExploit(p profile.Profile, category RoutineCategory, donors []Match, generation int, rng Rand, now time.Time) Plan {
	mined := minePatterns(donors)

	days := p.TrainingDays
	if days <= 0 {
		days = profile.DefaultTrainingDays
	}
	structure, dayGroups := structureFor(days)
	if mined.structure != "" {
		// Donor-preferred label; the group table stays driven by days.
		structure = mined.structure
	}

	sets, repsMin, repsMax, restSec := experimentalParams(p.Goal, p.Experience, rng)
	if mined.hasParams {
		sets, repsMin, repsMax, restSec = mined.sets, mined.repsMin, mined.repsMax, mined.restSeconds
	}

	plan := Plan{
		ID:          uuid.NewString(),
		Category:    category,
		Structure:   structure,
		Sets:        sets,
		RepsMin:     repsMin,
		RepsMax:     repsMax,
		RestSeconds: restSec,
		Mode:        ModeExploit,
		BasedOn:     len(donors),
		Confidence:  meanSimilarity(donors),
		Generation:  generation,
		GeneratedAt: now,
	}

	for i, groups := range dayGroups {
		day := PlanDay{Day: i + 1, Category: category}
		for _, group := range groups {
			n := exercisesPerGroup(group, structure, p.Experience)

			var names []string
			if preferred := mined.byGroup[group]; len(preferred) > 0 && rng.Float64() < minedExerciseShare {
				names = sampleStrings(preferred, n, rng)
			} else {
				names = pickExercises(group, n, p.Experience, rng)
			}

			for _, name := range names {
				day.Exercises = append(day.Exercises, Exercise{
					Name:    name,
					Group:   group,
					Series:  sets,
					RepsMin: repsMin,
					RepsMax: repsMax,
					Rest:    restLabel(restSec),
				})
			}
		}
		if rng.Float64() < cardioProbability(p.Goal) {
			day.Exercises = append(day.Exercises, Exercise{
				Name:      CardioCatalog[rng.Intn(len(CardioCatalog))],
				Group:     GroupCardio,
				Duration:  15 + rng.Intn(16),
				Intensity: cardioIntensities[rng.Intn(len(cardioIntensities))],
			})
		}
		plan.Days = append(plan.Days, day)
	}
	ensureFreshPick(&plan, mined, p.Experience, rng)
	return plan
}

// ensureFreshPick swaps one exercise for a catalog alternative the donors
// never used when every strength exercise in the plan came from mined
// patterns. Exploit plans keep at least one exercise outside the donor
// pool whenever the catalog offers one.
func ensureFreshPick(plan *Plan, mined minedPatterns, exp profile.Experience, rng Rand) {
	used := make(map[string]bool)
	for _, names := range mined.byGroup {
		for _, name := range names {
			used[name] = true
		}
	}
	for _, day := range plan.Days {
		for _, ex := range day.Exercises {
			if ex.Group != GroupCardio && !used[ex.Name] {
				return
			}
		}
	}
	for di := range plan.Days {
		for ei := range plan.Days[di].Exercises {
			ex := &plan.Days[di].Exercises[ei]
			if ex.Group == GroupCardio {
				continue
			}
			cat, ok := Catalog[ex.Group]
			if !ok {
				continue
			}
			pool := cat.All()
			if exp == profile.ExperienceBeginner && len(cat.Compound) > 0 {
				pool = cat.Compound
			}
			var fresh []string
			for _, name := range pool {
				if !used[name] {
					fresh = append(fresh, name)
				}
			}
			if len(fresh) == 0 {
				continue
			}
			ex.Name = fresh[rng.Intn(len(fresh))]
			return
		}
	}
}

// applyParameters overwrites the plan-level and per-exercise training
// parameters with inferred ones. Cardio entries keep their own fields.
func applyParameters(plan *Plan, params Parameters) {
	plan.Sets = params.Sets
	plan.RepsMin = params.RepsMin
	plan.RepsMax = params.RepsMax
	plan.RestSeconds = params.RestSeconds
	for di := range plan.Days {
		for ei := range plan.Days[di].Exercises {
			ex := &plan.Days[di].Exercises[ei]
			if ex.Group == GroupCardio {
				continue
			}
			ex.Series = params.Sets
			ex.RepsMin = params.RepsMin
			ex.RepsMax = params.RepsMax
			ex.Rest = restLabel(params.RestSeconds)
		}
	}
}
