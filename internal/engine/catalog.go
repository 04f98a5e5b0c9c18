// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

// Muscle group names used as catalog and combo-stat keys. Cardio is a
// pseudo-group: its entries carry duration/intensity instead of sets.
const (
	GroupChest     = "chest"
	GroupBack      = "back"
	GroupLegs      = "legs"
	GroupShoulders = "shoulders"
	GroupArms      = "arms"
	GroupCore      = "core"
	GroupCardio    = "cardio"
)

// GroupCatalog holds the seed exercises for one muscle group, split into
// compound and isolation movements. Beginners are biased toward compounds.
type GroupCatalog struct {
	Compound  []string
	Isolation []string
}

// All returns the full exercise list for the group.
func (g GroupCatalog) All() []string {
	all := make([]string, 0, len(g.Compound)+len(g.Isolation))
	all = append(all, g.Compound...)
	all = append(all, g.Isolation...)
	return all
}

// Catalog is the static seed knowledge the generator draws from when it
// explores. It is designer-set data, not learned state.
var Catalog = map[string]GroupCatalog{
	GroupChest: {
		Compound:  []string{"Bench press", "Incline press", "Parallel bar dips", "Decline press"},
		Isolation: []string{"Dumbbell flyes", "Cable crossovers", "Pullover", "Dumbbell press"},
	},
	GroupBack: {
		Compound:  []string{"Pull-ups", "Deadlift", "Barbell row", "Seated cable row"},
		Isolation: []string{"Lat pulldown", "One-arm dumbbell row", "Face pulls", "Straight-arm pullover"},
	},
	GroupLegs: {
		Compound:  []string{"Squat", "Leg press", "Romanian deadlift", "Bulgarian split squat"},
		Isolation: []string{"Leg extensions", "Leg curl", "Calf raises", "Hip thrust"},
	},
	GroupShoulders: {
		Compound:  []string{"Overhead press", "Arnold press", "Upright row"},
		Isolation: []string{"Lateral raises", "Front raises", "Reverse flyes", "Face pulls"},
	},
	GroupArms: {
		Compound:  []string{"Close-grip bench press", "Close-grip pull-ups"},
		Isolation: []string{"Barbell curl", "Triceps extensions", "Hammer curl", "Concentration curl", "Triceps dips"},
	},
	GroupCore: {
		Compound: []string{"Plank", "Crunches", "Leg raises", "Russian twists"},
	},
}

// CardioCatalog lists the cardio options inserted into weight-loss and
// endurance plans.
var CardioCatalog = []string{
	"Walking", "Jogging", "HIIT circuit", "Cycling",
	"Rowing machine", "Elliptical", "Stair climber", "Sprints",
}

// cardioIntensities are the sampled intensity labels for cardio entries.
var cardioIntensities = []string{"moderate", "high", "hiit"}
