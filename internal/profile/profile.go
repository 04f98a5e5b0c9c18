// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

// Package profile defines the normalized numeric representation of a user
// consumed by the inference engine. A Profile is created once per session
// from raw application input; derived fields (BMI, BMI band) are computed
// at construction and the struct is treated as immutable afterwards.
package profile

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Experience is the self-reported training experience tier.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Ordinal returns the numeric encoding used by the similarity metric
// (beginner=1, intermediate=2, advanced=3). Unknown values map to 2 so a
// malformed record degrades to the middle of the scale instead of skewing
// distances.
func (e Experience) Ordinal() int {
	switch e {
	case ExperienceBeginner:
		return 1
	case ExperienceIntermediate:
		return 2
	case ExperienceAdvanced:
		return 3
	default:
		return 2
	}
}

// Valid reports whether the experience tier is a known value.
func (e Experience) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Goal is the user's stated training objective.
type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalGainMass   Goal = "gain_mass"
	GoalEndurance  Goal = "endurance"
	GoalStrength   Goal = "strength"
	GoalHealth     Goal = "health"
	GoalRoutine    Goal = "routine"
	GoalNew        Goal = "new"
)

// Valid reports whether the goal is a known value.
func (g Goal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalGainMass, GoalEndurance, GoalStrength,
		GoalHealth, GoalRoutine, GoalNew:
		return true
	}
	return false
}

// BMIBand is the categorical bucket derived from body-mass index.
type BMIBand string

const (
	BMIBandLow        BMIBand = "low"
	BMIBandNormal     BMIBand = "normal"
	BMIBandOverweight BMIBand = "overweight"
	BMIBandObese      BMIBand = "obese"
)

// BMI band thresholds (WHO cut-offs).
const (
	bmiLowUpper        = 18.5
	bmiNormalUpper     = 25.0
	bmiOverweightUpper = 30.0
)

// BandForBMI maps a body-mass index to its categorical band.
func BandForBMI(bmi float64) BMIBand {
	switch {
	case bmi < bmiLowUpper:
		return BMIBandLow
	case bmi < bmiNormalUpper:
		return BMIBandNormal
	case bmi < bmiOverweightUpper:
		return BMIBandOverweight
	default:
		return BMIBandObese
	}
}

// Documented defaults applied to absent optional fields before validation.
const (
	DefaultAge          = 30
	DefaultTrainingDays = 4
)

// Input carries the raw profile fields supplied by the surrounding
// application. Optional fields are pointers so that "absent" can be
// distinguished from an explicit zero (a user may genuinely schedule zero
// training days).
type Input struct {
	Age          *int       `json:"age,omitempty"`
	WeightKg     float64    `json:"weight_kg"`
	HeightCm     float64    `json:"height_cm"`
	Experience   Experience `json:"experience"`
	Goal         Goal       `json:"goal"`
	TrainingDays *int       `json:"training_days,omitempty"`
}

// Profile is the normalized user representation. BMI and BMIBand are
// derived; the invariant bmi = weight_kg / (height_m)^2 holds by
// construction.
type Profile struct {
	Age          int        `json:"age" validate:"min=12,max=80"`
	WeightKg     float64    `json:"weight_kg" validate:"min=35,max=150"`
	HeightCm     float64    `json:"height_cm" validate:"min=130,max=210"`
	BMI          float64    `json:"bmi"`
	BMIBand      BMIBand    `json:"bmi_band"`
	Experience   Experience `json:"experience"`
	Goal         Goal       `json:"goal"`
	TrainingDays int        `json:"training_days" validate:"min=0,max=7"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New builds a Profile from raw input. Absent optional fields receive the
// documented defaults; out-of-range or unknown values are rejected with a
// descriptive error rather than silently coerced.
func New(in Input) (Profile, error) {
	p := Profile{
		Age:          DefaultAge,
		WeightKg:     in.WeightKg,
		HeightCm:     in.HeightCm,
		Experience:   in.Experience,
		Goal:         in.Goal,
		TrainingDays: DefaultTrainingDays,
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.TrainingDays != nil {
		p.TrainingDays = *in.TrainingDays
	}

	if !p.Experience.Valid() {
		return Profile{}, fmt.Errorf("profile: unknown experience tier %q", p.Experience)
	}
	if !p.Goal.Valid() {
		return Profile{}, fmt.Errorf("profile: unknown goal %q", p.Goal)
	}

	heightM := p.HeightCm / 100
	if heightM <= 0 {
		return Profile{}, fmt.Errorf("profile: height must be positive, got %.1fcm", p.HeightCm)
	}
	p.BMI = p.WeightKg / (heightM * heightM)
	p.BMIBand = BandForBMI(p.BMI)

	if err := validate.Struct(p); err != nil {
		return Profile{}, fmt.Errorf("profile: %w", err)
	}
	return p, nil
}
