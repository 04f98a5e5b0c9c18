// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/jcarmona/fitbrain/internal/engine"
	"github.com/jcarmona/fitbrain/internal/profile"
)

// validate checks request bodies before they reach the engine. Profile
// fields are validated again inside profile.New; the tags here catch
// request-shape problems early with field-level messages.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ProfileRequest is the JSON shape of a user profile in requests. Age and
// training days are optional with documented defaults; an explicit zero
// for training days is respected.
type ProfileRequest struct {
	Age          *int    `json:"age" validate:"omitempty,gte=12,lte=80"`
	WeightKg     float64 `json:"weight_kg" validate:"required,gt=0"`
	HeightCm     float64 `json:"height_cm" validate:"required,gt=0"`
	Experience   string  `json:"experience" validate:"required"`
	Goal         string  `json:"goal" validate:"required"`
	TrainingDays *int    `json:"training_days" validate:"omitempty,gte=0,lte=7"`
}

// toInput converts the request to a profile input.
func (r ProfileRequest) toInput() profile.Input {
	return profile.Input{
		Age:          r.Age,
		WeightKg:     r.WeightKg,
		HeightCm:     r.HeightCm,
		Experience:   profile.Experience(r.Experience),
		Goal:         profile.Goal(r.Goal),
		TrainingDays: r.TrainingDays,
	}
}

// RecommendationRequest asks for category distributions for a profile.
type RecommendationRequest struct {
	Profile ProfileRequest `json:"profile" validate:"required"`
}

// PlanRequest asks for a generated weekly plan.
type PlanRequest struct {
	Profile ProfileRequest `json:"profile" validate:"required"`
}

// PlanResponse is a generated plan plus its predicted reception.
type PlanResponse struct {
	Plan       engine.Plan       `json:"plan"`
	Prediction engine.Prediction `json:"prediction"`
}

// PredictionRequest asks for the expected satisfaction of a proposed
// plan. Plan may be omitted to evaluate the profile's fit in general.
type PredictionRequest struct {
	Profile ProfileRequest `json:"profile" validate:"required"`
	Plan    *engine.Plan   `json:"plan"`
}

// ParametersRequest asks for inferred series/reps/rest.
type ParametersRequest struct {
	Profile ProfileRequest `json:"profile" validate:"required"`
}

// ClassificationRequest carries the user's own chronological ratings.
type ClassificationRequest struct {
	Profile ProfileRequest `json:"profile" validate:"required"`
	Ratings []int          `json:"ratings" validate:"dive,gte=1,lte=5"`
}

// AnomalyRequest carries a chronological rating history to analyze.
type AnomalyRequest struct {
	Ratings []int `json:"ratings" validate:"required,dive,gte=1,lte=5"`
}

// FeedbackRequest reports one completed feedback cycle for ingestion.
type FeedbackRequest struct {
	Profile        ProfileRequest `json:"profile" validate:"required"`
	Plan           engine.Plan    `json:"plan" validate:"required"`
	Rating         int            `json:"rating" validate:"required,gte=1,lte=5"`
	CompletedUnits int            `json:"completed_units" validate:"gte=0"`
	ScheduledUnits int            `json:"scheduled_units" validate:"gte=0"`
	Comment        string         `json:"comment" validate:"max=2000"`
}

// ReportRequest asks for the combined inference report.
type ReportRequest struct {
	Profile ProfileRequest `json:"profile" validate:"required"`
	Ratings []int          `json:"ratings" validate:"dive,gte=1,lte=5"`
}

// FeedbackResponse acknowledges a recorded feedback.
type FeedbackResponse struct {
	Recorded   bool `json:"recorded"`
	History    int  `json:"history"`
	Generation int  `json:"generation"`
}

// ErrorResponse is the JSON error body for every non-2xx response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}
