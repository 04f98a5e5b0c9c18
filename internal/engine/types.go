// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"context"
	"time"

	"github.com/jcarmona/fitbrain/internal/profile"
)

// RoutineCategory labels the dominant style of a weekly routine.
type RoutineCategory string

const (
	RoutineStrength    RoutineCategory = "strength"
	RoutineHypertrophy RoutineCategory = "hypertrophy"
	RoutineFullBody    RoutineCategory = "fullbody"
	RoutineCardio      RoutineCategory = "cardio"
	RoutineHIIT        RoutineCategory = "hiit"
	RoutineYoga        RoutineCategory = "yoga"
)

// DietCategory labels the caloric strategy of a nutrition plan.
type DietCategory string

const (
	DietDeficit       DietCategory = "deficit"
	DietSurplus       DietCategory = "surplus"
	DietMaintenance   DietCategory = "maintenance"
	DietRecomposition DietCategory = "recomposition"
)

// GenerationMode records which strategy produced a plan.
type GenerationMode string

const (
	ModeExplore GenerationMode = "explore"
	ModeExploit GenerationMode = "exploit"
)

// Structure is the weekly split shape chosen for a plan.
type Structure string

const (
	StructureFullBody   Structure = "fullbody"
	StructureUpperLower Structure = "upper_lower"
	StructureSplit      Structure = "split"
)

// Exercise is a single prescribed exercise within a plan day.
// Cardio entries use DurationMin and Intensity instead of series/reps.
type Exercise struct {
	Name      string `json:"name"`
	Group     string `json:"group"`
	Series    int    `json:"series,omitempty"`
	RepsMin   int    `json:"reps_min,omitempty"`
	RepsMax   int    `json:"reps_max,omitempty"`
	Rest      string `json:"rest,omitempty"`
	Duration  int    `json:"duration_min,omitempty"`
	Intensity string `json:"intensity,omitempty"`
}

// PlanDay is one training day within a weekly plan.
type PlanDay struct {
	Day       int             `json:"day"`
	Category  RoutineCategory `json:"category"`
	Exercises []Exercise      `json:"exercises"`
}

// Plan is a generated weekly plan. The engine stores plans verbatim inside
// feedback records for later pattern mining; it never re-derives them.
type Plan struct {
	ID          string          `json:"id"`
	Category    RoutineCategory `json:"category"`
	Structure   Structure       `json:"structure"`
	Days        []PlanDay       `json:"days"`
	Sets        int             `json:"sets"`
	RepsMin     int             `json:"reps_min"`
	RepsMax     int             `json:"reps_max"`
	RestSeconds int             `json:"rest_seconds"`
	Mode        GenerationMode  `json:"mode"`
	BasedOn     int             `json:"based_on"`
	Confidence  float64         `json:"confidence"`
	Generation  int             `json:"generation"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// ExerciseCount returns the number of prescribed exercises across all days.
func (p *Plan) ExerciseCount() int {
	n := 0
	for _, d := range p.Days {
		n += len(d.Exercises)
	}
	return n
}

// Thresholds for the derived feedback metrics.
const (
	satisfiedMinRating = 4
	adherentMinRate    = 0.7
)

// FeedbackRecord captures one completed feedback cycle. Records are
// immutable once appended; the ordered history in State is the sole
// mutation path.
type FeedbackRecord struct {
	Profile        profile.Profile `json:"profile"`
	Plan           Plan            `json:"plan"`
	Rating         int             `json:"rating"`
	CompletedUnits int             `json:"completed_units"`
	ScheduledUnits int             `json:"scheduled_units"`
	Comment        string          `json:"comment,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
	Satisfied      bool            `json:"satisfied"`
	Adherent       bool            `json:"adherent"`
}

// newFeedbackRecord derives the satisfied/adherent flags from the raw
// rating and adherence counts. Zero scheduled units yields adherent=false
// rather than a division by zero.
func newFeedbackRecord(p profile.Profile, plan Plan, rating, completed, scheduled int, comment string, now time.Time) FeedbackRecord {
	adherent := scheduled > 0 && float64(completed)/float64(scheduled) >= adherentMinRate
	return FeedbackRecord{
		Profile:        p,
		Plan:           plan,
		Rating:         rating,
		CompletedUnits: completed,
		ScheduledUnits: scheduled,
		Comment:        comment,
		Timestamp:      now,
		Satisfied:      rating >= satisfiedMinRating,
		Adherent:       adherent,
	}
}

// PatternRecord is a stored successful plan used as training signal.
type PatternRecord struct {
	Plan      Plan      `json:"plan"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// PatternKey builds the (experience, goal) key under which successful
// plans are grouped. Keys are plain strings so the state document stays a
// flat JSON object.
func PatternKey(exp profile.Experience, goal profile.Goal) string {
	return string(exp) + "_" + string(goal)
}

// Exploration factor bounds and adjustment steps. Success while
// exploiting narrows exploration, failure widens it.
const (
	ExplorationMin      = 0.1
	ExplorationMax      = 0.4
	ExplorationInitial  = 0.2
	explorationDecrease = 0.01
	explorationIncrease = 0.02
)

// MetricSample pairs a generation counter with an observed rating, used
// only for reporting segmentation.
type MetricSample struct {
	Generation int       `json:"generation"`
	Rating     int       `json:"rating"`
	Timestamp  time.Time `json:"timestamp"`
}

// generationStride is how many feedback records advance the generation
// counter by one.
const generationStride = 10

// State is the persisted learning state. A single instance is owned by the
// Engine; every mutation goes through Ingest and is written back to the
// Store before Ingest returns.
type State struct {
	History           []FeedbackRecord           `json:"history"`
	Patterns          map[string][]PatternRecord `json:"patterns"`
	ComboStats        map[string]map[string]int  `json:"combo_stats"`
	Generation        int                        `json:"generation"`
	ExplorationFactor float64                    `json:"exploration_factor"`
	Metrics           []MetricSample             `json:"metrics"`
}

// NewState returns an empty learning state with default exploration.
func NewState() *State {
	return &State{
		History:           make([]FeedbackRecord, 0),
		Patterns:          make(map[string][]PatternRecord),
		ComboStats:        make(map[string]map[string]int),
		ExplorationFactor: ExplorationInitial,
	}
}

// normalize repairs a state loaded from storage: nil maps from older or
// hand-edited documents become empty ones and the exploration factor is
// clamped back into its bounds.
func (s *State) normalize() {
	if s.History == nil {
		s.History = make([]FeedbackRecord, 0)
	}
	if s.Patterns == nil {
		s.Patterns = make(map[string][]PatternRecord)
	}
	if s.ComboStats == nil {
		s.ComboStats = make(map[string]map[string]int)
	}
	if s.ExplorationFactor < ExplorationMin || s.ExplorationFactor > ExplorationMax {
		s.ExplorationFactor = ExplorationInitial
	}
}

// Store persists the learning state as a whole document. Implementations
// live in internal/store; the interface is defined here so the engine does
// not depend on a concrete backend (same decoupling the data-provider
// interface gives the recommendation layer).
type Store interface {
	// Load reads the persisted state. A missing or corrupt document yields
	// an empty default state, never an error: the engine must start.
	Load(ctx context.Context) (*State, error)

	// Save rewrites the full state document. Errors must be surfaced: a
	// failed save during ingestion means the feedback was not recorded.
	Save(ctx context.Context, state *State) error
}

// Rand is the randomness source behind plan generation. It is an interface
// so tests can force the explore/exploit branch and fix sampling.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}
