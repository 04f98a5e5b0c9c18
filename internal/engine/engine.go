// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

// Package engine implements the adaptive feedback and inference core:
// profile similarity search, recency-weighted category scoring,
// exploration/exploitation plan generation, satisfaction prediction,
// parameter inference, user classification, and the feedback ingestion
// loop that updates the persisted learning state.
package engine

import (
	"context"
	"fmt"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jcarmona/fitbrain/internal/metrics"
	"github.com/jcarmona/fitbrain/internal/profile"
)

// Inferred parameters are applied to generated plans only above this
// confidence; below it the generator's own parameters stand.
const applyParamsMinConfidence = 0.6

// Valid rating bounds for ingestion.
const (
	RatingMin = 1
	RatingMax = 5
)

// ErrInvalidRating rejects out-of-range feedback ratings.
var ErrInvalidRating = fmt.Errorf("rating must be between %d and %d", RatingMin, RatingMax)

// Engine owns the learning state. All reads go through an RWMutex; Ingest
// is the sole writer and persists through the Store before publishing the
// mutation.
type Engine struct {
	mu    sync.RWMutex
	state *State

	store     Store
	rng       Rand
	now       func() time.Time
	graceDays int
	log       zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the randomness source, used by tests to force the
// explore or exploit branch.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRecencyGrace overrides how many days feedback keeps full weight
// before the recency decay starts.
func WithRecencyGrace(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.graceDays = days
		}
	}
}

type systemRand struct{}

func (systemRand) Float64() float64 { return mrand.Float64() }
func (systemRand) Intn(n int) int   { return mrand.IntN(n) }

// New loads the persisted learning state and returns a ready engine. A
// missing or corrupt state document comes back as empty defaults from the
// store, so New only fails on hard storage errors.
func New(ctx context.Context, store Store, log zerolog.Logger, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:     store,
		rng:       systemRand{},
		now:       time.Now,
		graceDays: RecencyGraceDays,
		log:       log.With().Str("component", "engine").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading learning state: %w", err)
	}
	state.normalize()
	e.state = state

	metrics.SetGeneration(state.Generation)
	metrics.SetExplorationFactor(state.ExplorationFactor)

	e.log.Info().
		Int("history", len(state.History)).
		Int("pattern_keys", len(state.Patterns)).
		Int("generation", state.Generation).
		Float64("exploration_factor", state.ExplorationFactor).
		Msg("learning state loaded")
	return e, nil
}

// Recommend scores routine and diet categories for the profile and
// returns the full distributions with the best pick in each.
func (e *Engine) Recommend(p profile.Profile) Recommendation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	now := e.now()
	routineScores := scoreRoutines(p, e.state.History, now, e.graceDays)
	dietScores := scoreDiets(p, e.state.History, now, e.graceDays)

	routine, rScore := bestRoutine(routineScores)
	diet, dScore := bestDiet(dietScores)

	return Recommendation{
		Routine:            routine,
		RoutineConfidence:  rScore,
		RoutineExplanation: fmt.Sprintf("%s scored %.0f%% for a %s BMI profile pursuing %s", routine, rScore*100, p.BMIBand, p.Goal),
		Diet:               diet,
		DietConfidence:     dScore,
		DietExplanation:    fmt.Sprintf("%s scored %.0f%% for a %s BMI profile pursuing %s", diet, dScore*100, p.BMIBand, p.Goal),
		RoutineScores:      routineScores,
		DietScores:         dietScores,
	}
}

// GeneratePlan assembles a weekly plan for the profile. The engine
// explores with probability equal to the exploration factor, otherwise it
// exploits the successful plans of the most similar satisfied users. High
// confidence inferred parameters override the generated ones, and the
// returned prediction estimates how the user will rate the result.
func (e *Engine) GeneratePlan(p profile.Profile) (Plan, Prediction) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	now := e.now()
	category, _ := bestRoutine(scoreRoutines(p, e.state.History, now, e.graceDays))
	donors := e.donors(p)

	explore := e.rng.Float64() < e.state.ExplorationFactor
	var plan Plan
	if explore || len(donors) == 0 {
		plan = generateExplore(p, category, e.state.Generation, e.rng, now)
	} else {
		plan = generateExploit(p, category, donors, e.state.Generation, e.rng, now)
	}

	if params := inferParameters(p, e.state.History); params.Confidence >= applyParamsMinConfidence {
		applyParameters(&plan, params)
	}

	pred := predictSatisfaction(p, &plan, e.state)

	metrics.PlanGenerated(string(plan.Mode))
	metrics.ObservePrediction(pred.Score, pred.Confidence)

	e.log.Debug().
		Str("mode", string(plan.Mode)).
		Str("category", string(plan.Category)).
		Int("donors", plan.BasedOn).
		Float64("predicted", pred.Score).
		Msg("plan generated")
	return plan, pred
}

// donors returns the top satisfied matches whose plans can seed an
// exploit generation. Caller must hold at least the read lock.
func (e *Engine) donors(p profile.Profile) []Match {
	satisfied := make([]FeedbackRecord, 0)
	for _, rec := range e.state.History {
		if rec.Satisfied && len(rec.Plan.Days) > 0 {
			satisfied = append(satisfied, rec)
		}
	}
	return findSimilar(p, satisfied, SimilarityThreshold, topKPatterns)
}

// Predict estimates the satisfaction the profile would report for the
// proposed plan. A nil plan evaluates the profile's fit in general.
func (e *Engine) Predict(p profile.Profile, plan *Plan) Prediction {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pred := predictSatisfaction(p, plan, e.state)
	metrics.ObservePrediction(pred.Score, pred.Confidence)
	return pred
}

// InferParameters mines series/reps/rest from successful similar users,
// falling back to goal heuristics when no donors qualify.
func (e *Engine) InferParameters(p profile.Profile) Parameters {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return inferParameters(p, e.state.History)
}

// Classify tiers a user from their personal rating history.
func (e *Engine) Classify(ratings []int) Classification {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return classifyUser(ratings, e.state.Generation)
}

// Stats returns aggregate statistics over the learning state.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return computeStats(e.state)
}

// Report bundles recommendation, prediction, parameters, classification
// and system statistics for one profile into a single response.
func (e *Engine) Report(p profile.Profile, ratings []int) Report {
	e.mu.RLock()
	defer e.mu.RUnlock()

	now := e.now()
	routineScores := scoreRoutines(p, e.state.History, now, e.graceDays)
	dietScores := scoreDiets(p, e.state.History, now, e.graceDays)
	routine, rScore := bestRoutine(routineScores)
	diet, dScore := bestDiet(dietScores)

	return Report{
		Recommendation: Recommendation{
			Routine:            routine,
			RoutineConfidence:  rScore,
			RoutineExplanation: fmt.Sprintf("%s scored %.0f%% for a %s BMI profile pursuing %s", routine, rScore*100, p.BMIBand, p.Goal),
			Diet:               diet,
			DietConfidence:     dScore,
			DietExplanation:    fmt.Sprintf("%s scored %.0f%% for a %s BMI profile pursuing %s", diet, dScore*100, p.BMIBand, p.Goal),
			RoutineScores:      routineScores,
			DietScores:         dietScores,
		},
		Prediction:     predictSatisfaction(p, nil, e.state),
		Parameters:     inferParameters(p, e.state.History),
		Classification: classifyUser(ratings, e.state.Generation),
		Stats:          computeStats(e.state),
		GeneratedAt:    now,
	}
}

// Ingest records one feedback cycle: append to history, store the pattern
// and combination stats when the user was satisfied, adjust the
// exploration factor, advance the generation counter every tenth record,
// and persist the whole state. The mutation is applied to a copy and only
// published after the save succeeds, so a failed persist leaves the
// in-memory state untouched and is returned to the caller.
func (e *Engine) Ingest(ctx context.Context, p profile.Profile, plan Plan, rating, completed, scheduled int, comment string) error {
	if rating < RatingMin || rating > RatingMax {
		return ErrInvalidRating
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	next := e.state.clone()

	rec := newFeedbackRecord(p, plan, rating, completed, scheduled, comment, now)
	next.History = append(next.History, rec)

	if rec.Satisfied {
		key := PatternKey(p.Experience, p.Goal)
		next.Patterns[key] = append(next.Patterns[key], PatternRecord{
			Plan:      plan,
			Rating:    rating,
			Timestamp: now,
		})
		for _, day := range plan.Days {
			for _, ex := range day.Exercises {
				if ex.Group == GroupCardio || ex.Group == "" {
					continue
				}
				if next.ComboStats[ex.Group] == nil {
					next.ComboStats[ex.Group] = make(map[string]int)
				}
				next.ComboStats[ex.Group][ex.Name]++
			}
		}
	}

	switch {
	case plan.Mode == ModeExploit && rating >= satisfiedMinRating:
		next.ExplorationFactor = max(ExplorationMin, next.ExplorationFactor-explorationDecrease)
	case rating <= 2:
		next.ExplorationFactor = min(ExplorationMax, next.ExplorationFactor+explorationIncrease)
	}

	next.Metrics = append(next.Metrics, MetricSample{
		Generation: next.Generation,
		Rating:     rating,
		Timestamp:  now,
	})

	if len(next.History)%generationStride == 0 {
		next.Generation++
	}

	if err := e.store.Save(ctx, next); err != nil {
		metrics.RecordStoreSaveError()
		e.log.Error().Err(err).Msg("persisting learning state failed, feedback not recorded")
		return fmt.Errorf("persisting learning state: %w", err)
	}
	e.state = next

	metrics.FeedbackIngested(rating)
	metrics.SetGeneration(next.Generation)
	metrics.SetExplorationFactor(next.ExplorationFactor)

	e.log.Info().
		Int("rating", rating).
		Bool("satisfied", rec.Satisfied).
		Bool("adherent", rec.Adherent).
		Str("mode", string(plan.Mode)).
		Int("history", len(next.History)).
		Int("generation", next.Generation).
		Float64("exploration_factor", next.ExplorationFactor).
		Msg("feedback ingested")
	return nil
}

// clone deep-copies the state so Ingest can stage a mutation and publish
// it only after the persist succeeds. Records themselves are immutable and
// shared.
func (s *State) clone() *State {
	c := &State{
		History:           make([]FeedbackRecord, len(s.History), len(s.History)+1),
		Patterns:          make(map[string][]PatternRecord, len(s.Patterns)),
		ComboStats:        make(map[string]map[string]int, len(s.ComboStats)),
		Generation:        s.Generation,
		ExplorationFactor: s.ExplorationFactor,
		Metrics:           make([]MetricSample, len(s.Metrics), len(s.Metrics)+1),
	}
	copy(c.History, s.History)
	copy(c.Metrics, s.Metrics)
	for k, v := range s.Patterns {
		recs := make([]PatternRecord, len(v), len(v)+1)
		copy(recs, v)
		c.Patterns[k] = recs
	}
	for group, counts := range s.ComboStats {
		inner := make(map[string]int, len(counts))
		for name, n := range counts {
			inner[name] = n
		}
		c.ComboStats[group] = inner
	}
	return c
}
