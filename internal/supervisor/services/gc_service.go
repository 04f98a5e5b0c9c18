// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is satisfied by store backends that need periodic
// maintenance (BadgerDB value-log GC).
type GarbageCollector interface {
	RunGC() error
}

// GCService runs a store's garbage collection on a fixed interval under
// supervision.
type GCService struct {
	gc       GarbageCollector
	interval time.Duration
	log      zerolog.Logger
}

// NewGCService wraps a garbage collector as a supervised service.
func NewGCService(gc GarbageCollector, interval time.Duration, log zerolog.Logger) *GCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &GCService{
		gc:       gc,
		interval: interval,
		log:      log.With().Str("component", "store-gc").Logger(),
	}
}

// Serve implements suture.Service. GC errors are logged, not fatal; a
// missed cycle only delays space reclamation.
func (s *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.gc.RunGC(); err != nil {
				s.log.Warn().Err(err).Msg("garbage collection failed")
			}
		}
	}
}

func (s *GCService) String() string { return "store-gc" }
