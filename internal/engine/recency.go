// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package engine

import (
	"math"
	"time"
)

// Recency weighting parameters. Feedback inside the grace window carries
// full weight; beyond it the weight decays exponentially down to a floor
// so very old signal fades smoothly instead of being cut off.
const (
	RecencyGraceDays   = 90
	recencyDecayRate   = 0.01
	recencyFloor       = 0.1
	recencyNeutral     = 0.5
	hoursPerDay        = 24
)

// RecencyFactor converts a feedback timestamp into a weight in [0.1, 1.0].
// A zero (missing) timestamp yields the neutral 0.5 so undated records
// neither dominate nor vanish.
func RecencyFactor(ts, now time.Time, graceDays int) float64 {
	if ts.IsZero() {
		return recencyNeutral
	}
	if graceDays <= 0 {
		graceDays = RecencyGraceDays
	}

	ageDays := now.Sub(ts).Hours() / hoursPerDay
	if ageDays <= float64(graceDays) {
		return 1.0
	}

	factor := math.Exp(-recencyDecayRate * (ageDays - float64(graceDays)))
	return math.Max(factor, recencyFloor)
}
