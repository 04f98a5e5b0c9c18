// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package detection

// DecliningTrendDetector fires when the last three ratings are strictly
// decreasing.
type DecliningTrendDetector struct{}

func (DecliningTrendDetector) Type() AnomalyType { return AnomalyDecliningTrend }

func (DecliningTrendDetector) Check(ratings []int) *Anomaly {
	if len(ratings) < 3 {
		return nil
	}
	last := ratings[len(ratings)-3:]
	if last[0] > last[1] && last[1] > last[2] {
		return &Anomaly{
			Type:           AnomalyDecliningTrend,
			Description:    "satisfaction has been falling steadily",
			Recommendation: "review training intensity or exercise variety",
		}
	}
	return nil
}

// AbruptDropDetector fires when a satisfied user (second-to-last rating
// of 4 or higher) suddenly reports 2 or lower.
type AbruptDropDetector struct{}

func (AbruptDropDetector) Type() AnomalyType { return AnomalyAbruptDrop }

func (AbruptDropDetector) Check(ratings []int) *Anomaly {
	if len(ratings) < 2 {
		return nil
	}
	prev, last := ratings[len(ratings)-2], ratings[len(ratings)-1]
	if prev >= 4 && last <= 2 {
		return &Anomaly{
			Type:           AnomalyAbruptDrop,
			Description:    "sudden drop in satisfaction",
			Recommendation: "check for possible injury or overtraining",
		}
	}
	return nil
}

// Stagnation band: a persistent mid-level mean rating indicates the plan
// neither works nor fails outright.
const (
	stagnationLow        = 3.0
	stagnationHigh       = 3.5
	stagnationMinSamples = 5
)

// StagnationDetector fires when the mean of all ratings sits in the
// stagnation band across at least five samples.
type StagnationDetector struct{}

func (StagnationDetector) Type() AnomalyType { return AnomalyStagnation }

func (StagnationDetector) Check(ratings []int) *Anomaly {
	if len(ratings) < stagnationMinSamples {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	if mean >= stagnationLow && mean <= stagnationHigh {
		return &Anomaly{
			Type:           AnomalyStagnation,
			Description:    "satisfaction stuck at a middling level",
			Recommendation: "consider a change of approach or methodology",
		}
	}
	return nil
}
