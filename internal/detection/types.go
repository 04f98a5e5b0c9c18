// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package detection

// AnomalyType labels a detected pattern in a user's satisfaction trend.
type AnomalyType string

const (
	AnomalyDecliningTrend AnomalyType = "declining_trend"
	AnomalyAbruptDrop     AnomalyType = "abrupt_drop"
	AnomalyStagnation     AnomalyType = "stagnation"
)

// Trend states reported by the engine.
const (
	StateNormal    = "normal"
	StateAnomalous = "anomalous"
)

// Anomaly is one detected pattern with user-facing guidance.
type Anomaly struct {
	Type           AnomalyType `json:"type"`
	Description    string      `json:"description"`
	Recommendation string      `json:"recommendation"`
}

// Report is the result of analyzing one user's rating history.
type Report struct {
	State     string    `json:"state"`
	Anomalies []Anomaly `json:"anomalies"`
	Samples   int       `json:"samples"`
}

// Detector evaluates one anomaly rule over a chronologically ordered
// rating history. A nil result means the rule did not match.
type Detector interface {
	Type() AnomalyType
	Check(ratings []int) *Anomaly
}
