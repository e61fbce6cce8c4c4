// Package scoring holds the priority core: date normalization, urgency and
// effort scoring, composite priority, dependency cycle detection and
// suggestion explanations. Everything here is pure — the current date is an
// explicit parameter, nothing is mutated, and batches never outlive a call.
package scoring

import (
	"math"
	"time"
)

// Task is an immutable snapshot of one task inside a batch. Pointer fields
// distinguish "missing" from zero: nil EstimatedHours scores as 0 hours,
// nil Importance scores as 1.
type Task struct {
	ID             int
	Title          string
	Due            time.Time
	EstimatedHours *float64
	Importance     *int
	Dependencies   []int
}

// Weights for the composite priority formula.
type Weights struct {
	Urgency    float64
	Importance float64
	Effort     float64
	Dependency float64
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{Urgency: 0.4, Importance: 0.4, Effort: 0.15, Dependency: 0.05}
}

// Urgency maps due-date proximity to a 0-10 scale. Overdue is maximally
// urgent no matter how overdue.
func Urgency(due, today time.Time) float64 {
	daysLeft := DaysUntil(due, today)

	switch {
	case daysLeft < 0:
		return 10.0
	case daysLeft == 0:
		return 9.0
	case daysLeft <= 3:
		return 7.0
	case daysLeft <= 7:
		return 5.0
	default:
		return 3.0
	}
}

// EffortScore rewards quick wins: 10.0 / (hours + 1.0), strictly decreasing
// in hours for hours >= 0.
func EffortScore(hours float64) float64 {
	return 10.0 / (hours + 1.0)
}

// Priority computes the weighted composite score for one task, rounded to
// 3 decimals. The dependency term counts the declared list as-is, duplicates
// and unknown ids included. Each task scores independently of its siblings.
func Priority(t Task, w Weights, today time.Time) float64 {
	urgency := Urgency(t.Due, today)

	importance := 1.0
	if t.Importance != nil {
		importance = float64(*t.Importance)
	}

	hours := 0.0
	if t.EstimatedHours != nil {
		hours = *t.EstimatedHours
	}

	score := w.Urgency*urgency +
		w.Importance*importance +
		w.Effort*EffortScore(hours) +
		w.Dependency*float64(len(t.Dependencies))

	return math.Round(score*1000) / 1000
}
