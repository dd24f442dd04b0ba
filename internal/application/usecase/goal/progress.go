// Package goal contains goal progress calculation and goal use cases.
package goal

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/domain/entity"
)

// Classification describes where a goal stands, derived from amounts and dates only.
// It never reads or rewrites the stored status.
type Classification string

const (
	ClassificationInvalid   Classification = "invalid"
	ClassificationCompleted Classification = "completed"
	ClassificationOverdue   Classification = "overdue"
	ClassificationOnTrack   Classification = "on_track"
)

// Progress is the computed progress of one goal.
type Progress struct {
	GoalID         uuid.UUID
	Ratio          float64 // current / target, unclamped
	DisplayRatio   float64 // Ratio clamped to [0, 1] for rendering
	Percent        float64 // Ratio as a percentage, two decimals
	Completed      bool
	Valid          bool // false when the target is not positive
	Classification Classification
	Remaining      decimal.Decimal
	DaysLeft       int // negative once the target date has passed
}

var hundred = decimal.NewFromInt(100)

// CalculateProgress computes the progress of a goal as of today.
// A non-positive target yields a zero ratio flagged invalid instead of dividing.
func CalculateProgress(goal *entity.Goal, today time.Time) Progress {
	progress := Progress{
		GoalID:         goal.ID,
		Classification: ClassificationInvalid,
		Remaining:      decimal.Zero,
		DaysLeft:       daysUntil(today, goal.TargetDate),
	}

	if !goal.TargetAmount.IsPositive() {
		return progress
	}

	ratio := goal.CurrentAmount.Div(goal.TargetAmount)
	progress.Valid = true
	progress.Ratio, _ = ratio.Float64()
	progress.Percent, _ = ratio.Mul(hundred).Round(2).Float64()
	progress.DisplayRatio = math.Max(0, math.Min(1, progress.Ratio))
	progress.Completed = ratio.GreaterThanOrEqual(decimal.NewFromInt(1))

	if remaining := goal.TargetAmount.Sub(goal.CurrentAmount); remaining.IsPositive() {
		progress.Remaining = remaining
	}

	switch {
	case progress.Completed:
		progress.Classification = ClassificationCompleted
	case !goal.TargetDate.IsZero() && progress.DaysLeft < 0:
		progress.Classification = ClassificationOverdue
	default:
		progress.Classification = ClassificationOnTrack
	}

	return progress
}

// CalculateAll computes progress for every goal, preserving order.
func CalculateAll(goals []*entity.Goal, today time.Time) []Progress {
	progress := make([]Progress, 0, len(goals))
	for _, g := range goals {
		if g == nil {
			continue
		}
		progress = append(progress, CalculateProgress(g, today))
	}
	return progress
}

func daysUntil(today, target time.Time) int {
	if target.IsZero() {
		return 0
	}
	diff := entity.CalendarDate(target).Sub(entity.CalendarDate(today))
	return int(diff.Hours() / 24)
}
