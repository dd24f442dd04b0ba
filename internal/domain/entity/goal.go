// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus is user-managed metadata; it is never derived from progress.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
)

// IsValid reports whether the status is one of the known statuses.
func (s GoalStatus) IsValid() bool {
	return s == GoalStatusActive || s == GoalStatusPaused || s == GoalStatusCompleted
}

// Goal represents a savings or spending target with a deadline.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Category      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
	Status        GoalStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new active Goal entity.
func NewGoal(
	userID uuid.UUID,
	title, category string,
	targetAmount, currentAmount decimal.Decimal,
	targetDate time.Time,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		Category:      category,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    CalendarDate(targetDate),
		Status:        GoalStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
