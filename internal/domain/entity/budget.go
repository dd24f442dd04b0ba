// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the period a budget ceiling applies to.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
)

// IsValid reports whether the period is monthly or weekly.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodWeekly
}

// Budget represents a per-category spending ceiling.
// The store does not enforce one budget per category; aggregation sums duplicates.
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  string
	Amount    decimal.Decimal
	Period    BudgetPeriod
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID uuid.UUID, category string, amount decimal.Decimal, period BudgetPeriod) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  category,
		Amount:    amount,
		Period:    period,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
