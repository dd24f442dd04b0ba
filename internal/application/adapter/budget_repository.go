// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_budget_repository.go -package=mocks -source=budget_repository.go BudgetRepository

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserID retrieves all budgets for a given user ordered by category.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// Delete removes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
