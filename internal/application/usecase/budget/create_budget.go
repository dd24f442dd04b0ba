// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// MaxCategoryLength is the maximum allowed length for budget categories.
const MaxCategoryLength = 100

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID   uuid.UUID
	Category string
	Amount   decimal.Decimal
	Period   entity.BudgetPeriod
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget creation.
// A second budget for the same category is stored as-is; the overview sums them.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*entity.Budget, error) {
	if input.Period == "" {
		input.Period = entity.BudgetPeriodMonthly
	}

	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	budget := entity.NewBudget(input.UserID, strings.TrimSpace(input.Category), input.Amount, input.Period)

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return budget, nil
}

// validateInput validates the input parameters.
func (uc *CreateBudgetUseCase) validateInput(input CreateBudgetInput) error {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetCategory,
			"category is required",
			domainerror.ErrMissingBudgetCategory,
		)
	}
	if len(category) > MaxCategoryLength {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetCategory,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength),
			nil,
		)
	}

	if !input.Amount.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	if !input.Period.IsValid() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be monthly or weekly",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	return nil
}
