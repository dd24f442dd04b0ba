package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/application/adapter"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// DeleteBudgetUseCase handles budget deletion logic.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget deletion.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return fmt.Errorf("failed to find budget: %w", err)
	}

	if budget.UserID != input.UserID {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeUnauthorizedBudgetAccess,
			"not authorized to delete this budget",
			domainerror.ErrUnauthorizedBudgetAccess,
		)
	}

	if err := uc.budgetRepo.Delete(ctx, input.BudgetID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	return nil
}
