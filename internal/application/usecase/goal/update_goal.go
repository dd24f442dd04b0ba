package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update.
// Nil fields are left unchanged.
type UpdateGoalInput struct {
	GoalID        uuid.UUID
	UserID        uuid.UUID
	Title         *string
	Category      *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
	Status        *entity.GoalStatus
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal     *entity.Goal
	Progress Progress
}

// UpdateGoalUseCase handles goal update logic.
// Status is stored exactly as given; it is never inferred from progress.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalTitle,
				"title is required",
				domainerror.ErrMissingGoalTitle,
			)
		}
		goal.Title = title
	}

	if input.Category != nil {
		goal.Category = *input.Category
		if strings.TrimSpace(goal.Category) == "" {
			goal.Category = entity.DefaultCategory
		}
	}

	if input.TargetAmount != nil {
		if !input.TargetAmount.IsPositive() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTargetAmount,
				"target amount must be greater than zero",
				domainerror.ErrInvalidTargetAmount,
			)
		}
		goal.TargetAmount = *input.TargetAmount
	}

	if input.CurrentAmount != nil {
		if input.CurrentAmount.IsNegative() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidCurrentAmount,
				"current amount must not be negative",
				domainerror.ErrInvalidCurrentAmount,
			)
		}
		goal.CurrentAmount = *input.CurrentAmount
	}

	if input.TargetDate != nil {
		goal.TargetDate = entity.CalendarDate(*input.TargetDate)
	}

	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidGoalStatus,
				"status must be 'active', 'paused', or 'completed'",
				domainerror.ErrInvalidGoalStatus,
			)
		}
		goal.Status = *input.Status
	}

	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{
		Goal:     goal,
		Progress: CalculateProgress(goal, uc.clock.Now()),
	}, nil
}

// findOwnedGoal loads a goal and checks that it belongs to userID.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to access this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	return goal, nil
}
