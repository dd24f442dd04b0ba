package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// MaxTitleLength is the maximum allowed length for goal titles.
const MaxTitleLength = 120

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID        uuid.UUID
	Title         string
	Category      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal     *entity.Goal
	Progress Progress
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	category := input.Category
	if strings.TrimSpace(category) == "" {
		category = entity.DefaultCategory
	}

	goal := entity.NewGoal(
		input.UserID,
		strings.TrimSpace(input.Title),
		category,
		input.TargetAmount,
		input.CurrentAmount,
		input.TargetDate,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal:     goal,
		Progress: CalculateProgress(goal, uc.clock.Now()),
	}, nil
}

// validateInput validates the input parameters.
func (uc *CreateGoalUseCase) validateInput(input CreateGoalInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalTitle,
			"title is required",
			domainerror.ErrMissingGoalTitle,
		)
	}
	if len(title) > MaxTitleLength {
		return domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalTitle,
			fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
			nil,
		)
	}

	if !input.TargetAmount.IsPositive() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}

	if input.CurrentAmount.IsNegative() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidCurrentAmount,
			"current amount must not be negative",
			domainerror.ErrInvalidCurrentAmount,
		)
	}

	if input.TargetDate.IsZero() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeMissingTargetDate,
			"target date is required",
			domainerror.ErrMissingTargetDate,
		)
	}

	return nil
}
