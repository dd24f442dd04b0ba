package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// GoalWithProgress pairs a stored goal with its computed progress.
type GoalWithProgress struct {
	Goal     *entity.Goal
	Progress Progress
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*GoalWithProgress
}

// ListGoalsUseCase handles listing goals with their progress.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute lists all goals for the user.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	today := uc.clock.Now()
	output := &ListGoalsOutput{
		Goals: make([]*GoalWithProgress, 0, len(goals)),
	}
	for _, g := range goals {
		output.Goals = append(output.Goals, &GoalWithProgress{
			Goal:     g,
			Progress: CalculateProgress(g, today),
		})
	}

	return output, nil
}
