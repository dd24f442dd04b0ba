package budget

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/usecase/dashboard"
	"github.com/pesawise/backend/internal/domain/entity"
)

// OverviewLine compares one category ceiling with its spending in the current period.
type OverviewLine struct {
	Category   string
	Period     entity.BudgetPeriod
	Limit      decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage decimal.Decimal
	OverBudget bool
	// BudgetCount is how many stored budgets were summed into Limit.
	BudgetCount int
}

// GetOverviewInput represents the input for the budget overview.
type GetOverviewInput struct {
	UserID uuid.UUID
}

// GetOverviewOutput represents the budget overview.
type GetOverviewOutput struct {
	Lines      []OverviewLine
	TotalLimit decimal.Decimal
	TotalSpent decimal.Decimal
}

// GetOverviewUseCase compares budgets against current spending.
type GetOverviewUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

type lineKey struct {
	category string
	period   entity.BudgetPeriod
}

// Execute builds one line per (category, period). Duplicate budgets are summed.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	output := &GetOverviewOutput{
		Lines:      make([]OverviewLine, 0, len(budgets)),
		TotalLimit: decimal.Zero,
		TotalSpent: decimal.Zero,
	}
	if len(budgets) == 0 {
		return output, nil
	}

	now := uc.clock.Now()
	windows := map[entity.BudgetPeriod]dashboard.Window{
		entity.BudgetPeriodMonthly: dashboard.WindowFor(now, dashboard.WindowMonth),
		entity.BudgetPeriodWeekly:  dashboard.WindowFor(now, dashboard.WindowWeek),
	}

	start, end := coveringRange(windows)
	expense := entity.TransactionKindExpense
	txns, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
		Kind:      &expense,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	spent := make(map[entity.BudgetPeriod]dashboard.Breakdown, len(windows))
	for period, w := range windows {
		spent[period] = dashboard.BreakdownByCategory(dashboard.FilterByWindow(txns, w))
	}

	lines := make(map[lineKey]*OverviewLine)
	for _, b := range budgets {
		period := b.Period
		if !period.IsValid() {
			period = entity.BudgetPeriodMonthly
		}
		key := lineKey{category: b.Category, period: period}

		line, ok := lines[key]
		if !ok {
			line = &OverviewLine{
				Category: b.Category,
				Period:   period,
				Limit:    decimal.Zero,
				Spent:    spent[period][b.Category],
			}
			lines[key] = line
		}
		line.Limit = line.Limit.Add(b.Amount)
		line.BudgetCount++
	}

	for _, line := range lines {
		line.Remaining = line.Limit.Sub(line.Spent)
		line.OverBudget = line.Spent.GreaterThan(line.Limit)
		line.Percentage = decimal.Zero
		if line.Limit.IsPositive() {
			line.Percentage = line.Spent.Div(line.Limit).Mul(decimal.NewFromInt(100)).Round(2)
		}

		output.Lines = append(output.Lines, *line)
		output.TotalLimit = output.TotalLimit.Add(line.Limit)
		output.TotalSpent = output.TotalSpent.Add(line.Spent)
	}

	sort.Slice(output.Lines, func(i, j int) bool {
		if output.Lines[i].Category != output.Lines[j].Category {
			return output.Lines[i].Category < output.Lines[j].Category
		}
		return output.Lines[i].Period < output.Lines[j].Period
	})

	return output, nil
}

func coveringRange(windows map[entity.BudgetPeriod]dashboard.Window) (start, end time.Time) {
	for _, w := range windows {
		if start.IsZero() || w.Start.Before(start) {
			start = w.Start
		}
		if w.End.After(end) {
			end = w.End
		}
	}
	return start, end
}
