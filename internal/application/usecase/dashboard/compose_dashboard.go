package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/usecase/goal"
	"github.com/pesawise/backend/internal/application/usecase/ledger"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// Section names a part of the dashboard backed by one store fetch.
type Section string

const (
	SectionTransactions Section = "transactions"
	SectionGoals        Section = "goals"
)

// DefaultRecentTransactions is the number of latest transactions shown on the dashboard.
const DefaultRecentTransactions = 5

// ComposeDashboardInput represents the input for composing a dashboard.
type ComposeDashboardInput struct {
	UserID    uuid.UUID
	Window    WindowSelector
	TrendDays int // Zero uses the configured default
}

// DashboardView is the aggregate view model. It is rebuilt on every request.
type DashboardView struct {
	Window             Window
	Totals             PeriodTotals
	Breakdown          Breakdown
	Categories         []CategorySlice
	Trend              []TrendPoint
	Goals              []*goal.GoalWithProgress
	RecentTransactions []*entity.Transaction
	RejectedCount      int
	Missing            []Section
}

// DashboardOptions tunes the composer.
type DashboardOptions struct {
	TrendDays          int
	RecentTransactions int
	Location           *time.Location
}

// ComposeDashboardUseCase builds the dashboard from the user's transactions and goals.
type ComposeDashboardUseCase struct {
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
	clock           adapter.Clock
	options         DashboardOptions
}

// NewComposeDashboardUseCase creates a new ComposeDashboardUseCase instance.
func NewComposeDashboardUseCase(
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	clock adapter.Clock,
	options DashboardOptions,
) *ComposeDashboardUseCase {
	if options.TrendDays <= 0 {
		options.TrendDays = DefaultTrendDays
	}
	if options.RecentTransactions <= 0 {
		options.RecentTransactions = DefaultRecentTransactions
	}
	if options.Location == nil {
		options.Location = time.UTC
	}

	return &ComposeDashboardUseCase{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		clock:           clock,
		options:         options,
	}
}

// Execute fetches both collections concurrently and assembles the view.
// A failed fetch leaves its sections empty and is listed in Missing;
// only when both fetches fail is an error returned.
func (uc *ComposeDashboardUseCase) Execute(ctx context.Context, input ComposeDashboardInput) (*DashboardView, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	var (
		txns            []*entity.Transaction
		goals           []*entity.Goal
		txnErr, goalErr error
	)

	// Fetch errors are kept per section so one failure does not cancel the
	// other fetch; only cancellation of the request itself stops both.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		txns, txnErr = uc.transactionRepo.FindByUser(groupCtx, input.UserID)
		return nil
	})
	group.Go(func() error {
		goals, goalErr = uc.goalRepo.FindByUserID(groupCtx, input.UserID)
		return nil
	})
	_ = group.Wait()

	if txnErr != nil && goalErr != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardUnavailable,
			"dashboard data could not be loaded",
			errors.Join(domainerror.ErrDashboardUnavailable, txnErr, goalErr),
		)
	}

	// Already validated; normalizes case and the empty default.
	selector, _ := ParseWindowSelector(string(input.Window))
	trendDays := input.TrendDays
	if trendDays == 0 {
		trendDays = uc.options.TrendDays
	}

	today := uc.clock.Now().In(uc.options.Location)
	view := &DashboardView{
		Window:             WindowFor(today, selector),
		Breakdown:          make(Breakdown),
		Categories:         make([]CategorySlice, 0),
		Trend:              make([]TrendPoint, 0),
		Goals:              make([]*goal.GoalWithProgress, 0),
		RecentTransactions: make([]*entity.Transaction, 0),
		Missing:            make([]Section, 0),
	}
	view.Totals = AggregatePeriod(nil, view.Window)

	if txnErr != nil {
		slog.WarnContext(ctx, "Dashboard transactions unavailable",
			"user_id", input.UserID,
			"error", txnErr,
		)
		view.Missing = append(view.Missing, SectionTransactions)
	} else {
		uc.composeLedger(view, txns, trendDays, today)
	}

	if goalErr != nil {
		slog.WarnContext(ctx, "Dashboard goals unavailable",
			"user_id", input.UserID,
			"error", goalErr,
		)
		view.Missing = append(view.Missing, SectionGoals)
	} else {
		for _, g := range goals {
			if g == nil {
				continue
			}
			view.Goals = append(view.Goals, &goal.GoalWithProgress{
				Goal:     g,
				Progress: goal.CalculateProgress(g, today),
			})
		}
	}

	return view, nil
}

func (uc *ComposeDashboardUseCase) composeLedger(view *DashboardView, txns []*entity.Transaction, trendDays int, today time.Time) {
	checked := ledger.ValidateTransactions(txns)
	valid := checked.Transactions
	view.RejectedCount = len(checked.Rejected)

	view.Totals = AggregatePeriod(valid, view.Window)
	view.Breakdown = BreakdownByCategory(FilterByKind(FilterByWindow(valid, view.Window), entity.TransactionKindExpense))
	view.Categories = view.Breakdown.Slices()
	view.Trend = CollectTrend(TrendSeries(valid, trendDays, today))
	view.RecentTransactions = latest(valid, uc.options.RecentTransactions)
}

// validateInput validates the input parameters.
func (uc *ComposeDashboardUseCase) validateInput(input ComposeDashboardInput) error {
	if input.Window != "" {
		if _, err := ParseWindowSelector(string(input.Window)); err != nil {
			return err
		}
	}

	if input.TrendDays < 0 || input.TrendDays > MaxTrendDays {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidTrendDays,
			"trend days must be between 1 and 366",
			domainerror.ErrInvalidTrendDays,
		)
	}

	return nil
}

// latest returns up to n transactions, newest date first.
func latest(txns []*entity.Transaction, n int) []*entity.Transaction {
	sorted := make([]*entity.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
