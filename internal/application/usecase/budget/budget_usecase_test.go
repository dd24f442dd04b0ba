package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/adapter/mocks"
	"github.com/pesawise/backend/internal/application/usecase/budget"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

var now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func expense(userID uuid.UUID, category string, amount int64, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:       uuid.New(),
		UserID:   userID,
		Amount:   decimal.NewFromInt(amount),
		Kind:     entity.TransactionKindExpense,
		Category: category,
		Date:     date,
		Source:   entity.TransactionSourceManual,
	}
}

func TestCreateBudgetUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		input      budget.CreateBudgetInput
		wantPeriod entity.BudgetPeriod
		wantCode   domainerror.BudgetErrorCode
	}{
		{
			name:       "defaults to monthly",
			input:      budget.CreateBudgetInput{UserID: userID, Category: " Food ", Amount: decimal.NewFromInt(5000)},
			wantPeriod: entity.BudgetPeriodMonthly,
		},
		{
			name:       "weekly",
			input:      budget.CreateBudgetInput{UserID: userID, Category: "Transport", Amount: decimal.NewFromInt(1500), Period: entity.BudgetPeriodWeekly},
			wantPeriod: entity.BudgetPeriodWeekly,
		},
		{
			name:     "missing category",
			input:    budget.CreateBudgetInput{UserID: userID, Amount: decimal.NewFromInt(100)},
			wantCode: domainerror.ErrCodeMissingBudgetCategory,
		},
		{
			name:     "zero amount",
			input:    budget.CreateBudgetInput{UserID: userID, Category: "Food", Amount: decimal.Zero},
			wantCode: domainerror.ErrCodeInvalidBudgetAmount,
		},
		{
			name:     "unknown period",
			input:    budget.CreateBudgetInput{UserID: userID, Category: "Food", Amount: decimal.NewFromInt(10), Period: "yearly"},
			wantCode: domainerror.ErrCodeInvalidBudgetPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockBudgetRepository(ctrl)
			if tt.wantCode == "" {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			}

			uc := budget.NewCreateBudgetUseCase(repo)
			got, err := uc.Execute(context.Background(), tt.input)

			if tt.wantCode != "" {
				var budgetErr *domainerror.BudgetError
				require.True(t, errors.As(err, &budgetErr))
				assert.Equal(t, tt.wantCode, budgetErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPeriod, got.Period)
			assert.Equal(t, userID, got.UserID)
			assert.NotContains(t, got.Category, " ")
		})
	}
}

func TestDeleteBudgetUseCase_Execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	stored := entity.NewBudget(owner, "Food", decimal.NewFromInt(5000), entity.BudgetPeriodMonthly)

	repo := mocks.NewMockBudgetRepository(ctrl)
	uc := budget.NewDeleteBudgetUseCase(repo)

	t.Run("not owner", func(t *testing.T) {
		repo.EXPECT().FindByID(gomock.Any(), stored.ID).Return(stored, nil)

		err := uc.Execute(context.Background(), budget.DeleteBudgetInput{BudgetID: stored.ID, UserID: uuid.New()})

		assert.ErrorIs(t, err, domainerror.ErrUnauthorizedBudgetAccess)
	})

	t.Run("not found", func(t *testing.T) {
		missing := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), missing).Return(nil, domainerror.ErrBudgetNotFound)

		err := uc.Execute(context.Background(), budget.DeleteBudgetInput{BudgetID: missing, UserID: owner})

		var budgetErr *domainerror.BudgetError
		require.True(t, errors.As(err, &budgetErr))
		assert.Equal(t, domainerror.ErrCodeBudgetNotFound, budgetErr.Code)
	})

	t.Run("owner", func(t *testing.T) {
		repo.EXPECT().FindByID(gomock.Any(), stored.ID).Return(stored, nil)
		repo.EXPECT().Delete(gomock.Any(), stored.ID).Return(nil)

		require.NoError(t, uc.Execute(context.Background(), budget.DeleteBudgetInput{BudgetID: stored.ID, UserID: owner}))
	})
}

func TestListBudgetsUseCase_NeverNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockBudgetRepository(ctrl)
	repo.EXPECT().FindByUserID(gomock.Any(), gomock.Any()).Return(nil, nil)

	out, err := budget.NewListBudgetsUseCase(repo).Execute(context.Background(), budget.ListBudgetsInput{UserID: uuid.New()})

	require.NoError(t, err)
	assert.NotNil(t, out.Budgets)
	assert.Empty(t, out.Budgets)
}

func TestGetOverviewUseCase_Execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	budgetRepo := mocks.NewMockBudgetRepository(ctrl)
	txnRepo := mocks.NewMockTransactionRepository(ctrl)

	budgetRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return([]*entity.Budget{
		entity.NewBudget(userID, "Food", decimal.NewFromInt(5000), entity.BudgetPeriodMonthly),
		entity.NewBudget(userID, "Food", decimal.NewFromInt(3000), entity.BudgetPeriodMonthly),
		entity.NewBudget(userID, "Transport", decimal.NewFromInt(2000), entity.BudgetPeriodWeekly),
	}, nil)

	txnRepo.EXPECT().
		FindByFilter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
			assert.Equal(t, day(1), *filter.StartDate)
			assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), *filter.EndDate)
			require.NotNil(t, filter.Kind)
			assert.Equal(t, entity.TransactionKindExpense, *filter.Kind)
			return []*entity.Transaction{
				expense(userID, "Food", 6000, day(5)),
				expense(userID, "Food", 1000, day(12)),
				expense(userID, "Transport", 500, day(11)),
				expense(userID, "Transport", 700, day(3)),
			}, nil
		})

	uc := budget.NewGetOverviewUseCase(budgetRepo, txnRepo, adapter.FixedClock{Time: now})
	out, err := uc.Execute(context.Background(), budget.GetOverviewInput{UserID: userID})

	require.NoError(t, err)
	require.Len(t, out.Lines, 2)

	food := out.Lines[0]
	assert.Equal(t, "Food", food.Category)
	assert.Equal(t, 2, food.BudgetCount)
	assert.True(t, food.Limit.Equal(decimal.NewFromInt(8000)))
	assert.True(t, food.Spent.Equal(decimal.NewFromInt(7000)))
	assert.True(t, food.Remaining.Equal(decimal.NewFromInt(1000)))
	assert.True(t, food.Percentage.Equal(decimal.RequireFromString("87.5")))
	assert.False(t, food.OverBudget)

	// Weekly window is Mon 10 Mar to Mon 17 Mar, so the 3 Mar ride is excluded.
	transport := out.Lines[1]
	assert.Equal(t, entity.BudgetPeriodWeekly, transport.Period)
	assert.True(t, transport.Spent.Equal(decimal.NewFromInt(500)))
	assert.True(t, transport.Percentage.Equal(decimal.NewFromInt(25)))

	assert.True(t, out.TotalLimit.Equal(decimal.NewFromInt(10000)))
	assert.True(t, out.TotalSpent.Equal(decimal.NewFromInt(7500)))
}

func TestGetOverviewUseCase_LocalMonthBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	budgetRepo := mocks.NewMockBudgetRepository(ctrl)
	txnRepo := mocks.NewMockTransactionRepository(ctrl)

	july1 := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	budgetRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return([]*entity.Budget{
		entity.NewBudget(userID, "Food", decimal.NewFromInt(2000), entity.BudgetPeriodMonthly),
	}, nil)
	txnRepo.EXPECT().
		FindByFilter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
			// Weekly window (Mon 1 Jul) and monthly window (1 Jul) start together.
			assert.Equal(t, july1, *filter.StartDate)
			assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), *filter.EndDate)
			return []*entity.Transaction{expense(userID, "Food", 500, july1)}, nil
		})

	// 22:30 UTC on 30 Jun is 01:30 on 1 Jul in Nairobi.
	clock := adapter.NewZonedClock(
		adapter.FixedClock{Time: time.Date(2024, time.June, 30, 22, 30, 0, 0, time.UTC)},
		time.FixedZone("EAT", 3*60*60),
	)
	uc := budget.NewGetOverviewUseCase(budgetRepo, txnRepo, clock)
	out, err := uc.Execute(context.Background(), budget.GetOverviewInput{UserID: userID})

	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].Spent.Equal(decimal.NewFromInt(500)))
}

func TestGetOverviewUseCase_OverBudgetAndNoBudgets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	budgetRepo := mocks.NewMockBudgetRepository(ctrl)
	txnRepo := mocks.NewMockTransactionRepository(ctrl)
	uc := budget.NewGetOverviewUseCase(budgetRepo, txnRepo, adapter.FixedClock{Time: now})

	budgetRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return([]*entity.Budget{}, nil)
	empty, err := uc.Execute(context.Background(), budget.GetOverviewInput{UserID: userID})
	require.NoError(t, err)
	assert.Empty(t, empty.Lines)

	budgetRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return([]*entity.Budget{
		entity.NewBudget(userID, "Fun", decimal.NewFromInt(1000), entity.BudgetPeriodMonthly),
	}, nil)
	txnRepo.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).Return([]*entity.Transaction{
		expense(userID, "Fun", 1500, day(14)),
	}, nil)

	out, err := uc.Execute(context.Background(), budget.GetOverviewInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].OverBudget)
	assert.True(t, out.Lines[0].Remaining.Equal(decimal.NewFromInt(-500)))
}
