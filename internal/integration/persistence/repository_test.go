package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/persistence"
	"github.com/pesawise/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTxn(userID uuid.UUID, kind entity.TransactionKind, amount, category string, d time.Time) *entity.Transaction {
	return entity.NewTransaction(userID, decimal.RequireFromString(amount), kind, category, "", d, entity.TransactionSourceManual)
}

func TestTransactionRepository_FilterAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewTransactionRepository(openTestDB(t))
	userID := uuid.New()
	other := uuid.New()

	require.NoError(t, repo.CreateBatch(ctx, []*entity.Transaction{
		newTxn(userID, entity.TransactionKindExpense, "200", "Food", date(2025, 3, 1)),
		newTxn(userID, entity.TransactionKindIncome, "5000.50", "Salary", date(2025, 3, 31)),
		newTxn(userID, entity.TransactionKindExpense, "75.25", "Transport", date(2025, 4, 1)),
		newTxn(userID, entity.TransactionKindExpense, "10", "Food", date(2025, 2, 28)),
		newTxn(other, entity.TransactionKindExpense, "999", "Food", date(2025, 3, 10)),
	}))

	all, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, date(2025, 4, 1), all[0].Date)
	assert.Equal(t, date(2025, 2, 28), all[3].Date)

	start, end := date(2025, 3, 1), date(2025, 4, 1)
	march, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: userID, StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, march, 2)
	assert.True(t, march[0].Amount.Equal(decimal.RequireFromString("5000.50")))
	assert.Equal(t, entity.TransactionKindIncome, march[0].Kind)

	expense := entity.TransactionKindExpense
	food, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: userID, Kind: &expense, Category: "Food", Limit: 1})
	require.NoError(t, err)
	require.Len(t, food, 1)
	assert.Equal(t, date(2025, 3, 1), food[0].Date)

	empty, err := repo.FindByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTransactionRepository_DeleteAndExternalRefs(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewTransactionRepository(openTestDB(t))
	userID := uuid.New()

	synced := newTxn(userID, entity.TransactionKindIncome, "1500", "Transfer", date(2025, 3, 2))
	synced.Source = entity.TransactionSourceExternalSync
	synced.ExternalRef = "QFT12345"
	require.NoError(t, repo.Create(ctx, synced))

	stored, err := repo.FindByID(ctx, synced.ID)
	require.NoError(t, err)
	assert.Equal(t, "QFT12345", stored.ExternalRef)
	assert.Equal(t, entity.TransactionSourceExternalSync, stored.Source)

	refs, err := repo.ExistingExternalRefs(ctx, userID, []string{"QFT12345", "QFT99999"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"QFT12345": true}, refs)

	otherRefs, err := repo.ExistingExternalRefs(ctx, uuid.New(), []string{"QFT12345"})
	require.NoError(t, err)
	assert.Empty(t, otherRefs)

	require.NoError(t, repo.Delete(ctx, synced.ID))
	_, err = repo.FindByID(ctx, synced.ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, synced.ID), domainerror.ErrTransactionNotFound)

	// Deleted synced rows still block re-import.
	refs, err = repo.ExistingExternalRefs(ctx, userID, []string{"QFT12345"})
	require.NoError(t, err)
	assert.True(t, refs["QFT12345"])
}

func TestGoalRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGoalRepository(openTestDB(t))
	userID := uuid.New()

	goal := entity.NewGoal(userID, "Emergency fund", "Savings", decimal.NewFromInt(30000), decimal.NewFromInt(30000), date(2025, 12, 31))
	require.NoError(t, repo.Create(ctx, goal))

	found, err := repo.FindByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoalStatusActive, found.Status)
	assert.True(t, found.CurrentAmount.Equal(found.TargetAmount))

	found.Status = entity.GoalStatusPaused
	require.NoError(t, repo.Update(ctx, found))

	goals, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, entity.GoalStatusPaused, goals[0].Status)

	require.NoError(t, repo.Delete(ctx, goal.ID))
	_, err = repo.FindByID(ctx, goal.ID)
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
}

func TestBudgetRepository_AllowsDuplicateCategories(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewBudgetRepository(openTestDB(t))
	userID := uuid.New()

	require.NoError(t, repo.Create(ctx, entity.NewBudget(userID, "Food", decimal.NewFromInt(5000), entity.BudgetPeriodMonthly)))
	require.NoError(t, repo.Create(ctx, entity.NewBudget(userID, "Food", decimal.NewFromInt(3000), entity.BudgetPeriodMonthly)))
	require.NoError(t, repo.Create(ctx, entity.NewBudget(userID, "Airtime", decimal.NewFromInt(500), entity.BudgetPeriodWeekly)))

	budgets, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, budgets, 3)
	assert.Equal(t, "Airtime", budgets[0].Category)
	assert.Equal(t, "Food", budgets[1].Category)
	assert.Equal(t, "Food", budgets[2].Category)

	require.NoError(t, repo.Delete(ctx, budgets[0].ID))
	_, err = repo.FindByID(ctx, budgets[0].ID)
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)
}

func TestProfileRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewProfileRepository(openTestDB(t))

	profile := entity.NewProfile("kamau@example.com", "Kamau", "+254711000000", "hash")
	require.NoError(t, repo.Create(ctx, profile))

	exists, err := repo.ExistsByEmail(ctx, "kamau@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := repo.FindByEmail(ctx, "kamau@example.com")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, found.ID)

	found.FullName = "Kamau N."
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kamau N.", reloaded.FullName)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}
