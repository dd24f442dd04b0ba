package ledger_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/adapter/mocks"
	"github.com/pesawise/backend/internal/application/usecase/ledger"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

func TestCreateTransactionUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a normalized transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockTransactionRepository(ctrl)
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *entity.Transaction) error {
				assert.Equal(t, userID, txn.UserID)
				assert.Equal(t, "Food", txn.Category)
				return nil
			})

		uc := ledger.NewCreateTransactionUseCase(repo)
		out, err := uc.Execute(ctx, ledger.CreateTransactionInput{
			UserID: userID,
			Record: ledger.RawRecord{
				"id":       "11111111-1111-1111-1111-111111111111",
				"amount":   "1000",
				"kind":     "expense",
				"category": "Food",
				"date":     "2024-03-01",
			},
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.MustParse("11111111-1111-1111-1111-111111111111"), out.Transaction.ID)
		assert.True(t, out.Transaction.Amount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rejects a malformed record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := ledger.NewCreateTransactionUseCase(mocks.NewMockTransactionRepository(ctrl))
		_, err := uc.Execute(ctx, ledger.CreateTransactionInput{
			UserID: userID,
			Record: ledger.RawRecord{"amount": "abc", "kind": "expense", "date": "2024-03-01"},
		})

		var ledgerErr *domainerror.LedgerError
		require.True(t, errors.As(err, &ledgerErr))
		assert.Equal(t, domainerror.ErrCodeNonNumericAmount, ledgerErr.Code)
	})

	t.Run("rejects a long description", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc := ledger.NewCreateTransactionUseCase(mocks.NewMockTransactionRepository(ctrl))
		_, err := uc.Execute(ctx, ledger.CreateTransactionInput{
			UserID: userID,
			Record: ledger.RawRecord{
				"amount":      1,
				"kind":        "expense",
				"date":        "2024-03-01",
				"description": strings.Repeat("x", ledger.MaxDescriptionLength+1),
			},
		})

		assert.True(t, errors.Is(err, domainerror.ErrDescriptionTooLong))
	})
}

func TestListTransactionsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	repo := mocks.NewMockTransactionRepository(ctrl)
	repo.EXPECT().
		FindByFilter(ctx, adapter.TransactionFilter{UserID: userID, Limit: 10}).
		Return([]*entity.Transaction{
			entity.NewTransaction(userID, decimal.NewFromInt(2000), entity.TransactionKindIncome, "Salary", "", day, entity.TransactionSourceManual),
			entity.NewTransaction(userID, decimal.NewFromInt(1000), entity.TransactionKindExpense, "Food", "", day, entity.TransactionSourceManual),
		}, nil)

	uc := ledger.NewListTransactionsUseCase(repo)
	out, err := uc.Execute(ctx, ledger.ListTransactionsInput{UserID: userID, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, out.Transactions, 2)
	assert.True(t, out.Totals.IncomeTotal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, out.Totals.ExpenseTotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, out.Totals.NetTotal.Equal(decimal.NewFromInt(1000)))
}

func TestDeleteTransactionUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	owned := entity.NewTransaction(userID, decimal.NewFromInt(5), entity.TransactionKindExpense, "Food", "", time.Now(), entity.TransactionSourceManual)

	tests := []struct {
		name    string
		userID  uuid.UUID
		setup   func(repo *mocks.MockTransactionRepository)
		wantErr error
	}{
		{
			name:   "owner deletes",
			userID: userID,
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.EXPECT().FindByID(ctx, owned.ID).Return(owned, nil)
				repo.EXPECT().Delete(ctx, owned.ID).Return(nil)
			},
		},
		{
			name:   "other user is refused",
			userID: uuid.New(),
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.EXPECT().FindByID(ctx, owned.ID).Return(owned, nil)
			},
			wantErr: domainerror.ErrNotAuthorizedToModifyTransaction,
		},
		{
			name:   "missing transaction",
			userID: userID,
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.EXPECT().FindByID(ctx, owned.ID).Return(nil, domainerror.ErrTransactionNotFound)
			},
			wantErr: domainerror.ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockTransactionRepository(ctrl)
			tt.setup(repo)

			err := ledger.NewDeleteTransactionUseCase(repo).Execute(ctx, ledger.DeleteTransactionInput{
				TransactionID: owned.ID,
				UserID:        tt.userID,
			})

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}
