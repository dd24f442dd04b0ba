package ledger_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/adapter/mocks"
	"github.com/pesawise/backend/internal/application/usecase/ledger"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

func mobileMoneyBatch() []entity.ExternalRecord {
	return []entity.ExternalRecord{
		{ID: "MP1", Amount: 2500.0, Type: "received", From: "John Doe", Date: "2024-01-15"},
		{ID: "MP2", Amount: 500.0, Type: "sent", To: "Jane Smith", Date: "2024-01-14"},
		{ID: "MP2", Amount: 500.0, Type: "sent", To: "Jane Smith", Date: "2024-01-14"},
		{ID: "MP3", Amount: "abc", Type: "sent", Date: "2024-01-13"},
		{ID: "MP4", Amount: 800.0, Type: "sent", To: "Supermarket", Date: "2024-01-12"},
	}
}

func TestImportExternalUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		records        []entity.ExternalRecord
		setup          func(repo *mocks.MockTransactionRepository)
		wantSynced     int
		wantDuplicates int
		wantRejected   int
		wantCode       domainerror.TransactionErrorCode
		wantErr        bool
	}{
		{
			name:    "skips stored and repeated refs",
			records: mobileMoneyBatch(),
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.EXPECT().
					ExistingExternalRefs(ctx, userID, []string{"MP1", "MP2", "MP2", "MP4"}).
					Return(map[string]bool{"MP1": true}, nil)
				repo.EXPECT().
					CreateBatch(ctx, gomock.Any()).
					DoAndReturn(func(_ context.Context, txns []*entity.Transaction) error {
						require.Len(t, txns, 2)
						assert.Equal(t, "MP2", txns[0].ExternalRef)
						assert.Equal(t, "MP4", txns[1].ExternalRef)
						return nil
					})
			},
			wantSynced:     2,
			wantDuplicates: 2,
			wantRejected:   1,
		},
		{
			name: "all duplicates writes nothing",
			records: []entity.ExternalRecord{
				{ID: "MP1", Amount: 2500.0, Type: "received", Date: "2024-01-15"},
			},
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.EXPECT().
					ExistingExternalRefs(ctx, userID, []string{"MP1"}).
					Return(map[string]bool{"MP1": true}, nil)
			},
			wantDuplicates: 1,
		},
		{
			name: "oversized records are rejected before the store",
			records: []entity.ExternalRecord{
				{ID: "MP1", Amount: 2500.0, Type: "received", Date: "2024-01-15", Description: strings.Repeat("x", 300)},
				{ID: strings.Repeat("9", ledger.MaxExternalRefLength+6), Amount: 100.0, Type: "sent", Date: "2024-01-15"},
				{ID: "MP3", Amount: 700.0, Type: "sent", To: "Kiosk", Date: "2024-01-15"},
			},
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.EXPECT().
					ExistingExternalRefs(ctx, userID, []string{"MP3"}).
					Return(map[string]bool{}, nil)
				repo.EXPECT().
					CreateBatch(ctx, gomock.Any()).
					DoAndReturn(func(_ context.Context, txns []*entity.Transaction) error {
						require.Len(t, txns, 1)
						assert.Equal(t, "MP3", txns[0].ExternalRef)
						return nil
					})
			},
			wantSynced:   1,
			wantRejected: 2,
		},
		{
			name:     "empty batch",
			records:  nil,
			setup:    func(repo *mocks.MockTransactionRepository) {},
			wantCode: domainerror.ErrCodeEmptySyncBatch,
			wantErr:  true,
		},
		{
			name:    "lookup failure",
			records: mobileMoneyBatch()[:1],
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.EXPECT().
					ExistingExternalRefs(ctx, userID, gomock.Any()).
					Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockTransactionRepository(ctrl)
			tt.setup(repo)

			uc := ledger.NewImportExternalUseCase(repo)
			got, err := uc.Execute(ctx, ledger.ImportExternalInput{UserID: userID, Records: tt.records})

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantCode != "" {
					var txnErr *domainerror.TransactionError
					require.True(t, errors.As(err, &txnErr))
					assert.Equal(t, tt.wantCode, txnErr.Code)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSynced, got.Synced)
			assert.Equal(t, tt.wantDuplicates, got.Duplicates)
			assert.Len(t, got.Rejected, tt.wantRejected)
		})
	}
}

func TestSyncMobileMoneyUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes when a queue is configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockTransactionRepository(ctrl)
		publisher := mocks.NewMockSyncPublisher(ctrl)
		records := mobileMoneyBatch()

		publisher.EXPECT().
			Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, batch *adapter.SyncBatch) error {
				assert.Equal(t, userID, batch.UserID)
				assert.Len(t, batch.Records, len(records))
				return nil
			})

		uc := ledger.NewSyncMobileMoneyUseCase(ledger.NewImportExternalUseCase(repo), publisher)
		got, err := uc.Execute(ctx, ledger.ImportExternalInput{UserID: userID, Records: records})

		require.NoError(t, err)
		assert.True(t, got.Queued)
		assert.Nil(t, got.Result)
	})

	t.Run("queue failure is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		publisher := mocks.NewMockSyncPublisher(ctrl)
		publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("channel closed"))

		uc := ledger.NewSyncMobileMoneyUseCase(ledger.NewImportExternalUseCase(mocks.NewMockTransactionRepository(ctrl)), publisher)
		_, err := uc.Execute(ctx, ledger.ImportExternalInput{UserID: userID, Records: mobileMoneyBatch()})

		var txnErr *domainerror.TransactionError
		require.True(t, errors.As(err, &txnErr))
		assert.Equal(t, domainerror.ErrCodeSyncQueueFailure, txnErr.Code)
	})

	t.Run("imports inline without a queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockTransactionRepository(ctrl)
		repo.EXPECT().ExistingExternalRefs(ctx, userID, []string{"MP1"}).Return(map[string]bool{}, nil)
		repo.EXPECT().CreateBatch(ctx, gomock.Len(1)).Return(nil)

		uc := ledger.NewSyncMobileMoneyUseCase(ledger.NewImportExternalUseCase(repo), nil)
		got, err := uc.Execute(ctx, ledger.ImportExternalInput{UserID: userID, Records: mobileMoneyBatch()[:1]})

		require.NoError(t, err)
		assert.False(t, got.Queued)
		require.NotNil(t, got.Result)
		assert.Equal(t, 1, got.Result.Synced)
	})
}
