package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/adapter/mocks"
	"github.com/pesawise/backend/internal/application/usecase/advisor"
	"github.com/pesawise/backend/internal/application/usecase/dashboard"
	"github.com/pesawise/backend/internal/application/usecase/ledger"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/entrypoint/controller"
	"github.com/pesawise/backend/internal/integration/entrypoint/dto"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(middleware.UserIDKey), userID)
		c.Next()
	}
}

func perform(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func newTransactionEngine(repo adapter.TransactionRepository, publisher adapter.SyncPublisher, userID uuid.UUID) *gin.Engine {
	importer := ledger.NewImportExternalUseCase(repo)
	c := controller.NewTransactionController(
		ledger.NewListTransactionsUseCase(repo),
		ledger.NewCreateTransactionUseCase(repo),
		ledger.NewDeleteTransactionUseCase(repo),
		ledger.NewSyncMobileMoneyUseCase(importer, publisher),
	)

	engine := gin.New()
	group := engine.Group("", withUser(userID))
	group.GET("/transactions", c.List)
	group.POST("/transactions", c.Create)
	group.DELETE("/transactions/:id", c.Delete)
	group.POST("/sync/mobile-money", c.SyncMobileMoney)

	engine.POST("/anonymous/transactions", c.Create)
	return engine
}

func TestTransactionController_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTransactionRepository(ctrl)
	userID := uuid.New()
	engine := newTransactionEngine(repo, nil, userID)

	t.Run("stores a normalized transaction", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, txn *entity.Transaction) error {
				assert.Equal(t, userID, txn.UserID)
				assert.True(t, txn.Amount.Equal(decimal.NewFromInt(1200)))
				assert.Equal(t, entity.TransactionKindExpense, txn.Kind)
				assert.Equal(t, entity.DefaultCategory, txn.Category)
				return nil
			})

		rec := perform(t, engine, http.MethodPost, "/transactions", map[string]any{
			"amount": "1200",
			"kind":   "expense",
			"date":   "2025-03-04",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.TransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1200.0, resp.Amount)
		assert.Equal(t, "2025-03-04", resp.Date)
		assert.Equal(t, "manual", resp.Source)
	})

	t.Run("rejects a record the normalizer refuses", func(t *testing.T) {
		rec := perform(t, engine, http.MethodPost, "/transactions", map[string]any{
			"amount": -5,
			"kind":   "expense",
			"date":   "2025-03-04",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeNegativeAmount), decodeError(t, rec).Code)
	})

	t.Run("rejects a missing kind", func(t *testing.T) {
		rec := perform(t, engine, http.MethodPost, "/transactions", map[string]any{
			"amount": 10,
			"date":   "2025-03-04",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeMissingKind), decodeError(t, rec).Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		rec := perform(t, engine, http.MethodPost, "/anonymous/transactions", map[string]any{"amount": 1})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTransactionController_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTransactionRepository(ctrl)
	userID := uuid.New()
	engine := newTransactionEngine(repo, nil, userID)

	t.Run("bad date filter", func(t *testing.T) {
		rec := perform(t, engine, http.MethodGet, "/transactions?start_date=03/01/2025", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := perform(t, engine, http.MethodGet, "/transactions?limit=-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("passes filters to the store", func(t *testing.T) {
		repo.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
				assert.Equal(t, userID, filter.UserID)
				require.NotNil(t, filter.StartDate)
				assert.Equal(t, "2025-03-01", filter.StartDate.Format(entity.DateLayout))
				assert.Equal(t, "Food", filter.Category)
				assert.Equal(t, 10, filter.Limit)
				return []*entity.Transaction{}, nil
			})

		rec := perform(t, engine, http.MethodGet, "/transactions?start_date=2025-03-01&category=Food&limit=10", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.TransactionListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Transactions)
	})
}

func TestTransactionController_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTransactionRepository(ctrl)
	userID := uuid.New()
	engine := newTransactionEngine(repo, nil, userID)

	t.Run("invalid id", func(t *testing.T) {
		rec := perform(t, engine, http.MethodDelete, "/transactions/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, domainerror.ErrTransactionNotFound)

		rec := perform(t, engine, http.MethodDelete, "/transactions/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeTransactionNotFound), decodeError(t, rec).Code)
	})

	t.Run("owned by someone else", func(t *testing.T) {
		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(&entity.Transaction{ID: id, UserID: uuid.New()}, nil)

		rec := perform(t, engine, http.MethodDelete, "/transactions/"+id.String(), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(&entity.Transaction{ID: id, UserID: userID}, nil)
		repo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		rec := perform(t, engine, http.MethodDelete, "/transactions/"+id.String(), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestTransactionController_SyncMobileMoney(t *testing.T) {
	records := map[string]any{
		"records": []map[string]any{
			{"id": "MP1", "amount": 2500, "type": "received", "from": "John Doe", "date": "2025-03-01"},
			{"id": "MP2", "amount": 300, "type": "sent", "to": "Mama Mboga", "date": "2025-03-02"},
			{"id": "MP3", "amount": 100, "type": "sent"},
		},
	}

	t.Run("imports inline without a publisher", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockTransactionRepository(ctrl)
		userID := uuid.New()
		engine := newTransactionEngine(repo, nil, userID)

		repo.EXPECT().ExistingExternalRefs(gomock.Any(), userID, []string{"MP1", "MP2"}).
			Return(map[string]bool{"MP2": true}, nil)
		repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, txns []*entity.Transaction) error {
				require.Len(t, txns, 1)
				assert.Equal(t, "MP1", txns[0].ExternalRef)
				assert.Equal(t, entity.TransactionKindIncome, txns[0].Kind)
				return nil
			})

		rec := perform(t, engine, http.MethodPost, "/sync/mobile-money", records)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.SyncMobileMoneyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Queued)
		assert.Equal(t, 1, resp.Synced)
		assert.Equal(t, 1, resp.Duplicates)
		require.Len(t, resp.Rejected, 1)
		assert.Equal(t, 2, resp.Rejected[0].Index)
		assert.Equal(t, string(domainerror.ErrCodeMissingDate), resp.Rejected[0].Code)
	})

	t.Run("queues when a publisher is configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockTransactionRepository(ctrl)
		publisher := mocks.NewMockSyncPublisher(ctrl)
		userID := uuid.New()
		engine := newTransactionEngine(repo, publisher, userID)

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, batch *adapter.SyncBatch) error {
				assert.Equal(t, userID, batch.UserID)
				assert.Len(t, batch.Records, 3)
				return nil
			})

		rec := perform(t, engine, http.MethodPost, "/sync/mobile-money", records)
		require.Equal(t, http.StatusAccepted, rec.Code)

		var resp dto.SyncMobileMoneyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Queued)
		assert.NotEmpty(t, resp.BatchID)
	})

	t.Run("broker failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		publisher := mocks.NewMockSyncPublisher(ctrl)
		engine := newTransactionEngine(mocks.NewMockTransactionRepository(ctrl), publisher, uuid.New())

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		rec := perform(t, engine, http.MethodPost, "/sync/mobile-money", records)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeSyncQueueFailure), decodeError(t, rec).Code)
	})

	t.Run("empty batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		engine := newTransactionEngine(mocks.NewMockTransactionRepository(ctrl), nil, uuid.New())

		rec := perform(t, engine, http.MethodPost, "/sync/mobile-money", map[string]any{"records": []any{}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDashboardController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txnRepo := mocks.NewMockTransactionRepository(ctrl)
	goalRepo := mocks.NewMockGoalRepository(ctrl)
	userID := uuid.New()
	clock := fixedClock{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}

	c := controller.NewDashboardController(
		dashboard.NewComposeDashboardUseCase(txnRepo, goalRepo, clock, dashboard.DashboardOptions{}),
		dashboard.NewGetPeriodSeriesUseCase(txnRepo, clock),
	)
	engine := gin.New()
	engine.GET("/dashboard", withUser(userID), c.Get)
	engine.GET("/dashboard/monthly", withUser(userID), c.Monthly)

	t.Run("unknown window", func(t *testing.T) {
		rec := perform(t, engine, http.MethodGet, "/dashboard?window=decade", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidWindow), decodeError(t, rec).Code)
	})

	t.Run("non-numeric trend days", func(t *testing.T) {
		rec := perform(t, engine, http.MethodGet, "/dashboard?trend_days=week", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidTrendDays), decodeError(t, rec).Code)
	})

	t.Run("store down", func(t *testing.T) {
		txnRepo.EXPECT().FindByUser(gomock.Any(), userID).Return(nil, errors.New("db down"))
		goalRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return(nil, errors.New("db down"))

		rec := perform(t, engine, http.MethodGet, "/dashboard", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("composes the month", func(t *testing.T) {
		txnRepo.EXPECT().FindByUser(gomock.Any(), userID).Return([]*entity.Transaction{
			{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(50000), Kind: entity.TransactionKindIncome, Category: "Salary", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Source: entity.TransactionSourceManual},
			{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(2000), Kind: entity.TransactionKindExpense, Category: "Food", Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Source: entity.TransactionSourceManual},
		}, nil)
		goalRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return([]*entity.Goal{}, nil)

		rec := perform(t, engine, http.MethodGet, "/dashboard?window=month", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.DashboardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 50000.0, resp.Totals.Income)
		assert.Equal(t, 2000.0, resp.Totals.Expenses)
		assert.Equal(t, 48000.0, resp.Totals.Net)
		require.Len(t, resp.Categories, 1)
		assert.Equal(t, "Food", resp.Categories[0].Category)
		assert.Equal(t, 100.0, resp.Categories[0].Percentage)
		assert.Len(t, resp.Trend, dashboard.DefaultTrendDays)
		assert.Empty(t, resp.Missing)
	})

	t.Run("series rejects a bad date", func(t *testing.T) {
		rec := perform(t, engine, http.MethodGet, "/dashboard/monthly?start_date=2025-13-01", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidDateFormat), decodeError(t, rec).Code)
	})
}

func TestAdvisorController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txnRepo := mocks.NewMockTransactionRepository(ctrl)
	goalRepo := mocks.NewMockGoalRepository(ctrl)
	ai := mocks.NewMockAISummaryService(ctrl)
	userID := uuid.New()
	clock := fixedClock{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}

	c := controller.NewAdvisorController(
		advisor.NewGetAdviceUseCase(txnRepo, clock),
		advisor.NewGenerateSummaryUseCase(ai, txnRepo, goalRepo, clock),
	)
	engine := gin.New()
	engine.POST("/advisor/ask", withUser(userID), c.Ask)
	engine.POST("/advisor/summary", withUser(userID), c.Summary)

	t.Run("matches the budget rule", func(t *testing.T) {
		rec := perform(t, engine, http.MethodPost, "/advisor/ask", map[string]any{
			"message": "How should I budget?",
			"context": map[string]any{"income": 50000},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.AskAdvisorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "budget", resp.Topic)
		assert.Contains(t, resp.Response, "Housing: Ksh 15,000 (30%)")
	})

	t.Run("missing message", func(t *testing.T) {
		rec := perform(t, engine, http.MethodPost, "/advisor/ask", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("summary not configured", func(t *testing.T) {
		ai.EXPECT().IsAvailable().Return(false)

		rec := perform(t, engine, http.MethodPost, "/advisor/summary", map[string]any{"text": "How am I doing?"})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeSummaryNotConfigured), decodeError(t, rec).Code)
	})
}

func TestHealthController(t *testing.T) {
	tests := []struct {
		name      string
		db        func() bool
		cache     func() bool
		wantDB    string
		wantCache string
	}{
		{name: "all up", db: func() bool { return true }, cache: func() bool { return true }, wantDB: "connected", wantCache: "connected"},
		{name: "cache disabled", db: func() bool { return true }, wantDB: "connected", wantCache: "disabled"},
		{name: "all down", db: func() bool { return false }, cache: func() bool { return false }, wantDB: "disconnected", wantCache: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", controller.NewHealthController(tt.db, tt.cache).Check)

			rec := perform(t, engine, http.MethodGet, "/health", nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp controller.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, tt.wantDB, resp.Database)
			assert.Equal(t, tt.wantCache, resp.Cache)
		})
	}
}
