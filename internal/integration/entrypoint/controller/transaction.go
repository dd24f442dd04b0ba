// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/application/usecase/ledger"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/entrypoint/dto"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction and sync endpoints.
type TransactionController struct {
	listUseCase   *ledger.ListTransactionsUseCase
	createUseCase *ledger.CreateTransactionUseCase
	deleteUseCase *ledger.DeleteTransactionUseCase
	syncUseCase   *ledger.SyncMobileMoneyUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *ledger.ListTransactionsUseCase,
	createUseCase *ledger.CreateTransactionUseCase,
	deleteUseCase *ledger.DeleteTransactionUseCase,
	syncUseCase *ledger.SyncMobileMoneyUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
		syncUseCase:   syncUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := ledger.ListTransactionsInput{
		UserID:   userID,
		Category: ctx.Query("category"),
	}

	// Parse date filters
	for param, target := range map[string]**time.Time{
		"start_date": &input.StartDate,
		"end_date":   &input.EndDate,
	} {
		value := ctx.Query(param)
		if value == "" {
			continue
		}
		parsed, err := time.Parse(entity.DateLayout, value)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid " + param + " format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidTransaction),
			})
			return
		}
		*target = &parsed
	}

	if kindStr := ctx.Query("kind"); kindStr != "" {
		kind := entity.TransactionKind(kindStr)
		input.Kind = &kind
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be a non-negative integer",
				Code:  string(domainerror.ErrCodeInvalidTransaction),
			})
			return
		}
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
// The body is a raw record and goes through the same normalization as synced records.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var record ledger.RawRecord
	if err := ctx.ShouldBindJSON(&record); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), ledger.CreateTransactionInput{
		UserID: userID,
		Record: record,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
			Code:  string(domainerror.ErrCodeInvalidTransaction),
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), ledger.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SyncMobileMoney handles POST /sync/mobile-money requests.
// Inline imports answer 200 with the report; queued batches answer 202.
func (c *TransactionController) SyncMobileMoney(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SyncMobileMoneyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptySyncBatch),
		})
		return
	}

	output, err := c.syncUseCase.Execute(ctx.Request.Context(), ledger.ImportExternalInput{
		UserID:  userID,
		Records: req.Records,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Queued {
		status = http.StatusAccepted
	}
	ctx.JSON(status, dto.ToSyncMobileMoneyResponse(output))
}

// handleTransactionError handles ledger and transaction errors.
func handleTransactionError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTransaction,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeCategoryTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeEmptySyncBatch:
		return http.StatusBadRequest
	case domainerror.ErrCodeSyncQueueFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
