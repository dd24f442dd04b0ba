package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/usecase/budget"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/entrypoint/dto"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	listUseCase     *budget.ListBudgetsUseCase
	createUseCase   *budget.CreateBudgetUseCase
	deleteUseCase   *budget.DeleteBudgetUseCase
	overviewUseCase *budget.GetOverviewUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	listUseCase *budget.ListBudgetsUseCase,
	createUseCase *budget.CreateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	overviewUseCase *budget.GetOverviewUseCase,
) *BudgetController {
	return &BudgetController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		deleteUseCase:   deleteUseCase,
		overviewUseCase: overviewUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve budgets",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetCategory),
		})
		return
	}

	b, err := c.createUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetInput{
		UserID:   userID,
		Category: req.Category,
		Amount:   decimal.NewFromFloat(req.Amount),
		Period:   entity.BudgetPeriod(req.Period),
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(b))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Overview handles GET /budgets/overview requests.
func (c *BudgetController) Overview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), budget.GetOverviewInput{UserID: userID})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetOverviewResponse(output))
}

// handleBudgetError handles budget errors and returns appropriate HTTP responses.
func handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(getStatusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedBudgetAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeMissingBudgetCategory,
		domainerror.ErrCodeInvalidBudgetPeriod:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
