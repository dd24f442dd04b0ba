// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pesawise/backend/internal/application/usecase/dashboard"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/entrypoint/dto"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	composeUseCase *dashboard.ComposeDashboardUseCase
	seriesUseCase  *dashboard.GetPeriodSeriesUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	composeUseCase *dashboard.ComposeDashboardUseCase,
	seriesUseCase *dashboard.GetPeriodSeriesUseCase,
) *DashboardController {
	return &DashboardController{
		composeUseCase: composeUseCase,
		seriesUseCase:  seriesUseCase,
	}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := dashboard.ComposeDashboardInput{
		UserID: userID,
		Window: dashboard.WindowSelector(ctx.Query("window")),
	}

	if daysStr := ctx.Query("trend_days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "trend_days must be an integer",
				Code:  string(domainerror.ErrCodeInvalidTrendDays),
			})
			return
		}
		input.TrendDays = days
	}

	view, err := c.composeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(view))
}

// Monthly handles GET /dashboard/monthly requests.
// Granularity defaults to monthly; daily, weekly and yearly are also accepted.
func (c *DashboardController) Monthly(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := dashboard.GetPeriodSeriesInput{
		UserID:      userID,
		Granularity: dashboard.Granularity(ctx.Query("granularity")),
	}

	// Parse date range
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
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		*target = &parsed
	}

	output, err := c.seriesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodSeriesResponse(output))
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeDashboardInternalError),
	})
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidWindow,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeInvalidTrendDays,
		domainerror.ErrCodeInvalidDateFormat:
		return http.StatusBadRequest
	case domainerror.ErrCodeDashboardUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
