package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/usecase/advisor"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/entrypoint/dto"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
)

// AdvisorController handles advisor endpoints.
type AdvisorController struct {
	adviceUseCase  *advisor.GetAdviceUseCase
	summaryUseCase *advisor.GenerateSummaryUseCase
}

// NewAdvisorController creates a new advisor controller instance.
func NewAdvisorController(
	adviceUseCase *advisor.GetAdviceUseCase,
	summaryUseCase *advisor.GenerateSummaryUseCase,
) *AdvisorController {
	return &AdvisorController{
		adviceUseCase:  adviceUseCase,
		summaryUseCase: summaryUseCase,
	}
}

// Ask handles POST /advisor/ask requests.
func (c *AdvisorController) Ask(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.AskAdvisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Message is required",
			Code:  string(domainerror.ErrCodeEmptyAdviceMessage),
		})
		return
	}

	input := advisor.GetAdviceInput{
		UserID:    userID,
		Message:   req.Message,
		UseLedger: req.UseLedger,
	}
	if req.Context != nil {
		input.Income = toDecimalPtr(req.Context.Income)
		input.Expenses = toDecimalPtr(req.Context.Expenses)
	}

	output, err := c.adviceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleAdvisorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AskAdvisorResponse{
		Response: output.Response,
		Topic:    string(output.Topic),
	})
}

// Summary handles POST /advisor/summary requests.
func (c *AdvisorController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SummaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Text payload is required",
			Code:  string(domainerror.ErrCodeEmptyAdviceMessage),
		})
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), advisor.GenerateSummaryInput{
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		handleAdvisorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SummaryResponse{
		Summary: output.Summary,
		Status:  "success",
	})
}

// handleAdvisorError handles advisor errors and returns appropriate HTTP responses.
func handleAdvisorError(ctx *gin.Context, err error) {
	var advErr *domainerror.AdvisorError
	if errors.As(err, &advErr) {
		ctx.JSON(getStatusCodeForAdvisorError(advErr.Code), dto.ErrorResponse{
			Error: advErr.Message,
			Code:  string(advErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAdvisorError maps advisor error codes to HTTP status codes.
func getStatusCodeForAdvisorError(code domainerror.AdvisorErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyAdviceMessage,
		domainerror.ErrCodeAdviceMessageTooLong,
		domainerror.ErrCodeNegativeAdviceContext,
		domainerror.ErrCodeAdviceContextRange:
		return http.StatusBadRequest
	case domainerror.ErrCodeSummaryNotConfigured,
		domainerror.ErrCodeSummaryUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeSummaryRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeSummaryTimeout:
		return http.StatusGatewayTimeout
	case domainerror.ErrCodeSummaryAuthError,
		domainerror.ErrCodeSummaryParseError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toDecimalPtr(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
