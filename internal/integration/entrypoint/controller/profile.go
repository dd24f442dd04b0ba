package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pesawise/backend/internal/application/usecase/profile"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/entrypoint/dto"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
)

// ProfileController handles profile endpoints.
type ProfileController struct {
	getUseCase    *profile.GetProfileUseCase
	updateUseCase *profile.UpdateProfileUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(
	getUseCase *profile.GetProfileUseCase,
	updateUseCase *profile.UpdateProfileUseCase,
) *ProfileController {
	return &ProfileController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /profile requests.
func (c *ProfileController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	p, err := c.getUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{UserID: userID})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(p))
}

// Update handles PATCH /profile requests.
func (c *ProfileController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	p, err := c.updateUseCase.Execute(ctx.Request.Context(), profile.UpdateProfileInput{
		UserID:      userID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(p))
}
