// Package profile contains profile-related use cases.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// GetProfileInput represents the input for fetching a profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileUseCase returns the signed-in user's profile.
type GetProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(profileRepo adapter.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		profileRepo: profileRepo,
	}
}

// Execute loads the profile.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*entity.Profile, error) {
	return findProfile(ctx, uc.profileRepo, input.UserID)
}

func findProfile(ctx context.Context, repo adapter.ProfileRepository, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"profile not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}
