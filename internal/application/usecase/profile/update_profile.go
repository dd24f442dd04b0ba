package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/usecase/auth"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// UpdateProfileInput represents the input for a profile update.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	FullName    *string
	PhoneNumber *string
}

// UpdateProfileUseCase handles profile updates.
type UpdateProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(profileRepo adapter.ProfileRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		profileRepo: profileRepo,
	}
}

// Execute applies the update and returns the stored profile.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.Profile, error) {
	profile, err := findProfile(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeMissingFields,
				"full name must not be empty",
				domainerror.ErrMissingFields,
			)
		}
		profile.FullName = name
	}

	if input.PhoneNumber != nil {
		phone := auth.NormalizePhoneNumber(*input.PhoneNumber)
		if phone != "" && !auth.IsValidPhoneNumber(phone) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidPhone,
				"invalid phone number",
				domainerror.ErrInvalidPhoneNumber,
			)
		}
		profile.PhoneNumber = phone
	}

	profile.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
