package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Profile     *entity.Profile
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	profileRepo     adapter.ProfileRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	profileRepo adapter.ProfileRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		profileRepo:     profileRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	profile, err := uc.profileRepo.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		// Return generic error to prevent email enumeration
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.passwordService.VerifyPassword(profile.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	token, expiresAt, err := uc.tokenService.GenerateAccessToken(ctx, profile.ID, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginUserOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Profile:     profile,
	}, nil
}
