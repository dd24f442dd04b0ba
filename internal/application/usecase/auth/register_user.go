// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email       string
	FullName    string
	PhoneNumber string
	Password    string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Profile     *entity.Profile
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	profileRepo     adapter.ProfileRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	profileRepo adapter.ProfileRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		profileRepo:     profileRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	email := NormalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	phone := NormalizePhoneNumber(input.PhoneNumber)

	if fullName == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"full name is required",
			domainerror.ErrMissingFields,
		)
	}

	// Validate email format
	if !IsValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if phone != "" && !IsValidPhoneNumber(phone) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidPhone,
			"invalid phone number",
			domainerror.ErrInvalidPhoneNumber,
		)
	}

	// Validate password strength
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	// Check if email already exists
	exists, err := uc.profileRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := entity.NewProfile(email, fullName, phone, passwordHash)

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token, expiresAt, err := uc.tokenService.GenerateAccessToken(ctx, profile.ID, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &RegisterUserOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Profile:     profile,
	}, nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhoneNumber strips spaces and dashes from a phone number.
func NormalizePhoneNumber(phone string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
}

// IsValidEmail validates email format using a simple regex.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhoneNumber reports whether phone looks like an MSISDN such as +254712345678.
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}
