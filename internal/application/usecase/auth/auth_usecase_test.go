package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesawise/backend/internal/application/adapter/mocks"
	"github.com/pesawise/backend/internal/application/usecase/auth"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

func TestRegisterUserUseCase_Execute(t *testing.T) {
	expiresAt := time.Date(2025, 1, 1, 0, 15, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		profiles := mocks.NewMockProfileRepository(ctrl)
		passwords := mocks.NewMockPasswordService(ctrl)
		tokens := mocks.NewMockTokenService(ctrl)

		passwords.EXPECT().ValidatePasswordStrength("Str0ngPass!").Return(nil)
		profiles.EXPECT().ExistsByEmail(gomock.Any(), "wanjiku@example.com").Return(false, nil)
		passwords.EXPECT().HashPassword("Str0ngPass!").Return("hashed", nil)
		profiles.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		tokens.EXPECT().GenerateAccessToken(gomock.Any(), gomock.Any(), "wanjiku@example.com").Return("token", expiresAt, nil)

		uc := auth.NewRegisterUserUseCase(profiles, passwords, tokens)
		out, err := uc.Execute(context.Background(), auth.RegisterUserInput{
			Email:       "  Wanjiku@Example.com ",
			FullName:    "Wanjiku Kamau",
			PhoneNumber: "+254 712-345-678",
			Password:    "Str0ngPass!",
		})

		require.NoError(t, err)
		assert.Equal(t, "token", out.AccessToken)
		assert.Equal(t, expiresAt, out.ExpiresAt)
		assert.Equal(t, "wanjiku@example.com", out.Profile.Email)
		assert.Equal(t, "+254712345678", out.Profile.PhoneNumber)
		assert.Equal(t, "hashed", out.Profile.PasswordHash)
	})

	tests := []struct {
		name     string
		input    auth.RegisterUserInput
		setup    func(p *mocks.MockProfileRepository, s *mocks.MockPasswordService)
		wantCode domainerror.AuthErrorCode
	}{
		{
			name:     "missing name",
			input:    auth.RegisterUserInput{Email: "a@b.co", Password: "x"},
			wantCode: domainerror.ErrCodeMissingFields,
		},
		{
			name:     "invalid email",
			input:    auth.RegisterUserInput{Email: "not-an-email", FullName: "A", Password: "x"},
			wantCode: domainerror.ErrCodeInvalidEmail,
		},
		{
			name:     "invalid phone",
			input:    auth.RegisterUserInput{Email: "a@b.co", FullName: "A", PhoneNumber: "call me", Password: "x"},
			wantCode: domainerror.ErrCodeInvalidPhone,
		},
		{
			name:  "weak password",
			input: auth.RegisterUserInput{Email: "a@b.co", FullName: "A", Password: "x"},
			setup: func(_ *mocks.MockProfileRepository, s *mocks.MockPasswordService) {
				s.EXPECT().ValidatePasswordStrength("x").Return(errors.New("too short"))
			},
			wantCode: domainerror.ErrCodeWeakPassword,
		},
		{
			name:  "email taken",
			input: auth.RegisterUserInput{Email: "a@b.co", FullName: "A", Password: "Str0ngPass!"},
			setup: func(p *mocks.MockProfileRepository, s *mocks.MockPasswordService) {
				s.EXPECT().ValidatePasswordStrength(gomock.Any()).Return(nil)
				p.EXPECT().ExistsByEmail(gomock.Any(), "a@b.co").Return(true, nil)
			},
			wantCode: domainerror.ErrCodeEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			profiles := mocks.NewMockProfileRepository(ctrl)
			passwords := mocks.NewMockPasswordService(ctrl)
			if tt.setup != nil {
				tt.setup(profiles, passwords)
			}

			uc := auth.NewRegisterUserUseCase(profiles, passwords, mocks.NewMockTokenService(ctrl))
			_, err := uc.Execute(context.Background(), tt.input)

			var authErr *domainerror.AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	stored := entity.NewProfile("otieno@example.com", "Otieno", "", "hashed")
	expiresAt := time.Now().Add(15 * time.Minute)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		profiles := mocks.NewMockProfileRepository(ctrl)
		passwords := mocks.NewMockPasswordService(ctrl)
		tokens := mocks.NewMockTokenService(ctrl)

		profiles.EXPECT().FindByEmail(gomock.Any(), "otieno@example.com").Return(stored, nil)
		passwords.EXPECT().VerifyPassword("hashed", "secret").Return(nil)
		tokens.EXPECT().GenerateAccessToken(gomock.Any(), stored.ID, stored.Email).Return("token", expiresAt, nil)

		out, err := auth.NewLoginUserUseCase(profiles, passwords, tokens).Execute(context.Background(), auth.LoginUserInput{
			Email:    "OTIENO@example.com",
			Password: "secret",
		})

		require.NoError(t, err)
		assert.Equal(t, "token", out.AccessToken)
		assert.Equal(t, stored.ID, out.Profile.ID)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		profiles := mocks.NewMockProfileRepository(ctrl)
		passwords := mocks.NewMockPasswordService(ctrl)
		uc := auth.NewLoginUserUseCase(profiles, passwords, mocks.NewMockTokenService(ctrl))

		profiles.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, domainerror.ErrUserNotFound)
		_, errUnknown := uc.Execute(context.Background(), auth.LoginUserInput{Email: "ghost@example.com", Password: "x"})

		profiles.EXPECT().FindByEmail(gomock.Any(), "otieno@example.com").Return(stored, nil)
		passwords.EXPECT().VerifyPassword("hashed", "wrong").Return(errors.New("mismatch"))
		_, errWrong := uc.Execute(context.Background(), auth.LoginUserInput{Email: "otieno@example.com", Password: "wrong"})

		assert.ErrorIs(t, errUnknown, domainerror.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, domainerror.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, auth.IsValidPhoneNumber("+254712345678"))
	assert.True(t, auth.IsValidPhoneNumber("0712345678"))
	assert.False(t, auth.IsValidPhoneNumber("0712"))
	assert.False(t, auth.IsValidPhoneNumber("07123abc78"))
	assert.Equal(t, "0712345678", auth.NormalizePhoneNumber(" 0712 345-678 "))
}
