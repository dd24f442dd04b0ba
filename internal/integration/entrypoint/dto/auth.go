// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/pesawise/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FullName    string `json:"full_name" binding:"required,min=1,max=100"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Profile     ProfileResponse `json:"profile"`
}

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty" binding:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" binding:"omitempty,max=20"`
}

// ProfileResponse represents the profile data in API responses.
type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToProfileResponse converts a domain Profile entity to a ProfileResponse DTO.
func ToProfileResponse(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID.String(),
		Email:       profile.Email,
		FullName:    profile.FullName,
		PhoneNumber: profile.PhoneNumber,
		CreatedAt:   profile.CreatedAt,
	}
}
