// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a signed-up user and their contact details.
type Profile struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PhoneNumber  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProfile creates a new Profile.
func NewProfile(email, fullName, phoneNumber, passwordHash string) *Profile {
	now := time.Now().UTC()

	return &Profile{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PhoneNumber:  phoneNumber,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
