// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_profile_repository.go -package=mocks -source=profile_repository.go ProfileRepository

// ProfileRepository defines the interface for profile persistence operations.
type ProfileRepository interface {
	// Create creates a new profile in the database.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByID retrieves a profile by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// FindByEmail retrieves a profile by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)

	// Update updates an existing profile in the database.
	Update(ctx context.Context, profile *entity.Profile) error

	// ExistsByEmail checks if a profile with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
