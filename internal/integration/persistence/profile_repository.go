package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// Create creates a new profile in the database.
func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	result := r.db.WithContext(ctx).Create(model.ProfileFromEntity(profile))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrEmailAlreadyExists
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a profile by its ID.
func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}

// FindByEmail retrieves a profile by its email address.
func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}

// Update updates an existing profile in the database.
func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result := r.db.WithContext(ctx).Save(model.ProfileFromEntity(profile))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ExistsByEmail checks if a profile with the given email exists.
func (r *profileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.ProfileModel{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
