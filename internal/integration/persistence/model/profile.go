// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/domain/entity"
)

// ProfileModel represents the profiles table in the database.
type ProfileModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	PhoneNumber  string    `gorm:"type:varchar(20)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts a ProfileModel to a domain Profile entity.
func (m *ProfileModel) ToEntity() *entity.Profile {
	return &entity.Profile{
		ID:           m.ID,
		Email:        m.Email,
		FullName:     m.FullName,
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ProfileFromEntity creates a ProfileModel from a domain Profile entity.
func ProfileFromEntity(profile *entity.Profile) *ProfileModel {
	return &ProfileModel{
		ID:           profile.ID,
		Email:        profile.Email,
		FullName:     profile.FullName,
		PhoneNumber:  profile.PhoneNumber,
		PasswordHash: profile.PasswordHash,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}

// AllModels lists every model for auto-migration.
func AllModels() []any {
	return []any{
		&ProfileModel{},
		&TransactionModel{},
		&BudgetModel{},
		&GoalModel{},
	}
}
