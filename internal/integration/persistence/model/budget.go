// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pesawise/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
// (user_id, category) is indexed but deliberately not unique.
type BudgetModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_budgets_user_category,priority:1"`
	Category  string          `gorm:"type:varchar(100);not null;index:idx_budgets_user_category,priority:2"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period    string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:        m.ID,
		UserID:    m.UserID,
		Category:  m.Category,
		Amount:    m.Amount,
		Period:    entity.BudgetPeriod(m.Period),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:        budget.ID,
		UserID:    budget.UserID,
		Category:  budget.Category,
		Amount:    budget.Amount,
		Period:    string(budget.Period),
		CreatedAt: budget.CreatedAt,
		UpdatedAt: budget.UpdatedAt,
	}
}
