// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pesawise/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index;index:idx_transactions_user_date,priority:1;uniqueIndex:idx_transactions_user_ref,priority:1"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Kind        string          `gorm:"type:varchar(10);not null;index"`
	Category    string          `gorm:"type:varchar(100);not null;default:'Uncategorized'"`
	Description string          `gorm:"type:varchar(255)"`
	Source      string          `gorm:"type:varchar(20);not null;default:'manual'"`
	ExternalRef *string         `gorm:"type:varchar(64);uniqueIndex:idx_transactions_user_ref,priority:2"` // Null for manual rows
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var externalRef string
	if m.ExternalRef != nil {
		externalRef = *m.ExternalRef
	}

	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Kind:        entity.TransactionKind(m.Kind),
		Category:    m.Category,
		Description: m.Description,
		Date:        entity.CalendarDate(m.Date),
		Source:      entity.TransactionSource(m.Source),
		ExternalRef: externalRef,
		CreatedAt:   m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var externalRef *string
	if transaction.ExternalRef != "" {
		ref := transaction.ExternalRef
		externalRef = &ref
	}

	createdAt := transaction.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &TransactionModel{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Date:        transaction.Date,
		Amount:      transaction.Amount,
		Kind:        string(transaction.Kind),
		Category:    transaction.Category,
		Description: transaction.Description,
		Source:      string(transaction.Source),
		ExternalRef: externalRef,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}
