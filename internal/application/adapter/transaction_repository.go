// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time // Inclusive
	EndDate   *time.Time // Exclusive
	Kind      *entity.TransactionKind
	Category  string // Exact match
	Limit     int    // Zero means no limit
}

//go:generate mockgen -destination=mocks/mock_transaction_repository.go -package=mocks -source=transaction_repository.go TransactionRepository

// TransactionRepository defines the interface for transaction persistence operations.
// List methods always return a non-nil slice.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateBatch creates multiple transactions in a single database transaction.
	CreateBatch(ctx context.Context, transactions []*entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves all transactions for a given user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistingExternalRefs returns the subset of refs already stored for the user.
	ExistingExternalRefs(ctx context.Context, userID uuid.UUID, refs []string) (map[string]bool, error)
}
