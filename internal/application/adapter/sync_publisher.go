// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/domain/entity"
)

// SyncBatch is a batch of external records queued for asynchronous import.
type SyncBatch struct {
	BatchID uuid.UUID               `json:"batch_id"`
	UserID  uuid.UUID               `json:"user_id"`
	Records []entity.ExternalRecord `json:"records"`
}

//go:generate mockgen -destination=mocks/mock_sync_publisher.go -package=mocks -source=sync_publisher.go SyncPublisher

// SyncPublisher hands external sync batches to a background worker.
type SyncPublisher interface {
	Publish(ctx context.Context, batch *SyncBatch) error
}
