package queue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rabbitmq/amqp091-go"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/usecase/ledger"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// BatchHandler processes one decoded sync batch.
type BatchHandler interface {
	HandleBatch(ctx context.Context, batch *adapter.SyncBatch) error
}

// ErrPermanent marks a batch that must not be redelivered.
var ErrPermanent = errors.New("permanent sync failure")

// HandleDelivery decodes a delivery, runs the handler and settles the message.
// Undecodable and permanently failing batches are dropped. Other failures are
// requeued once; a redelivered batch that fails again is dropped.
func HandleDelivery(ctx context.Context, delivery amqp091.Delivery, handler BatchHandler) {
	msg, err := SyncBatchMessageFromJSON(delivery.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to decode sync batch", "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	logger := slog.With("batch_id", msg.BatchID, "user_id", msg.UserID)

	if err := handler.HandleBatch(ctx, &msg.SyncBatch); err != nil {
		requeue := !errors.Is(err, ErrPermanent) && !delivery.Redelivered
		logger.ErrorContext(ctx, "Failed to handle sync batch", "error", err, "requeue", requeue)
		_ = delivery.Nack(false, requeue)
		return
	}

	_ = delivery.Ack(false)
}

// SyncWorker imports queued batches through the ledger importer.
type SyncWorker struct {
	importer *ledger.ImportExternalUseCase
}

// NewSyncWorker creates a new sync worker.
func NewSyncWorker(importer *ledger.ImportExternalUseCase) *SyncWorker {
	return &SyncWorker{importer: importer}
}

// HandleBatch imports the batch. Validation failures are permanent.
func (w *SyncWorker) HandleBatch(ctx context.Context, batch *adapter.SyncBatch) error {
	output, err := w.importer.Execute(ctx, ledger.ImportExternalInput{
		UserID:  batch.UserID,
		Records: batch.Records,
	})
	if err != nil {
		var txnErr *domainerror.TransactionError
		if errors.As(err, &txnErr) {
			return errors.Join(ErrPermanent, err)
		}
		return err
	}

	slog.InfoContext(ctx, "Processed sync batch",
		"batch_id", batch.BatchID,
		"synced", output.Synced,
		"duplicates", output.Duplicates,
		"rejected", len(output.Rejected),
	)
	return nil
}
