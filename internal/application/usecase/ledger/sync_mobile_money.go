package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// MaxSyncBatchSize caps the number of records accepted in one sync request.
const MaxSyncBatchSize = 500

// ImportExternalInput represents a batch of mobile-money records to import.
type ImportExternalInput struct {
	UserID  uuid.UUID
	Records []entity.ExternalRecord
}

// ImportExternalOutput reports how a sync batch was applied.
type ImportExternalOutput struct {
	Synced     int
	Duplicates int
	Rejected   []Rejection
}

// ImportExternalUseCase normalizes external records and stores the ones not seen before.
type ImportExternalUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewImportExternalUseCase creates a new ImportExternalUseCase instance.
func NewImportExternalUseCase(transactionRepo adapter.TransactionRepository) *ImportExternalUseCase {
	return &ImportExternalUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute imports the batch. Records whose external id is already stored are skipped.
func (uc *ImportExternalUseCase) Execute(ctx context.Context, input ImportExternalInput) (*ImportExternalOutput, error) {
	if err := validateBatch(input.Records); err != nil {
		return nil, err
	}

	result := NormalizeExternal(input.UserID, input.Records)
	if len(result.Rejected) > 0 {
		slog.WarnContext(ctx, "Rejected mobile-money records",
			"user_id", input.UserID,
			"rejected", len(result.Rejected),
			"total", len(input.Records),
		)
	}

	refs := make([]string, 0, len(result.Transactions))
	for _, t := range result.Transactions {
		if t.ExternalRef != "" {
			refs = append(refs, t.ExternalRef)
		}
	}

	existing := map[string]bool{}
	if len(refs) > 0 {
		found, err := uc.transactionRepo.ExistingExternalRefs(ctx, input.UserID, refs)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing records: %w", err)
		}
		existing = found
	}

	output := &ImportExternalOutput{Rejected: result.Rejected}
	fresh := make([]*entity.Transaction, 0, len(result.Transactions))
	seen := make(map[string]bool, len(refs))

	for _, t := range result.Transactions {
		if t.ExternalRef != "" {
			if existing[t.ExternalRef] || seen[t.ExternalRef] {
				output.Duplicates++
				continue
			}
			seen[t.ExternalRef] = true
		}
		fresh = append(fresh, t)
	}

	if len(fresh) > 0 {
		if err := uc.transactionRepo.CreateBatch(ctx, fresh); err != nil {
			return nil, fmt.Errorf("failed to store synced records: %w", err)
		}
	}
	output.Synced = len(fresh)

	slog.InfoContext(ctx, "Mobile-money sync applied",
		"user_id", input.UserID,
		"synced", output.Synced,
		"duplicates", output.Duplicates,
		"rejected", len(output.Rejected),
	)

	return output, nil
}

// SyncMobileMoneyOutput is the result of a sync request.
// Queued is true when the batch was handed to the background worker.
type SyncMobileMoneyOutput struct {
	Queued  bool
	BatchID uuid.UUID
	Result  *ImportExternalOutput
}

// SyncMobileMoneyUseCase accepts a sync batch and either queues it or imports it inline.
type SyncMobileMoneyUseCase struct {
	importer  *ImportExternalUseCase
	publisher adapter.SyncPublisher
}

// NewSyncMobileMoneyUseCase creates a new SyncMobileMoneyUseCase instance.
// A nil publisher makes every batch import inline.
func NewSyncMobileMoneyUseCase(importer *ImportExternalUseCase, publisher adapter.SyncPublisher) *SyncMobileMoneyUseCase {
	return &SyncMobileMoneyUseCase{
		importer:  importer,
		publisher: publisher,
	}
}

// Execute performs the sync.
func (uc *SyncMobileMoneyUseCase) Execute(ctx context.Context, input ImportExternalInput) (*SyncMobileMoneyOutput, error) {
	if err := validateBatch(input.Records); err != nil {
		return nil, err
	}

	if uc.publisher == nil {
		result, err := uc.importer.Execute(ctx, input)
		if err != nil {
			return nil, err
		}
		return &SyncMobileMoneyOutput{Result: result}, nil
	}

	batch := &adapter.SyncBatch{
		BatchID: uuid.New(),
		UserID:  input.UserID,
		Records: input.Records,
	}
	if err := uc.publisher.Publish(ctx, batch); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeSyncQueueFailure,
			"failed to queue sync batch",
			err,
		)
	}

	return &SyncMobileMoneyOutput{Queued: true, BatchID: batch.BatchID}, nil
}

func validateBatch(records []entity.ExternalRecord) error {
	if len(records) == 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeEmptySyncBatch,
			"at least one record is required",
			domainerror.ErrEmptySyncBatch,
		)
	}
	if len(records) > MaxSyncBatchSize {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransaction,
			fmt.Sprintf("a sync batch must not exceed %d records", MaxSyncBatchSize),
			nil,
		)
	}
	return nil
}
