package ledger

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/application/adapter"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxCategoryLength is the maximum allowed length for category labels.
	MaxCategoryLength = 100
)

// CreateTransactionInput represents the input for transaction creation.
// Record uses the same loose shape the normalizer accepts.
type CreateTransactionInput struct {
	UserID uuid.UUID
	Record RawRecord
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.Record == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"transaction body is required",
			nil,
		)
	}

	// Manual entries are store-assigned; an id in the body is ignored.
	record := make(RawRecord, len(input.Record))
	for k, v := range input.Record {
		if k != "id" && k != "external_ref" {
			record[k] = v
		}
	}

	if utf8.RuneCountInString(stringField(record, "description")) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if utf8.RuneCountInString(stringField(record, "category")) > MaxCategoryLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTooLong,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength),
			domainerror.ErrCategoryTooLong,
		)
	}

	result := Normalize(input.UserID, []RawRecord{record})
	if len(result.Rejected) > 0 {
		rejection := result.Rejected[0]
		return nil, domainerror.NewLedgerError(rejection.Code, rejection.Reason, nil)
	}
	transaction := result.Transactions[0]

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(transaction),
	}, nil
}
