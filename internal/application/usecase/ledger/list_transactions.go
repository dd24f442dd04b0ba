package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Kind      *entity.TransactionKind
	Category  string
	Limit     int
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Kind        entity.TransactionKind
	Category    string
	Description string
	Date        time.Time
	Source      entity.TransactionSource
	ExternalRef string
	CreatedAt   time.Time
}

// TotalsOutput represents aggregated totals in the output.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles listing transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists the user's transactions matching the input filters, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && !input.StartDate.Before(*input.EndDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransaction,
			"start_date must be before end_date",
			nil,
		)
	}

	if input.Kind != nil && !input.Kind.IsValid() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidKind,
			"kind must be income or expense",
			domainerror.ErrInvalidKind,
		)
	}

	filter := adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Kind:      input.Kind,
		Category:  input.Category,
		Limit:     input.Limit,
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, 0, len(transactions)),
		Totals: TotalsOutput{
			IncomeTotal:  decimal.Zero,
			ExpenseTotal: decimal.Zero,
		},
	}

	for _, t := range transactions {
		output.Transactions = append(output.Transactions, toTransactionOutput(t))
		switch t.Kind {
		case entity.TransactionKindIncome:
			output.Totals.IncomeTotal = output.Totals.IncomeTotal.Add(t.Amount)
		case entity.TransactionKindExpense:
			output.Totals.ExpenseTotal = output.Totals.ExpenseTotal.Add(t.Amount)
		}
	}
	output.Totals.NetTotal = output.Totals.IncomeTotal.Sub(output.Totals.ExpenseTotal)

	return output, nil
}

func toTransactionOutput(t *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:          t.ID,
		Amount:      t.Amount,
		Kind:        t.Kind,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		Source:      t.Source,
		ExternalRef: t.ExternalRef,
		CreatedAt:   t.CreatedAt,
	}
}
