package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/usecase/dashboard"
	"github.com/pesawise/backend/internal/application/usecase/ledger"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// MaxMessageLength is the maximum number of characters in an advice message.
const MaxMessageLength = 1000

// GetAdviceInput represents the input for asking the advisor.
type GetAdviceInput struct {
	UserID   uuid.UUID
	Message  string
	Income   *decimal.Decimal
	Expenses *decimal.Decimal
	// UseLedger fills missing income/expenses from the user's current-month totals.
	UseLedger bool
}

// GetAdviceOutput represents the output of asking the advisor.
type GetAdviceOutput struct {
	Response string
	Topic    Topic
}

// GetAdviceUseCase handles advisor questions.
type GetAdviceUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetAdviceUseCase creates a new GetAdviceUseCase instance.
func NewGetAdviceUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetAdviceUseCase {
	return &GetAdviceUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute validates the question and returns the matched advice.
func (uc *GetAdviceUseCase) Execute(ctx context.Context, input GetAdviceInput) (*GetAdviceOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	adviceCtx := &AdviceContext{Income: input.Income, Expenses: input.Expenses}
	if input.UseLedger && (input.Income == nil || input.Expenses == nil) {
		uc.fillFromLedger(ctx, input.UserID, adviceCtx)
	}

	resp := Advise(AdviceRequest{Message: input.Message, Context: adviceCtx})

	return &GetAdviceOutput{
		Response: resp.Response,
		Topic:    resp.Topic,
	}, nil
}

// fillFromLedger is best effort; a store failure leaves the context as supplied.
func (uc *GetAdviceUseCase) fillFromLedger(ctx context.Context, userID uuid.UUID, adviceCtx *AdviceContext) {
	window := dashboard.WindowFor(uc.clock.Now(), dashboard.WindowMonth)

	txns, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &window.Start,
		EndDate:   &window.End,
	})
	if err != nil {
		slog.WarnContext(ctx, "Failed to load ledger totals for advice",
			"user_id", userID,
			"error", err,
		)
		return
	}

	totals := dashboard.AggregatePeriod(txns, window)
	if adviceCtx.Income == nil {
		adviceCtx.Income = &totals.Income
	}
	if adviceCtx.Expenses == nil {
		adviceCtx.Expenses = &totals.Expenses
	}
}

func (uc *GetAdviceUseCase) validateInput(input GetAdviceInput) error {
	if strings.TrimSpace(input.Message) == "" {
		return domainerror.NewAdvisorError(domainerror.ErrCodeEmptyAdviceMessage, "message is required", domainerror.ErrEmptyAdviceMessage)
	}
	if utf8.RuneCountInString(input.Message) > MaxMessageLength {
		return domainerror.NewAdvisorError(domainerror.ErrCodeAdviceMessageTooLong, "message must be at most 1000 characters", domainerror.ErrAdviceMessageTooLong)
	}
	if (input.Income != nil && input.Income.IsNegative()) || (input.Expenses != nil && input.Expenses.IsNegative()) {
		return domainerror.NewAdvisorError(domainerror.ErrCodeNegativeAdviceContext, "income and expenses must not be negative", domainerror.ErrNegativeAdviceContext)
	}
	if (input.Income != nil && input.Income.GreaterThanOrEqual(ledger.MaxAmount)) ||
		(input.Expenses != nil && input.Expenses.GreaterThanOrEqual(ledger.MaxAmount)) {
		return domainerror.NewAdvisorError(
			domainerror.ErrCodeAdviceContextRange,
			fmt.Sprintf("income and expenses must be below %s", FormatKsh(ledger.MaxAmount)),
			domainerror.ErrAdviceContextOutOfRange,
		)
	}
	return nil
}
