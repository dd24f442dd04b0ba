package advisor

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/usecase/dashboard"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// MaxSummaryTextLength is the maximum number of characters in summary text.
const MaxSummaryTextLength = 4000

// GenerateSummaryInput represents the input for generating a written summary.
type GenerateSummaryInput struct {
	UserID uuid.UUID
	Text   string
}

// GenerateSummaryOutput represents the output of generating a summary.
type GenerateSummaryOutput struct {
	Summary string
}

// GenerateSummaryUseCase produces an AI-written summary of the user's finances.
type GenerateSummaryUseCase struct {
	aiService       adapter.AISummaryService
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
	clock           adapter.Clock
}

// NewGenerateSummaryUseCase creates a new GenerateSummaryUseCase instance.
func NewGenerateSummaryUseCase(
	aiService adapter.AISummaryService,
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	clock adapter.Clock,
) *GenerateSummaryUseCase {
	return &GenerateSummaryUseCase{
		aiService:       aiService,
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		clock:           clock,
	}
}

// Execute builds the snapshot and asks the summary service to describe it.
func (uc *GenerateSummaryUseCase) Execute(ctx context.Context, input GenerateSummaryInput) (*GenerateSummaryOutput, error) {
	if uc.aiService == nil || !uc.aiService.IsAvailable() {
		return nil, domainerror.NewAdvisorError(domainerror.ErrCodeSummaryNotConfigured, "summary service is not configured", domainerror.ErrSummaryNotConfigured)
	}

	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	request := &adapter.AISummaryRequest{Text: strings.TrimSpace(input.Text)}
	uc.enrich(ctx, input.UserID, request)

	summary, err := uc.aiService.Summarize(ctx, request)
	if err != nil {
		advErr := classifyError(err)
		slog.ErrorContext(ctx, "Summary generation failed",
			"user_id", input.UserID,
			"code", advErr.Code,
			"retryable", isRetryable(advErr.Code),
			"error", err,
		)
		return nil, advErr
	}

	return &GenerateSummaryOutput{Summary: summary}, nil
}

// enrich adds month totals and goal titles when the store can supply them.
func (uc *GenerateSummaryUseCase) enrich(ctx context.Context, userID uuid.UUID, request *adapter.AISummaryRequest) {
	window := dashboard.WindowFor(uc.clock.Now(), dashboard.WindowMonth)

	txns, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &window.Start,
		EndDate:   &window.End,
	})
	if err != nil {
		slog.WarnContext(ctx, "Summary without ledger totals", "user_id", userID, "error", err)
	} else {
		totals := dashboard.AggregatePeriod(txns, window)
		request.Income = FormatKsh(totals.Income)
		request.Expenses = FormatKsh(totals.Expenses)
	}

	goals, err := uc.goalRepo.FindByUserID(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "Summary without goals", "user_id", userID, "error", err)
		return
	}
	for _, g := range goals {
		request.Goals = append(request.Goals, g.Title)
	}
}

func (uc *GenerateSummaryUseCase) validateInput(input GenerateSummaryInput) error {
	if strings.TrimSpace(input.Text) == "" {
		return domainerror.NewAdvisorError(domainerror.ErrCodeEmptyAdviceMessage, "text is required", domainerror.ErrEmptyAdviceMessage)
	}
	if utf8.RuneCountInString(input.Text) > MaxSummaryTextLength {
		return domainerror.NewAdvisorError(domainerror.ErrCodeAdviceMessageTooLong, "text must be at most 4000 characters", domainerror.ErrAdviceMessageTooLong)
	}
	return nil
}
