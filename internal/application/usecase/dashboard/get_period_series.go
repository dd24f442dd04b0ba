package dashboard

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

const (
	// DefaultSeriesMonths is the lookback used when no start date is given.
	DefaultSeriesMonths = 6
	// MaxSeriesPeriods bounds the number of zero-filled periods returned.
	MaxSeriesPeriods = 400
)

// GetPeriodSeriesInput represents the input for the grouped income/expense series.
type GetPeriodSeriesInput struct {
	UserID      uuid.UUID
	Granularity Granularity
	StartDate   *time.Time
	EndDate     *time.Time
}

// GetPeriodSeriesOutput represents the output of the grouped series.
type GetPeriodSeriesOutput struct {
	Granularity Granularity
	StartDate   time.Time
	EndDate     time.Time
	Periods     []PeriodBucket
}

// GetPeriodSeriesUseCase returns per-period income and expense totals with no gaps.
type GetPeriodSeriesUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetPeriodSeriesUseCase creates a new GetPeriodSeriesUseCase instance.
func NewGetPeriodSeriesUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetPeriodSeriesUseCase {
	return &GetPeriodSeriesUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute retrieves the series for the given range and granularity.
func (uc *GetPeriodSeriesUseCase) Execute(ctx context.Context, input GetPeriodSeriesInput) (*GetPeriodSeriesOutput, error) {
	granularity := input.Granularity
	if granularity == "" {
		granularity = GranularityMonthly
	}
	if !granularity.IsValid() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: daily, weekly, monthly, or yearly",
			domainerror.ErrInvalidGranularity,
		)
	}

	endDate := entity.CalendarDate(uc.clock.Now())
	if input.EndDate != nil {
		endDate = *input.EndDate
	}
	first, _ := GetPeriodBounds(endDate, GranularityMonthly)
	startDate := first.AddDate(0, -(DefaultSeriesMonths - 1), 0)
	if input.StartDate != nil {
		startDate = *input.StartDate
	}

	if endDate.Before(startDate) {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	periods := GeneratePeriodSeries(startDate, endDate, granularity)
	if len(periods) > MaxSeriesPeriods {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			fmt.Sprintf("range spans more than %d periods", MaxSeriesPeriods),
			domainerror.ErrInvalidDateRange,
		)
	}

	rangeStart := periods[0].PeriodStart
	rangeEnd := periods[len(periods)-1].PeriodEnd
	txns, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &rangeStart,
		EndDate:   &rangeEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	// Create a map for quick lookup of grouped data by period key
	grouped := make(map[string]PeriodBucket)
	for _, bucket := range GroupByPeriod(txns, granularity) {
		grouped[GetPeriodKeyForDate(bucket.PeriodStart, granularity)] = bucket
	}

	// Build buckets with zero values for empty periods
	buckets := make([]PeriodBucket, 0, len(periods))
	for _, period := range periods {
		if bucket, ok := grouped[GetPeriodKeyForDate(period.PeriodStart, granularity)]; ok {
			buckets = append(buckets, bucket)
			continue
		}
		buckets = append(buckets, PeriodBucket{
			PeriodStart: period.PeriodStart,
			PeriodEnd:   period.PeriodEnd,
			PeriodLabel: period.PeriodLabel,
			Totals: PeriodTotals{
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
				Net:      decimal.Zero,
			},
		})
	}

	return &GetPeriodSeriesOutput{
		Granularity: granularity,
		StartDate:   rangeStart,
		EndDate:     rangeEnd,
		Periods:     buckets,
	}, nil
}
