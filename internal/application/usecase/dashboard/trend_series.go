package dashboard

import (
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/domain/entity"
)

// DefaultTrendDays is the trailing window length used by the dashboard.
const DefaultTrendDays = 7

// MaxTrendDays bounds the trailing window length accepted from callers.
const MaxTrendDays = 366

// TrendPoint is the expense total of a single calendar day.
type TrendPoint struct {
	Date   time.Time
	Label  string
	Amount decimal.Decimal
}

// TrendSeries returns exactly days points ending at today, oldest first.
// Each point holds the summed expenses dated that day, zero when there are none.
// Transactions are indexed once; the returned sequence can be ranged over any number of times.
func TrendSeries(txns []*entity.Transaction, days int, today time.Time) iter.Seq[TrendPoint] {
	if days <= 0 {
		return func(func(TrendPoint) bool) {}
	}

	last := entity.CalendarDate(today)
	first := last.AddDate(0, 0, -(days - 1))

	totals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t == nil || !t.IsExpense() {
			continue
		}
		day := entity.CalendarDate(t.Date)
		if day.Before(first) || day.After(last) {
			continue
		}
		key := day.Format(entity.DateLayout)
		totals[key] = totals[key].Add(t.Amount)
	}

	return func(yield func(TrendPoint) bool) {
		for i := 0; i < days; i++ {
			day := first.AddDate(0, 0, i)
			amount, ok := totals[day.Format(entity.DateLayout)]
			if !ok {
				amount = decimal.Zero
			}
			point := TrendPoint{
				Date:   day,
				Label:  GeneratePeriodLabel(day, GranularityDaily),
				Amount: amount,
			}
			if !yield(point) {
				return
			}
		}
	}
}

// CollectTrend materializes a trend series.
func CollectTrend(series iter.Seq[TrendPoint]) []TrendPoint {
	points := make([]TrendPoint, 0)
	for point := range series {
		points = append(points, point)
	}
	return points
}
