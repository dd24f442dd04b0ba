package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// WindowSelector names a calendar window relative to a reference instant.
type WindowSelector string

const (
	WindowDay   WindowSelector = "day"
	WindowWeek  WindowSelector = "week"
	WindowMonth WindowSelector = "month"
	WindowYear  WindowSelector = "year"
)

var windowGranularity = map[WindowSelector]Granularity{
	WindowDay:   GranularityDaily,
	WindowWeek:  GranularityWeekly,
	WindowMonth: GranularityMonthly,
	WindowYear:  GranularityYearly,
}

// ParseWindowSelector parses a window selector, defaulting to month when empty.
func ParseWindowSelector(s string) (WindowSelector, error) {
	if strings.TrimSpace(s) == "" {
		return WindowMonth, nil
	}
	selector := WindowSelector(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := windowGranularity[selector]; !ok {
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidWindow,
			"window must be: day, week, month, or year",
			domainerror.ErrInvalidWindow,
		)
	}
	return selector, nil
}

// Window is a half-open date range [Start, End).
type Window struct {
	Selector WindowSelector
	Start    time.Time
	End      time.Time
	Label    string
}

// Contains reports whether date falls inside the window.
// A date equal to Start is inside; a date equal to End is not.
func (w Window) Contains(date time.Time) bool {
	return !date.Before(w.Start) && date.Before(w.End)
}

// WindowFor returns the calendar window of the given kind containing ref.
// Unknown selectors fall back to the calendar month.
func WindowFor(ref time.Time, selector WindowSelector) Window {
	granularity, ok := windowGranularity[selector]
	if !ok {
		selector, granularity = WindowMonth, GranularityMonthly
	}

	start, end := GetPeriodBounds(ref, granularity)
	return Window{
		Selector: selector,
		Start:    start,
		End:      end,
		Label:    GeneratePeriodLabel(start, granularity),
	}
}

// PeriodTotals holds income and expense totals for a window.
type PeriodTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	Count    int
}

// AggregatePeriod totals the transactions dated inside the window by kind.
func AggregatePeriod(txns []*entity.Transaction, window Window) PeriodTotals {
	totals := PeriodTotals{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}

	for _, t := range txns {
		if t == nil || !window.Contains(t.Date) {
			continue
		}
		addToTotals(&totals, t)
	}
	totals.Net = totals.Income.Sub(totals.Expenses)

	return totals
}

// PeriodBucket is one period of a grouped series.
type PeriodBucket struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodLabel string
	Totals      PeriodTotals
}

// GroupByPeriod groups transactions into periods of the given granularity.
// Only periods that contain transactions are returned, oldest first.
func GroupByPeriod(txns []*entity.Transaction, granularity Granularity) []PeriodBucket {
	byKey := make(map[string]*PeriodBucket)

	for _, t := range txns {
		if t == nil {
			continue
		}
		key := GetPeriodKeyForDate(t.Date, granularity)
		bucket, ok := byKey[key]
		if !ok {
			start, end := GetPeriodBounds(t.Date, granularity)
			bucket = &PeriodBucket{
				PeriodStart: start,
				PeriodEnd:   end,
				PeriodLabel: GeneratePeriodLabel(start, granularity),
				Totals:      PeriodTotals{Income: decimal.Zero, Expenses: decimal.Zero},
			}
			byKey[key] = bucket
		}
		addToTotals(&bucket.Totals, t)
	}

	buckets := make([]PeriodBucket, 0, len(byKey))
	for _, bucket := range byKey {
		bucket.Totals.Net = bucket.Totals.Income.Sub(bucket.Totals.Expenses)
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].PeriodStart.Before(buckets[j].PeriodStart)
	})

	return buckets
}

func addToTotals(totals *PeriodTotals, t *entity.Transaction) {
	switch t.Kind {
	case entity.TransactionKindIncome:
		totals.Income = totals.Income.Add(t.Amount)
	case entity.TransactionKindExpense:
		totals.Expenses = totals.Expenses.Add(t.Amount)
	default:
		return
	}
	totals.Count++
}
