package dashboard_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesawise/backend/internal/application/usecase/dashboard"
	"github.com/pesawise/backend/internal/domain/entity"
)

var userID = uuid.MustParse("0d9b8f2e-5b3a-4f7c-9e61-2a4c8d1f3b70")

func txn(amount int64, kind entity.TransactionKind, category string, date time.Time) *entity.Transaction {
	return entity.NewTransaction(userID, decimal.NewFromInt(amount), kind, category, "", date, entity.TransactionSourceManual)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFoodAndSalaryScenario(t *testing.T) {
	d := day(2024, 3, 10)
	txns := []*entity.Transaction{
		txn(1000, entity.TransactionKindExpense, "Food", d),
		txn(2000, entity.TransactionKindIncome, "Salary", d),
	}

	totals := dashboard.AggregatePeriod(txns, dashboard.WindowFor(d, dashboard.WindowMonth))
	assert.True(t, totals.Income.Equal(decimal.NewFromInt(2000)))
	assert.True(t, totals.Expenses.Equal(decimal.NewFromInt(1000)))
	assert.True(t, totals.Net.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 2, totals.Count)

	breakdown := dashboard.BreakdownByCategory(dashboard.FilterByKind(txns, entity.TransactionKindExpense))
	require.Len(t, breakdown, 1)
	assert.True(t, breakdown["Food"].Equal(decimal.NewFromInt(1000)))
}

func TestWindowFor(t *testing.T) {
	ref := time.Date(2024, 2, 29, 17, 30, 0, 0, time.UTC) // Thursday

	tests := []struct {
		selector dashboard.WindowSelector
		start    time.Time
		end      time.Time
		label    string
	}{
		{dashboard.WindowDay, day(2024, 2, 29), day(2024, 3, 1), "Feb 29"},
		{dashboard.WindowWeek, day(2024, 2, 26), day(2024, 3, 4), "W9 2024"},
		{dashboard.WindowMonth, day(2024, 2, 1), day(2024, 3, 1), "Feb 2024"},
		{dashboard.WindowYear, day(2024, 1, 1), day(2025, 1, 1), "2024"},
		{dashboard.WindowSelector("decade"), day(2024, 2, 1), day(2024, 3, 1), "Feb 2024"},
	}

	for _, tt := range tests {
		t.Run(string(tt.selector), func(t *testing.T) {
			w := dashboard.WindowFor(ref, tt.selector)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
			assert.Equal(t, tt.label, w.Label)
		})
	}
}

func TestWindowFor_UsesReferenceLocation(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	// 22:30 UTC on the 31st is already the 1st in Nairobi.
	ref := time.Date(2024, 3, 31, 22, 30, 0, 0, time.UTC).In(nairobi)

	w := dashboard.WindowFor(ref, dashboard.WindowMonth)

	assert.Equal(t, day(2024, 4, 1), w.Start)
}

func TestAggregatePeriod_Boundaries(t *testing.T) {
	window := dashboard.WindowFor(day(2024, 5, 15), dashboard.WindowMonth)
	txns := []*entity.Transaction{
		txn(100, entity.TransactionKindIncome, "Salary", window.Start),
		txn(40, entity.TransactionKindExpense, "Food", window.End.AddDate(0, 0, -1)),
		txn(999, entity.TransactionKindIncome, "Bonus", window.End),
		txn(777, entity.TransactionKindExpense, "Rent", window.Start.AddDate(0, 0, -1)),
		nil,
	}

	totals := dashboard.AggregatePeriod(txns, window)

	assert.True(t, totals.Income.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals.Expenses.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 2, totals.Count)
}

func TestAggregatePeriod_Empty(t *testing.T) {
	totals := dashboard.AggregatePeriod(nil, dashboard.WindowFor(day(2024, 1, 1), dashboard.WindowMonth))

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expenses.IsZero())
	assert.True(t, totals.Net.IsZero())
	assert.Zero(t, totals.Count)
}

func TestGroupByPeriod(t *testing.T) {
	txns := []*entity.Transaction{
		txn(300, entity.TransactionKindExpense, "Food", day(2024, 3, 2)),
		txn(100, entity.TransactionKindExpense, "Food", day(2024, 1, 20)),
		txn(5000, entity.TransactionKindIncome, "Salary", day(2024, 3, 28)),
		txn(50, entity.TransactionKindExpense, "Fare", day(2024, 1, 5)),
	}

	buckets := dashboard.GroupByPeriod(txns, dashboard.GranularityMonthly)

	require.Len(t, buckets, 2)
	assert.Equal(t, "Jan 2024", buckets[0].PeriodLabel)
	assert.True(t, buckets[0].Totals.Expenses.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "Mar 2024", buckets[1].PeriodLabel)
	assert.True(t, buckets[1].Totals.Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, buckets[1].Totals.Net.Equal(decimal.NewFromInt(4700)))
}

func TestBreakdownByCategory_Conservation(t *testing.T) {
	d := day(2024, 4, 1)
	txns := []*entity.Transaction{
		txn(120, entity.TransactionKindExpense, "Food", d),
		txn(80, entity.TransactionKindExpense, "food", d),
		txn(300, entity.TransactionKindExpense, "Rent", d),
		txn(500, entity.TransactionKindIncome, "Salary", d),
		txn(0, entity.TransactionKindExpense, "Misc", d),
	}

	breakdown := dashboard.BreakdownByCategory(txns)

	sum := decimal.Zero
	for _, t := range txns {
		sum = sum.Add(t.Amount)
	}
	assert.True(t, breakdown.Total().Equal(sum))
	assert.Len(t, breakdown, 5)
	assert.True(t, breakdown["Food"].Equal(decimal.NewFromInt(120)))
	assert.True(t, breakdown["food"].Equal(decimal.NewFromInt(80)))
}

func TestBreakdown_Slices(t *testing.T) {
	breakdown := dashboard.Breakdown{
		"Rent":      decimal.NewFromInt(600),
		"Food":      decimal.NewFromInt(300),
		"Transport": decimal.NewFromInt(100),
	}

	slices := breakdown.Slices()

	require.Len(t, slices, 3)
	assert.Equal(t, "Rent", slices[0].Category)
	assert.Equal(t, 60.0, slices[0].Percentage)
	assert.Equal(t, "Food", slices[1].Category)
	assert.Equal(t, 30.0, slices[1].Percentage)
	assert.Equal(t, 10.0, slices[2].Percentage)

	assert.Empty(t, dashboard.Breakdown{}.Slices())
}

func TestTrendSeries_Length(t *testing.T) {
	today := time.Date(2024, 6, 15, 21, 0, 0, 0, time.UTC)
	txns := []*entity.Transaction{
		txn(100, entity.TransactionKindExpense, "Food", day(2024, 6, 15)),
		txn(50, entity.TransactionKindExpense, "Food", day(2024, 6, 15)),
		txn(70, entity.TransactionKindExpense, "Fare", day(2024, 6, 9)),
		txn(900, entity.TransactionKindExpense, "Rent", day(2024, 6, 8)),
		txn(3000, entity.TransactionKindIncome, "Salary", day(2024, 6, 14)),
	}

	for _, n := range []int{1, 7, 30} {
		points := dashboard.CollectTrend(dashboard.TrendSeries(txns, n, today))
		assert.Len(t, points, n)
		assert.Equal(t, day(2024, 6, 15), points[n-1].Date)
		assert.Equal(t, day(2024, 6, 15).AddDate(0, 0, -(n-1)), points[0].Date)

		windowStart := day(2024, 6, 15).AddDate(0, 0, -(n - 1))
		want := decimal.Zero
		for _, t := range txns {
			if t.IsExpense() && !t.Date.Before(windowStart) {
				want = want.Add(t.Amount)
			}
		}
		got := decimal.Zero
		for _, p := range points {
			got = got.Add(p.Amount)
		}
		assert.True(t, want.Equal(got), "n=%d want %s got %s", n, want, got)
	}

	week := dashboard.CollectTrend(dashboard.TrendSeries(txns, 7, today))
	assert.True(t, week[6].Amount.Equal(decimal.NewFromInt(150)))
	assert.True(t, week[5].Amount.IsZero())
	assert.True(t, week[0].Amount.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, "Jun 15", week[6].Label)
}

func TestTrendSeries_EmptyAndDegenerate(t *testing.T) {
	today := day(2024, 1, 1)

	points := dashboard.CollectTrend(dashboard.TrendSeries(nil, 7, today))
	assert.Len(t, points, 7)
	for _, p := range points {
		assert.True(t, p.Amount.IsZero())
	}

	assert.Empty(t, dashboard.CollectTrend(dashboard.TrendSeries(nil, 0, today)))
	assert.Empty(t, dashboard.CollectTrend(dashboard.TrendSeries(nil, -3, today)))
}

func TestTrendSeries_Restartable(t *testing.T) {
	today := day(2024, 6, 15)
	series := dashboard.TrendSeries([]*entity.Transaction{
		txn(10, entity.TransactionKindExpense, "Food", today),
	}, 5, today)

	first := dashboard.CollectTrend(series)
	second := dashboard.CollectTrend(series)
	assert.Equal(t, first, second)

	taken := 0
	for range series {
		taken++
		if taken == 2 {
			break
		}
	}
	assert.Equal(t, 2, taken)
}

func TestParseWindowSelector(t *testing.T) {
	selector, err := dashboard.ParseWindowSelector("")
	require.NoError(t, err)
	assert.Equal(t, dashboard.WindowMonth, selector)

	selector, err = dashboard.ParseWindowSelector("WEEK")
	require.NoError(t, err)
	assert.Equal(t, dashboard.WindowWeek, selector)

	_, err = dashboard.ParseWindowSelector("fortnight")
	assert.Error(t, err)
}

func TestGeneratePeriodSeries(t *testing.T) {
	periods := dashboard.GeneratePeriodSeries(day(2024, 11, 15), day(2025, 2, 3), dashboard.GranularityMonthly)

	require.Len(t, periods, 4)
	assert.Equal(t, day(2024, 11, 1), periods[0].PeriodStart)
	assert.Equal(t, day(2024, 12, 1), periods[0].PeriodEnd)
	assert.Equal(t, "Feb 2025", periods[3].PeriodLabel)

	weeks := dashboard.GeneratePeriodSeries(day(2024, 3, 6), day(2024, 3, 18), dashboard.GranularityWeekly)
	require.Len(t, weeks, 3)
	assert.Equal(t, day(2024, 3, 4), weeks[0].PeriodStart)
}
