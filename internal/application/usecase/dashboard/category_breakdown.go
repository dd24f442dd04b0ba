package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/domain/entity"
)

// Breakdown maps an exact category label to the summed amount.
// Labels differing only by case or whitespace are distinct buckets.
type Breakdown map[string]decimal.Decimal

// CategorySlice is one category of a breakdown with its share of the total.
type CategorySlice struct {
	Category   string
	Amount     decimal.Decimal
	Percentage float64
}

// BreakdownByCategory groups transactions by category and sums their amounts.
// It is kind-agnostic; callers filter to expenses or income first.
func BreakdownByCategory(txns []*entity.Transaction) Breakdown {
	breakdown := make(Breakdown)
	for _, t := range txns {
		if t == nil {
			continue
		}
		breakdown[t.Category] = breakdown[t.Category].Add(t.Amount)
	}
	return breakdown
}

// Total returns the sum of all category amounts.
func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b {
		total = total.Add(amount)
	}
	return total
}

// Slices returns the breakdown sorted by amount descending, then by label,
// with each category's percentage of the total rounded to two places.
func (b Breakdown) Slices() []CategorySlice {
	total := b.Total()
	slices := make([]CategorySlice, 0, len(b))

	for category, amount := range b {
		var percentage float64
		if !total.IsZero() {
			pct := amount.Mul(decimal.NewFromInt(100)).Div(total)
			percentage, _ = pct.Round(2).Float64()
		}
		slices = append(slices, CategorySlice{
			Category:   category,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	sort.Slice(slices, func(i, j int) bool {
		if c := slices[i].Amount.Cmp(slices[j].Amount); c != 0 {
			return c > 0
		}
		return slices[i].Category < slices[j].Category
	})

	return slices
}

// FilterByKind returns the transactions of the given kind, preserving order.
func FilterByKind(txns []*entity.Transaction, kind entity.TransactionKind) []*entity.Transaction {
	filtered := make([]*entity.Transaction, 0, len(txns))
	for _, t := range txns {
		if t != nil && t.Kind == kind {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterByWindow returns the transactions dated inside the window, preserving order.
func FilterByWindow(txns []*entity.Transaction, window Window) []*entity.Transaction {
	filtered := make([]*entity.Transaction, 0, len(txns))
	for _, t := range txns {
		if t != nil && window.Contains(t.Date) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
