// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/pesawise/backend/internal/application/usecase/dashboard"
	"github.com/pesawise/backend/internal/domain/entity"
)

// WindowResponse represents the reporting window of a dashboard.
type WindowResponse struct {
	Selector  string `json:"selector"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"` // Exclusive
}

// TotalsResponse represents income, expenses and net over a window.
type TotalsResponse struct {
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transaction_count"`
}

// CategorySliceResponse represents one category's share of spending.
type CategorySliceResponse struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// TrendPointResponse represents one day of the spending trend.
type TrendPointResponse struct {
	Date   string  `json:"date"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// DashboardResponse represents the composed dashboard.
type DashboardResponse struct {
	Window             WindowResponse          `json:"window"`
	Totals             TotalsResponse          `json:"totals"`
	Categories         []CategorySliceResponse `json:"categories"`
	Trend              []TrendPointResponse    `json:"trend"`
	Goals              []GoalResponse          `json:"goals"`
	RecentTransactions []TransactionResponse   `json:"recent_transactions"`
	RejectedCount      int                     `json:"rejected_count"`
	Missing            []string                `json:"missing"`
}

// PeriodResponse represents totals for one period of a series.
type PeriodResponse struct {
	PeriodStart string         `json:"period_start"`
	PeriodEnd   string         `json:"period_end"`
	PeriodLabel string         `json:"period_label"`
	Totals      TotalsResponse `json:"totals"`
}

// PeriodSeriesResponse represents totals grouped by period.
type PeriodSeriesResponse struct {
	Granularity string           `json:"granularity"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Periods     []PeriodResponse `json:"periods"`
}

// ToTotalsResponse converts PeriodTotals to a TotalsResponse DTO.
func ToTotalsResponse(t dashboard.PeriodTotals) TotalsResponse {
	return TotalsResponse{
		Income:           toFloat(t.Income),
		Expenses:         toFloat(t.Expenses),
		Net:              toFloat(t.Net),
		TransactionCount: t.Count,
	}
}

// ToDashboardResponse converts a DashboardView to a DashboardResponse DTO.
func ToDashboardResponse(view *dashboard.DashboardView) DashboardResponse {
	categories := make([]CategorySliceResponse, len(view.Categories))
	for i, c := range view.Categories {
		categories[i] = CategorySliceResponse{
			Category:   c.Category,
			Amount:     toFloat(c.Amount),
			Percentage: c.Percentage,
		}
	}

	trend := make([]TrendPointResponse, len(view.Trend))
	for i, p := range view.Trend {
		trend[i] = TrendPointResponse{
			Date:   p.Date.Format(entity.DateLayout),
			Label:  p.Label,
			Amount: toFloat(p.Amount),
		}
	}

	recent := make([]TransactionResponse, len(view.RecentTransactions))
	for i, t := range view.RecentTransactions {
		recent[i] = ToEntityTransactionResponse(t)
	}

	missing := make([]string, len(view.Missing))
	for i, s := range view.Missing {
		missing[i] = string(s)
	}

	return DashboardResponse{
		Window: WindowResponse{
			Selector:  string(view.Window.Selector),
			Label:     view.Window.Label,
			StartDate: view.Window.Start.Format(entity.DateLayout),
			EndDate:   view.Window.End.Format(entity.DateLayout),
		},
		Totals:             ToTotalsResponse(view.Totals),
		Categories:         categories,
		Trend:              trend,
		Goals:              ToGoalListResponse(view.Goals).Goals,
		RecentTransactions: recent,
		RejectedCount:      view.RejectedCount,
		Missing:            missing,
	}
}

// ToPeriodSeriesResponse converts a GetPeriodSeriesOutput to a PeriodSeriesResponse DTO.
func ToPeriodSeriesResponse(output *dashboard.GetPeriodSeriesOutput) PeriodSeriesResponse {
	periods := make([]PeriodResponse, len(output.Periods))
	for i, p := range output.Periods {
		periods[i] = PeriodResponse{
			PeriodStart: p.PeriodStart.Format(entity.DateLayout),
			PeriodEnd:   p.PeriodEnd.Format(entity.DateLayout),
			PeriodLabel: p.PeriodLabel,
			Totals:      ToTotalsResponse(p.Totals),
		}
	}

	return PeriodSeriesResponse{
		Granularity: string(output.Granularity),
		StartDate:   output.StartDate.Format(entity.DateLayout),
		EndDate:     output.EndDate.Format(entity.DateLayout),
		Periods:     periods,
	}
}
