// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/pesawise/backend/internal/application/usecase/budget"
	"github.com/pesawise/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	Category string  `json:"category" binding:"required,min=1,max=100"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Period   string  `json:"period,omitempty" binding:"omitempty,oneof=monthly weekly"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Period    string    `json:"period"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetOverviewLineResponse represents spending against one budget line.
type BudgetOverviewLineResponse struct {
	Category    string  `json:"category"`
	Period      string  `json:"period"`
	Limit       float64 `json:"limit"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	Percentage  float64 `json:"percentage"`
	OverBudget  bool    `json:"over_budget"`
	BudgetCount int     `json:"budget_count"`
}

// BudgetOverviewResponse represents the budget overview.
type BudgetOverviewResponse struct {
	Lines          []BudgetOverviewLineResponse `json:"lines"`
	TotalBudget    float64                      `json:"total_budget"`
	TotalSpent     float64                      `json:"total_spent"`
	TotalRemaining float64                      `json:"total_remaining"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID.String(),
		Category:  b.Category,
		Amount:    toFloat(b.Amount),
		Period:    string(b.Period),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBudgetListResponse converts a slice of budgets to a BudgetListResponse DTO.
func ToBudgetListResponse(budgets []*entity.Budget) BudgetListResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = ToBudgetResponse(b)
	}
	return BudgetListResponse{Budgets: responses}
}

// ToBudgetOverviewResponse converts a GetOverviewOutput to a BudgetOverviewResponse DTO.
func ToBudgetOverviewResponse(output *budget.GetOverviewOutput) BudgetOverviewResponse {
	lines := make([]BudgetOverviewLineResponse, len(output.Lines))
	for i, line := range output.Lines {
		lines[i] = BudgetOverviewLineResponse{
			Category:    line.Category,
			Period:      string(line.Period),
			Limit:       toFloat(line.Limit),
			Spent:       toFloat(line.Spent),
			Remaining:   toFloat(line.Remaining),
			Percentage:  toFloat(line.Percentage),
			OverBudget:  line.OverBudget,
			BudgetCount: line.BudgetCount,
		}
	}

	return BudgetOverviewResponse{
		Lines:          lines,
		TotalBudget:    toFloat(output.TotalLimit),
		TotalSpent:     toFloat(output.TotalSpent),
		TotalRemaining: toFloat(output.TotalLimit.Sub(output.TotalSpent)),
	}
}
