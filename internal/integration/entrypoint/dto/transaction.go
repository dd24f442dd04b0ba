// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/application/usecase/ledger"
	"github.com/pesawise/backend/internal/domain/entity"
)

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Source      string    `json:"source"`
	ExternalRef string    `json:"external_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionTotalsResponse represents the totals over a listed page.
type TransactionTotalsResponse struct {
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
	NetTotal     float64 `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse    `json:"transactions"`
	Totals       TransactionTotalsResponse `json:"totals"`
}

// SyncMobileMoneyRequest represents a batch of mobile-money records.
type SyncMobileMoneyRequest struct {
	Records []entity.ExternalRecord `json:"records" binding:"required"`
}

// RejectionResponse describes a record that failed normalization.
type RejectionResponse struct {
	Index  int    `json:"index"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// SyncMobileMoneyResponse represents the outcome of a sync request.
type SyncMobileMoneyResponse struct {
	Queued     bool                `json:"queued"`
	BatchID    string              `json:"batch_id,omitempty"`
	Synced     int                 `json:"synced"`
	Duplicates int                 `json:"duplicates"`
	Rejected   []RejectionResponse `json:"rejected"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(t *ledger.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		Amount:      toFloat(t.Amount),
		Kind:        string(t.Kind),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format(entity.DateLayout),
		Source:      string(t.Source),
		ExternalRef: t.ExternalRef,
		CreatedAt:   t.CreatedAt,
	}
}

// ToEntityTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToEntityTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		Amount:      toFloat(t.Amount),
		Kind:        string(t.Kind),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format(entity.DateLayout),
		Source:      string(t.Source),
		ExternalRef: t.ExternalRef,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *ledger.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, t := range output.Transactions {
		transactions[i] = ToTransactionResponse(t)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Totals: TransactionTotalsResponse{
			IncomeTotal:  toFloat(output.Totals.IncomeTotal),
			ExpenseTotal: toFloat(output.Totals.ExpenseTotal),
			NetTotal:     toFloat(output.Totals.NetTotal),
		},
	}
}

// ToSyncMobileMoneyResponse converts a SyncMobileMoneyOutput to a SyncMobileMoneyResponse DTO.
func ToSyncMobileMoneyResponse(output *ledger.SyncMobileMoneyOutput) SyncMobileMoneyResponse {
	response := SyncMobileMoneyResponse{
		Queued:   output.Queued,
		Rejected: make([]RejectionResponse, 0),
	}

	if output.Queued {
		response.BatchID = output.BatchID.String()
		return response
	}

	if output.Result != nil {
		response.Synced = output.Result.Synced
		response.Duplicates = output.Result.Duplicates
		for _, r := range output.Result.Rejected {
			response.Rejected = append(response.Rejected, RejectionResponse{
				Index:  r.Index,
				Code:   string(r.Code),
				Reason: r.Reason,
			})
		}
	}

	return response
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
