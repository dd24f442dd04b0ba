// Package dto defines data transfer objects for API requests and responses.
package dto

// AdviceContextRequest carries optional figures for the advisor.
type AdviceContextRequest struct {
	Income   *float64 `json:"income,omitempty"`
	Expenses *float64 `json:"expenses,omitempty"`
}

// AskAdvisorRequest represents the request body for advisor questions.
type AskAdvisorRequest struct {
	Message   string                `json:"message" binding:"required"`
	Context   *AdviceContextRequest `json:"context,omitempty"`
	UseLedger bool                  `json:"use_ledger,omitempty"`
}

// AskAdvisorResponse represents the advisor's answer.
type AskAdvisorResponse struct {
	Response string `json:"response"`
	Topic    string `json:"topic"`
}

// SummaryRequest represents the request body for an AI summary.
type SummaryRequest struct {
	Text string `json:"text" binding:"required"`
}

// SummaryResponse represents a generated summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
	Status  string `json:"status"`
}
