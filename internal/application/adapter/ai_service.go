// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// AISummaryRequest carries the financial snapshot sent to the summary model.
type AISummaryRequest struct {
	Text     string // Free text supplied by the user
	Income   string
	Expenses string
	Goals    []string
}

//go:generate mockgen -destination=mocks/mock_ai_service.go -package=mocks -source=ai_service.go AISummaryService

// AISummaryService defines the interface for generating written financial summaries.
type AISummaryService interface {
	// Summarize returns a plain text summary with recommendations.
	Summarize(ctx context.Context, request *AISummaryRequest) (string, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
