//go:build integration

package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/pesawise/backend/internal/application/adapter"
)

// SummaryService stands in for the Gemini client and records what it was asked.
type SummaryService struct {
	mu        sync.Mutex
	available bool
	response  string
	err       error
	requests  []*adapter.AISummaryRequest
}

func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

// Reset makes the service unavailable and forgets recorded requests.
func (s *SummaryService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = false
	s.response = ""
	s.err = nil
	s.requests = nil
}

func (s *SummaryService) RespondWith(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = true
	s.response = text
	s.err = nil
}

func (s *SummaryService) FailWith(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = true
	s.err = errors.New(message)
}

func (s *SummaryService) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

func (s *SummaryService) Summarize(_ context.Context, request *adapter.AISummaryRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, request)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// LastRequest returns the most recent request, or nil.
func (s *SummaryService) LastRequest() *adapter.AISummaryRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}
