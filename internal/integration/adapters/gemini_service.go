// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/pesawise/backend/internal/application/adapter"
)

const (
	defaultGeminiModel   = "gemini-2.5-flash-lite"
	defaultGeminiTimeout = 30 * time.Second
	summaryMaxTokens     = 1000
)

// GeminiService implements the AISummaryService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string, timeout time.Duration) *GeminiService {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	if timeout <= 0 {
		timeout = defaultGeminiTimeout
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Summarize asks Gemini for a written summary of the supplied financial snapshot.
func (s *GeminiService) Summarize(ctx context.Context, request *adapter.AISummaryRequest) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(summaryMaxTokens)
	model.SystemInstruction = genai.NewUserContent(genai.Text(
		"You are a helpful financial advisor specialized in Kenyan personal finance. " +
			"Provide clear, actionable advice in a friendly tone.",
	))

	resp, err := model.GenerateContent(ctx, genai.Text(BuildSummaryPrompt(request)))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	return extractText(resp)
}

// BuildSummaryPrompt renders the summary prompt for a snapshot.
func BuildSummaryPrompt(request *adapter.AISummaryRequest) string {
	var sb strings.Builder

	sb.WriteString(`Analyze the following financial data and provide a clear, actionable summary with insights and recommendations.

Focus on:
- Key spending patterns
- Budget optimization suggestions
- Savings opportunities
- Investment recommendations suitable for Kenya
- Emergency fund advice
- M-Pesa and mobile money optimization

FINANCIAL DATA:
`)

	if request.Income != "" {
		sb.WriteString(fmt.Sprintf("- Income this month: %s\n", request.Income))
	}
	if request.Expenses != "" {
		sb.WriteString(fmt.Sprintf("- Expenses this month: %s\n", request.Expenses))
	}
	if len(request.Goals) > 0 {
		sb.WriteString(fmt.Sprintf("- Active goals: %s\n", strings.Join(request.Goals, ", ")))
	}
	if request.Text != "" {
		sb.WriteString("\nNOTES FROM THE USER:\n")
		sb.WriteString(request.Text)
		sb.WriteString("\n")
	}

	sb.WriteString("\nProvide a concise but comprehensive summary with specific, actionable advice tailored for Kenyan users. Use Ksh for amounts.\n")

	return sb.String()
}

// extractText returns the first text part of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("no text content in response")
	}

	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			if trimmed := strings.TrimSpace(string(text)); trimmed != "" {
				return trimmed, nil
			}
		}
	}

	return "", fmt.Errorf("no text content in response")
}
