// Package error defines domain-specific errors for the finance backend.
package error

import "errors"

// Advisor domain errors.
var (
	// ErrEmptyAdviceMessage is returned when the advice request carries no message.
	ErrEmptyAdviceMessage = errors.New("message is required")

	// ErrAdviceMessageTooLong is returned when the message exceeds the maximum length.
	ErrAdviceMessageTooLong = errors.New("message too long")

	// ErrNegativeAdviceContext is returned when income or expenses are negative.
	ErrNegativeAdviceContext = errors.New("income and expenses must not be negative")

	// ErrAdviceContextOutOfRange is returned when income or expenses exceed a storable amount.
	ErrAdviceContextOutOfRange = errors.New("income and expenses out of range")

	// ErrSummaryNotConfigured is returned when no AI summary service is configured.
	ErrSummaryNotConfigured = errors.New("summary service is not configured")

	// ErrSummaryFailed is returned when the summary service call fails.
	ErrSummaryFailed = errors.New("summary generation failed")
)

// AdvisorErrorCode defines error codes for advisor errors.
// Format: ADV-XXYYYY where XX is category and YYYY is specific error.
type AdvisorErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyAdviceMessage    AdvisorErrorCode = "ADV-010001"
	ErrCodeAdviceMessageTooLong  AdvisorErrorCode = "ADV-010002"
	ErrCodeNegativeAdviceContext AdvisorErrorCode = "ADV-010003"
	ErrCodeAdviceContextRange    AdvisorErrorCode = "ADV-010004"

	// Summary service errors (02XXXX)
	ErrCodeSummaryNotConfigured AdvisorErrorCode = "ADV-020001"
	ErrCodeSummaryRateLimited   AdvisorErrorCode = "ADV-020002"
	ErrCodeSummaryAuthError     AdvisorErrorCode = "ADV-020003"
	ErrCodeSummaryTimeout       AdvisorErrorCode = "ADV-020004"
	ErrCodeSummaryUnavailable   AdvisorErrorCode = "ADV-020005"
	ErrCodeSummaryParseError    AdvisorErrorCode = "ADV-020006"
	ErrCodeSummaryUnknownError  AdvisorErrorCode = "ADV-020009"
)

// AdvisorError represents a advisor error with code and message.
type AdvisorError struct {
	Code    AdvisorErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AdvisorError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AdvisorError) Unwrap() error {
	return e.Err
}

// NewAdvisorError creates a new AdvisorError with the given code and message.
func NewAdvisorError(code AdvisorErrorCode, message string, err error) *AdvisorError {
	return &AdvisorError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
