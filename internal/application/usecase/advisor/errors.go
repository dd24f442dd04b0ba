package advisor

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// summaryErrorMessages contains user-facing messages for each summary error code.
var summaryErrorMessages = map[domainerror.AdvisorErrorCode]string{
	domainerror.ErrCodeSummaryUnavailable:  "The summary service is temporarily unavailable. Please try again later.",
	domainerror.ErrCodeSummaryRateLimited:  "Too many summary requests. Please wait a few minutes and try again.",
	domainerror.ErrCodeSummaryAuthError:    "The summary service is misconfigured. Please contact support.",
	domainerror.ErrCodeSummaryTimeout:      "The summary took longer than expected. Please try again.",
	domainerror.ErrCodeSummaryParseError:   "The summary service returned an unreadable response. Please try again.",
	domainerror.ErrCodeSummaryUnknownError: "An unexpected error occurred while generating the summary.",
}

// classifyError converts a summary service error into an AdvisorError
// with an appropriate code and user-facing message.
func classifyError(err error) *domainerror.AdvisorError {
	errStr := strings.ToLower(err.Error())

	code := domainerror.ErrCodeSummaryUnknownError
	switch {
	// Timeout/cancellation
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		code = domainerror.ErrCodeSummaryTimeout

	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted"):
		code = domainerror.ErrCodeSummaryRateLimited

	case strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication"):
		code = domainerror.ErrCodeSummaryAuthError

	case strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503"):
		code = domainerror.ErrCodeSummaryUnavailable

	case strings.Contains(errStr, "parse") || strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode"):
		code = domainerror.ErrCodeSummaryParseError
	}

	return domainerror.NewAdvisorError(code, summaryErrorMessages[code], errors.Join(domainerror.ErrSummaryFailed, err))
}

// isRetryable reports whether a summary error code is worth retrying.
func isRetryable(code domainerror.AdvisorErrorCode) bool {
	switch code {
	case domainerror.ErrCodeSummaryAuthError:
		return false
	default:
		return true
	}
}
