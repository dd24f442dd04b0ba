// Package error defines domain-specific errors for the finance backend.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidWindow is returned when the window selector is not recognised.
	ErrInvalidWindow = errors.New("window must be: day, week, month, or year")

	// ErrInvalidGranularity is returned when granularity is not valid.
	ErrInvalidGranularity = errors.New("granularity must be: daily, weekly, monthly, or yearly")

	// ErrInvalidTrendDays is returned when the trailing window length is out of range.
	ErrInvalidTrendDays = errors.New("trend days must be between 1 and 366")

	// ErrInvalidDateRange is returned when the end date is before the start date or the range is too long.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrDashboardUnavailable is returned when neither transactions nor goals could be loaded.
	ErrDashboardUnavailable = errors.New("dashboard data could not be loaded")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidWindow      DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidDateRange   DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidGranularity DashboardErrorCode = "DSH-010004"
	ErrCodeInvalidTrendDays   DashboardErrorCode = "DSH-010005"
	ErrCodeInvalidDateFormat  DashboardErrorCode = "DSH-010006"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
	ErrCodeDashboardUnavailable   DashboardErrorCode = "DSH-990002"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
