// Package error defines domain-specific errors for the finance backend.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidBudgetAmount is returned when the ceiling is zero or negative.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrMissingBudgetCategory is returned when a budget has no category label.
	ErrMissingBudgetCategory = errors.New("category is required")

	// ErrInvalidBudgetPeriod is returned when the period is not monthly or weekly.
	ErrInvalidBudgetPeriod = errors.New("period must be monthly or weekly")

	// ErrUnauthorizedBudgetAccess is returned when user is not authorized to access a budget.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound        BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidBudgetAmount   BudgetErrorCode = "BGT-010002"
	ErrCodeMissingBudgetCategory BudgetErrorCode = "BGT-010003"
	ErrCodeInvalidBudgetPeriod   BudgetErrorCode = "BGT-010004"

	// Authorization errors (02XXXX)
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BGT-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
