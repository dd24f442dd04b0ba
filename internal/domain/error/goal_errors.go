// Package error defines domain-specific errors for the finance backend.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")

	// ErrInvalidCurrentAmount is returned when the current amount is negative.
	ErrInvalidCurrentAmount = errors.New("current amount must not be negative")

	// ErrMissingGoalTitle is returned when a goal has no title.
	ErrMissingGoalTitle = errors.New("title is required")

	// ErrMissingTargetDate is returned when a goal has no target date.
	ErrMissingTargetDate = errors.New("target date is required")

	// ErrInvalidGoalStatus is returned when the status is not active, paused or completed.
	ErrInvalidGoalStatus = errors.New("invalid goal status")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound         GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetAmount  GoalErrorCode = "GOL-010002"
	ErrCodeInvalidCurrentAmount GoalErrorCode = "GOL-010003"
	ErrCodeMissingGoalTitle     GoalErrorCode = "GOL-010004"
	ErrCodeMissingTargetDate    GoalErrorCode = "GOL-010005"
	ErrCodeInvalidGoalStatus    GoalErrorCode = "GOL-010006"

	// Authorization errors (02XXXX)
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-020001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
