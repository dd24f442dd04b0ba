// Package error defines domain-specific errors for the finance backend.
package error

import "errors"

// Ledger normalization errors. These are reported per record and never abort a batch.
var (
	// ErrMissingAmount is returned when a record carries no amount.
	ErrMissingAmount = errors.New("amount is required")

	// ErrNonNumericAmount is returned when the amount cannot be read as a number.
	ErrNonNumericAmount = errors.New("amount must be numeric")

	// ErrNegativeAmount is returned when the amount is below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrMissingKind is returned when a record carries no kind.
	ErrMissingKind = errors.New("kind is required")

	// ErrInvalidKind is returned when the kind is neither income nor expense.
	ErrInvalidKind = errors.New("kind must be income or expense")

	// ErrMissingDate is returned when a record carries no date.
	ErrMissingDate = errors.New("date is required")

	// ErrInvalidDate is returned when the date cannot be parsed.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD or RFC3339")

	// ErrInvalidSource is returned when the source is not a known source.
	ErrInvalidSource = errors.New("source must be manual, external-sync or bank")

	// ErrInvalidRecordID is returned when a record id is present but not a UUID.
	ErrInvalidRecordID = errors.New("id must be a UUID")

	// ErrFieldTooLong is returned when a text field exceeds its stored length.
	ErrFieldTooLong = errors.New("field too long")

	// ErrAmountOutOfRange is returned when the amount exceeds the stored precision.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// LedgerErrorCode defines error codes for ledger normalization errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Record validation errors (01XXXX)
	ErrCodeMissingAmount    LedgerErrorCode = "LDG-010001"
	ErrCodeNonNumericAmount LedgerErrorCode = "LDG-010002"
	ErrCodeNegativeAmount   LedgerErrorCode = "LDG-010003"
	ErrCodeMissingKind      LedgerErrorCode = "LDG-010004"
	ErrCodeInvalidKind      LedgerErrorCode = "LDG-010005"
	ErrCodeMissingDate      LedgerErrorCode = "LDG-010006"
	ErrCodeInvalidDate      LedgerErrorCode = "LDG-010007"
	ErrCodeInvalidSource    LedgerErrorCode = "LDG-010008"
	ErrCodeInvalidRecordID  LedgerErrorCode = "LDG-010009"
	ErrCodeFieldTooLong     LedgerErrorCode = "LDG-010010"
	ErrCodeAmountOutOfRange LedgerErrorCode = "LDG-010011"
)

// LedgerError represents a ledger normalization error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
