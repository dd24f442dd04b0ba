// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the direction of a transaction (expense or income).
type TransactionKind string

const (
	TransactionKindExpense TransactionKind = "expense"
	TransactionKindIncome  TransactionKind = "income"
)

// IsValid reports whether the kind is one of the known kinds.
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindExpense || k == TransactionKindIncome
}

// TransactionSource represents where a transaction was recorded from.
type TransactionSource string

const (
	TransactionSourceManual       TransactionSource = "manual"
	TransactionSourceExternalSync TransactionSource = "external-sync"
	TransactionSourceBank         TransactionSource = "bank"
)

// IsValid reports whether the source is one of the known sources.
func (s TransactionSource) IsValid() bool {
	return s == TransactionSourceManual || s == TransactionSourceExternalSync || s == TransactionSourceBank
}

// DefaultCategory is assigned when a record carries no category label.
const DefaultCategory = "Uncategorized"

// DateLayout is the calendar date layout used across the API.
const DateLayout = "2006-01-02"

// Transaction represents one dated financial event.
// Amount is always a non-negative magnitude; the direction is carried by Kind.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Kind        TransactionKind
	Category    string
	Description string
	Date        time.Time // Calendar date, midnight UTC
	Source      TransactionSource
	ExternalRef string // Dedupe key for externally synced records
	CreatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	amount decimal.Decimal,
	kind TransactionKind,
	category string,
	description string,
	date time.Time,
	source TransactionSource,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		Description: description,
		Date:        CalendarDate(date),
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Kind == TransactionKindExpense
}

// IsIncome reports whether the transaction is income.
func (t *Transaction) IsIncome() bool {
	return t.Kind == TransactionKindIncome
}

// ToRecord renders the transaction as a loosely typed record, the same shape
// accepted by the ledger normalizer.
func (t *Transaction) ToRecord() map[string]any {
	record := map[string]any{
		"amount":      t.Amount.String(),
		"kind":        string(t.Kind),
		"category":    t.Category,
		"description": t.Description,
		"date":        t.Date.Format(DateLayout),
		"source":      string(t.Source),
	}
	if t.ID != uuid.Nil {
		record["id"] = t.ID.String()
	}
	if t.ExternalRef != "" {
		record["external_ref"] = t.ExternalRef
	}
	return record
}

// CalendarDate truncates a timestamp to its calendar day at midnight UTC.
// The day is taken from the timestamp's own location.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
