// Package ledger contains the ledger normalizer and transaction use cases.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

const (
	// MaxExternalRefLength is the maximum length of a mobile-money reference.
	MaxExternalRefLength = 64
	// AmountScale is the number of decimal places kept for amounts.
	AmountScale = 2
)

// MaxAmount is the exclusive upper bound of a storable amount (decimal(15,2)).
var MaxAmount = decimal.New(1, 13)

// RawRecord is an untyped event record, typically decoded JSON.
type RawRecord map[string]any

// Rejection reports one record that failed normalization.
type Rejection struct {
	Index  int
	Code   domainerror.LedgerErrorCode
	Reason string
	Record RawRecord
}

// NormalizeResult holds the canonical transactions and the rejected records of a batch.
// Both slices are always non-nil.
type NormalizeResult struct {
	Transactions []*entity.Transaction
	Rejected     []Rejection
}

// sourceAliases maps accepted source spellings to canonical sources.
var sourceAliases = map[string]entity.TransactionSource{
	"":              entity.TransactionSourceManual,
	"manual":        entity.TransactionSourceManual,
	"external-sync": entity.TransactionSourceExternalSync,
	"mpesa":         entity.TransactionSourceExternalSync,
	"m-pesa":        entity.TransactionSourceExternalSync,
	"bank":          entity.TransactionSourceBank,
}

// Normalize validates and coerces raw records into canonical transactions owned by userID.
// A bad record is rejected on its own and never aborts the batch.
func Normalize(userID uuid.UUID, records []RawRecord) NormalizeResult {
	result := NormalizeResult{
		Transactions: make([]*entity.Transaction, 0, len(records)),
		Rejected:     make([]Rejection, 0),
	}

	for i, record := range records {
		txn, err := normalizeRecord(userID, record)
		if err != nil {
			result.Rejected = append(result.Rejected, newRejection(i, record, err))
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	return result
}

// NormalizeExternal maps mobile-money payloads onto canonical transactions.
// "received" becomes income and any other non-empty type becomes an expense.
func NormalizeExternal(userID uuid.UUID, records []entity.ExternalRecord) NormalizeResult {
	raw := make([]RawRecord, len(records))
	for i, r := range records {
		raw[i] = externalToRaw(r)
	}
	return Normalize(userID, raw)
}

// ValidateTransactions re-checks stored transactions against the normalization rules.
// Rows that fail are returned as rejections with their record form.
func ValidateTransactions(txns []*entity.Transaction) NormalizeResult {
	result := NormalizeResult{
		Transactions: make([]*entity.Transaction, 0, len(txns)),
		Rejected:     make([]Rejection, 0),
	}

	for i, t := range txns {
		if t == nil {
			continue
		}
		if err := validateTransaction(t); err != nil {
			result.Rejected = append(result.Rejected, newRejection(i, t.ToRecord(), err))
			continue
		}
		result.Transactions = append(result.Transactions, t)
	}

	return result
}

func externalToRaw(r entity.ExternalRecord) RawRecord {
	raw := RawRecord{
		"amount":      r.Amount,
		"date":        r.Date,
		"source":      string(entity.TransactionSourceExternalSync),
		"description": r.Description,
	}

	switch kind := strings.ToLower(strings.TrimSpace(r.Type)); {
	case kind == entity.ExternalTypeReceived:
		raw["kind"] = string(entity.TransactionKindIncome)
	case kind != "":
		raw["kind"] = string(entity.TransactionKindExpense)
	}

	if strings.TrimSpace(r.Description) == "" {
		raw["description"] = r.CounterpartyName()
	}
	if r.ID != "" {
		raw["external_ref"] = r.ID
	}

	return raw
}

func normalizeRecord(userID uuid.UUID, record RawRecord) (*entity.Transaction, error) {
	id, err := parseID(record["id"])
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(record["amount"])
	if err != nil {
		return nil, err
	}

	rawKind, ok := record["kind"]
	if !ok {
		rawKind = record["type"]
	}
	kind, err := parseKind(rawKind)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(record["date"])
	if err != nil {
		return nil, err
	}

	source, err := parseSource(record["source"])
	if err != nil {
		return nil, err
	}

	category := stringField(record, "category")
	if strings.TrimSpace(category) == "" {
		category = entity.DefaultCategory
	}

	txn := &entity.Transaction{
		ID:          id,
		UserID:      userID,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		Description: stringField(record, "description"),
		Date:        date,
		Source:      source,
		ExternalRef: stringField(record, "external_ref"),
	}
	if err := checkFieldLengths(txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// checkFieldLengths enforces the column sizes of the transactions table.
func checkFieldLengths(t *entity.Transaction) error {
	for _, field := range []struct {
		name  string
		value string
		max   int
	}{
		{"category", t.Category, MaxCategoryLength},
		{"description", t.Description, MaxDescriptionLength},
		{"external_ref", t.ExternalRef, MaxExternalRefLength},
	} {
		if utf8.RuneCountInString(field.value) > field.max {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeFieldTooLong,
				fmt.Sprintf("%s must not exceed %d characters", field.name, field.max),
				domainerror.ErrFieldTooLong,
			)
		}
	}
	return nil
}

func validateTransaction(t *entity.Transaction) error {
	if t.Amount.IsNegative() {
		return domainerror.NewLedgerError(domainerror.ErrCodeNegativeAmount, "amount must not be negative", domainerror.ErrNegativeAmount)
	}
	if t.Kind == "" {
		return domainerror.NewLedgerError(domainerror.ErrCodeMissingKind, "kind is required", domainerror.ErrMissingKind)
	}
	if !t.Kind.IsValid() {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidKind, fmt.Sprintf("unknown kind %q", t.Kind), domainerror.ErrInvalidKind)
	}
	if t.Date.IsZero() {
		return domainerror.NewLedgerError(domainerror.ErrCodeMissingDate, "date is required", domainerror.ErrMissingDate)
	}
	return nil
}

func parseID(v any) (uuid.UUID, error) {
	switch id := v.(type) {
	case nil:
		return uuid.New(), nil
	case uuid.UUID:
		if id == uuid.Nil {
			return uuid.New(), nil
		}
		return id, nil
	case string:
		if strings.TrimSpace(id) == "" {
			return uuid.New(), nil
		}
		parsed, err := uuid.Parse(strings.TrimSpace(id))
		if err != nil {
			return uuid.Nil, domainerror.NewLedgerError(domainerror.ErrCodeInvalidRecordID, fmt.Sprintf("invalid id %q", id), domainerror.ErrInvalidRecordID)
		}
		return parsed, nil
	default:
		return uuid.Nil, domainerror.NewLedgerError(domainerror.ErrCodeInvalidRecordID, "id must be a string", domainerror.ErrInvalidRecordID)
	}
}

func parseAmount(v any) (decimal.Decimal, error) {
	var amount decimal.Decimal

	switch a := v.(type) {
	case nil:
		return decimal.Zero, domainerror.NewLedgerError(domainerror.ErrCodeMissingAmount, "amount is required", domainerror.ErrMissingAmount)
	case decimal.Decimal:
		amount = a
	case float64:
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return decimal.Zero, nonNumeric(a)
		}
		amount = decimal.NewFromFloat(a)
	case float32:
		if math.IsNaN(float64(a)) || math.IsInf(float64(a), 0) {
			return decimal.Zero, nonNumeric(a)
		}
		amount = decimal.NewFromFloat32(a)
	case int:
		amount = decimal.NewFromInt(int64(a))
	case int32:
		amount = decimal.NewFromInt32(a)
	case int64:
		amount = decimal.NewFromInt(a)
	case json.Number:
		parsed, err := decimal.NewFromString(a.String())
		if err != nil {
			return decimal.Zero, nonNumeric(a)
		}
		amount = parsed
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return decimal.Zero, domainerror.NewLedgerError(domainerror.ErrCodeMissingAmount, "amount is required", domainerror.ErrMissingAmount)
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, nonNumeric(a)
		}
		amount = parsed
	default:
		return decimal.Zero, nonNumeric(a)
	}

	if amount.IsNegative() {
		return decimal.Zero, domainerror.NewLedgerError(domainerror.ErrCodeNegativeAmount, fmt.Sprintf("amount %s is negative", amount), domainerror.ErrNegativeAmount)
	}

	// Cents are the smallest stored unit.
	amount = amount.Round(AmountScale)
	if amount.GreaterThanOrEqual(MaxAmount) {
		return decimal.Zero, domainerror.NewLedgerError(domainerror.ErrCodeAmountOutOfRange, fmt.Sprintf("amount %s exceeds %s", amount, MaxAmount), domainerror.ErrAmountOutOfRange)
	}

	return amount, nil
}

func nonNumeric(v any) error {
	return domainerror.NewLedgerError(domainerror.ErrCodeNonNumericAmount, fmt.Sprintf("amount %v is not numeric", v), domainerror.ErrNonNumericAmount)
}

func parseKind(v any) (entity.TransactionKind, error) {
	if v == nil {
		return "", domainerror.NewLedgerError(domainerror.ErrCodeMissingKind, "kind is required", domainerror.ErrMissingKind)
	}

	var s string
	switch k := v.(type) {
	case string:
		s = k
	case entity.TransactionKind:
		s = string(k)
	default:
		return "", domainerror.NewLedgerError(domainerror.ErrCodeInvalidKind, fmt.Sprintf("unknown kind %v", v), domainerror.ErrInvalidKind)
	}

	kind := entity.TransactionKind(strings.ToLower(strings.TrimSpace(s)))
	if kind == "" {
		return "", domainerror.NewLedgerError(domainerror.ErrCodeMissingKind, "kind is required", domainerror.ErrMissingKind)
	}
	if !kind.IsValid() {
		return "", domainerror.NewLedgerError(domainerror.ErrCodeInvalidKind, fmt.Sprintf("unknown kind %q", s), domainerror.ErrInvalidKind)
	}

	return kind, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, domainerror.NewLedgerError(domainerror.ErrCodeMissingDate, "date is required", domainerror.ErrMissingDate)
	case time.Time:
		if d.IsZero() {
			return time.Time{}, domainerror.NewLedgerError(domainerror.ErrCodeMissingDate, "date is required", domainerror.ErrMissingDate)
		}
		return entity.CalendarDate(d), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, domainerror.NewLedgerError(domainerror.ErrCodeMissingDate, "date is required", domainerror.ErrMissingDate)
		}
		if t, err := time.Parse(entity.DateLayout, s); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return entity.CalendarDate(t), nil
		}
		return time.Time{}, domainerror.NewLedgerError(domainerror.ErrCodeInvalidDate, fmt.Sprintf("invalid date %q", d), domainerror.ErrInvalidDate)
	default:
		return time.Time{}, domainerror.NewLedgerError(domainerror.ErrCodeInvalidDate, fmt.Sprintf("invalid date %v", v), domainerror.ErrInvalidDate)
	}
}

func parseSource(v any) (entity.TransactionSource, error) {
	var s string
	switch src := v.(type) {
	case nil:
	case string:
		s = src
	case entity.TransactionSource:
		s = string(src)
	default:
		return "", domainerror.NewLedgerError(domainerror.ErrCodeInvalidSource, fmt.Sprintf("unknown source %v", v), domainerror.ErrInvalidSource)
	}

	source, ok := sourceAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", domainerror.NewLedgerError(domainerror.ErrCodeInvalidSource, fmt.Sprintf("unknown source %q", s), domainerror.ErrInvalidSource)
	}
	return source, nil
}

func stringField(record RawRecord, key string) string {
	s, _ := record[key].(string)
	return s
}

func newRejection(index int, record RawRecord, err error) Rejection {
	rejection := Rejection{
		Index:  index,
		Reason: err.Error(),
		Record: record,
	}
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		rejection.Code = ledgerErr.Code
		rejection.Reason = ledgerErr.Message
	}
	return rejection
}
