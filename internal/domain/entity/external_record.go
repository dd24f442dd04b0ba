// Package entity defines the core business entities for the domain layer.
package entity

// ExternalRecord is a mobile-money payload as received from the sync source.
// Fields are untrusted; the ledger normalizer is the only consumer.
type ExternalRecord struct {
	ID           string `json:"id"`
	Amount       any    `json:"amount"`
	Type         string `json:"type"` // "received" or "sent"
	Counterparty string `json:"counterparty"`
	From         string `json:"from,omitempty"`
	To           string `json:"to,omitempty"`
	Date         string `json:"date"`
	Description  string `json:"description"`
}

// ExternalTypeReceived marks an inbound transfer.
const ExternalTypeReceived = "received"

// CounterpartyName returns the counterparty, falling back to the from/to fields.
func (r ExternalRecord) CounterpartyName() string {
	switch {
	case r.Counterparty != "":
		return r.Counterparty
	case r.From != "":
		return r.From
	default:
		return r.To
	}
}
