// Package queue carries mobile-money sync batches over AMQP.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pesawise/backend/internal/application/adapter"
)

// SyncBatchMessage is the wire form of a queued sync batch.
type SyncBatchMessage struct {
	adapter.SyncBatch
	QueuedAt time.Time `json:"queued_at"`
}

// NewSyncBatchMessage wraps a batch for publishing.
func NewSyncBatchMessage(batch *adapter.SyncBatch, queuedAt time.Time) *SyncBatchMessage {
	return &SyncBatchMessage{
		SyncBatch: *batch,
		QueuedAt:  queuedAt,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *SyncBatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncBatchMessageFromJSON decodes a message body.
func SyncBatchMessageFromJSON(data []byte) (*SyncBatchMessage, error) {
	var msg SyncBatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if len(msg.Records) == 0 {
		return nil, fmt.Errorf("sync batch %s has no records", msg.BatchID)
	}
	return &msg, nil
}
