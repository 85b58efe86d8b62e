package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire format of every published order event.
type Envelope struct {
	EventID   string          `json:"event_id"`
	Key       string          `json:"key"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope marshals payload and stamps the envelope with a fresh event id.
func NewEnvelope(key, msgType string, payload any, at time.Time) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		EventID:   uuid.NewString(),
		Key:       key,
		Type:      msgType,
		Payload:   data,
		Timestamp: at.UTC(),
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

// MessageHandler processes a single raw message.
type MessageHandler func(ctx context.Context, key, value []byte) error

// Worker pulls messages from a broker and feeds them to a handler until ctx ends.
type Worker interface {
	Start(ctx context.Context, handler MessageHandler) error
	Close() error
}

var errWorkerPanic = errors.New("worker panicked")
