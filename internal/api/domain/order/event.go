package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source event.go -destination mock_event.go -package order

type EventKind string

const (
	EventCreated       EventKind = "order.created"
	EventStatusUpdated EventKind = "order.status_updated"
	EventDeleted       EventKind = "order.deleted"
)

type Event struct {
	Kind       EventKind `json:"kind"`
	Order      OrderDto  `json:"order"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event Event) error
}

// ActivityRecord is one stored lifecycle event of an order.
type ActivityRecord struct {
	EventID    string    `json:"eventId"`
	Kind       EventKind `json:"kind"`
	Order      OrderDto  `json:"order"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventHistory reads back published events, oldest first.
type EventHistory interface {
	GetOrderEvents(ctx context.Context, orderID uuid.UUID) ([]ActivityRecord, error)
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderEvent(context.Context, Event) error { return nil }
