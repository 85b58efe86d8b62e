package messaging

import (
	"context"
	"errors"
	"fmt"

	"MockECommerce/internal/api/domain/order"
	"MockECommerce/pkg/metrics"
)

var _ order.EventPublisher = (*OrderEventPublisher)(nil)

// Sink is a named destination for order events.
type Sink struct {
	Name      string
	Publisher Publisher
}

// OrderEventPublisher wraps order events in envelopes and fans them out to
// every sink. A failing sink does not stop delivery to the others.
type OrderEventPublisher struct {
	sinks []Sink
}

func NewOrderEventPublisher(sinks ...Sink) *OrderEventPublisher {
	return &OrderEventPublisher{sinks: sinks}
}

func (p *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event order.Event) error {
	env, err := NewEnvelope(event.Order.ID.String(), string(event.Kind), event, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("build envelope: %w", err)
	}

	var errs []error
	for _, sink := range p.sinks {
		status := "success"
		if err := sink.Publisher.Publish(ctx, env); err != nil {
			status = "error"
			errs = append(errs, fmt.Errorf("publish to %s: %w", sink.Name, err))
		}
		metrics.OrderEventsPublished.WithLabelValues(sink.Name, env.Type, status).Inc()
	}
	return errors.Join(errs...)
}

func (p *OrderEventPublisher) Close() error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", sink.Name, err))
		}
	}
	return errors.Join(errs...)
}
