// Package correlation carries the request correlation id from the HTTP
// edge through order events and back into log records.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

const (
	HeaderName      = "X-Correlation-ID"
	KafkaHeaderName = "X-Correlation-ID"
)

type contextKey struct{}

// FromContext returns "" when ctx carries no id.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// NewID returns a random UUIDv4 string.
func NewID() string {
	return uuid.New().String()
}
