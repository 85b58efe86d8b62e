package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"MockECommerce/internal/api/messaging"
	"MockECommerce/pkg/correlation"
	"MockECommerce/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisher_Publish(t *testing.T) {
	l := logger.NewWithLogger(zerolog.New(&bytes.Buffer{}))
	env, err := messaging.NewEnvelope("order-1", "order.created", map[string]string{"status": "Pending"}, time.Now())
	require.NoError(t, err)

	t.Run("should key by order id and propagate correlation id", func(t *testing.T) {
		w := &fakeWriter{}
		p := &Publisher{writer: w, topic: "orders.events", logger: l}
		ctx := correlation.WithID(context.Background(), "corr-1")

		require.NoError(t, p.Publish(ctx, env))

		require.Len(t, w.messages, 1)
		msg := w.messages[0]
		assert.Equal(t, "order-1", string(msg.Key))
		assert.Equal(t, "corr-1", header(msg, correlation.KafkaHeaderName))
		assert.Equal(t, "order.created", header(msg, "event_type"))

		var decoded messaging.Envelope
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, env.EventID, decoded.EventID)
	})

	t.Run("should omit correlation header when absent", func(t *testing.T) {
		w := &fakeWriter{}
		p := &Publisher{writer: w, topic: "orders.events", logger: l}

		require.NoError(t, p.Publish(context.Background(), env))

		assert.Empty(t, header(w.messages[0], correlation.KafkaHeaderName))
	})

	t.Run("should return write errors", func(t *testing.T) {
		p := &Publisher{writer: &fakeWriter{err: errors.New("leader not available")}, topic: "orders.events", logger: l}

		err := p.Publish(context.Background(), env)

		assert.ErrorContains(t, err, "leader not available")
	})
}

func TestDLQPublisher(t *testing.T) {
	w := &fakeWriter{}
	failedAt := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	p := &DLQPublisher{writer: w, topic: "orders.events.dlq", now: func() time.Time { return failedAt }}

	require.NoError(t, p.PublishToDLQ(context.Background(), []byte("order-1"), []byte("{}"), errors.New("index failed")))

	require.Len(t, w.messages, 1)
	assert.Equal(t, "index failed", header(w.messages[0], "error"))
	assert.Equal(t, "2025-05-06T07:08:09Z", header(w.messages[0], "failed_at"))
}

func TestContextFromHeaders(t *testing.T) {
	ctx := contextFromHeaders(context.Background(), []kafka.Header{{Key: correlation.KafkaHeaderName, Value: []byte("corr-9")}})
	assert.Equal(t, "corr-9", correlation.FromContext(ctx))

	ctx = contextFromHeaders(context.Background(), nil)
	assert.NotEmpty(t, correlation.FromContext(ctx))
}
