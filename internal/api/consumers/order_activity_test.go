package consumers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"MockECommerce/internal/api/messaging"
	"MockECommerce/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	stored []messaging.Envelope
	err    error
}

func (f *fakeIndex) Publish(_ context.Context, env messaging.Envelope) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, env)
	return nil
}

func TestOrderActivityController_HandleMessage(t *testing.T) {
	ctx := context.Background()
	l := logger.NewWithLogger(zerolog.New(&bytes.Buffer{}))

	env, err := messaging.NewEnvelope("order-1", "order.created", map[string]string{"status": "Pending"}, time.Now())
	require.NoError(t, err)
	raw, err := json.Marshal(env)
	require.NoError(t, err)

	t.Run("should index decoded envelope", func(t *testing.T) {
		index := &fakeIndex{}
		c := NewOrderActivityController(l, index)

		require.NoError(t, c.HandleMessage(ctx, []byte("order-1"), raw))

		require.Len(t, index.stored, 1)
		assert.Equal(t, env.EventID, index.stored[0].EventID)
	})

	t.Run("should reject garbage as permanent", func(t *testing.T) {
		c := NewOrderActivityController(l, &fakeIndex{})

		err := c.HandleMessage(ctx, []byte("order-1"), []byte("not json"))

		assert.True(t, messaging.IsPermanent(err))
	})

	t.Run("should reject envelope without event id", func(t *testing.T) {
		c := NewOrderActivityController(l, &fakeIndex{})

		err := c.HandleMessage(ctx, []byte("order-1"), []byte(`{"key":"order-1"}`))

		assert.True(t, messaging.IsPermanent(err))
	})

	t.Run("should surface index failures for retry", func(t *testing.T) {
		c := NewOrderActivityController(l, &fakeIndex{err: errors.New("cluster red")})

		err := c.HandleMessage(ctx, []byte("order-1"), raw)

		require.Error(t, err)
		assert.False(t, messaging.IsPermanent(err))
	})
}
