package consumers

import (
	"context"
	"encoding/json"
	"fmt"

	"MockECommerce/internal/api/messaging"
	"MockECommerce/pkg/logger"
)

// ActivityIndex stores one order event envelope.
type ActivityIndex interface {
	Publish(ctx context.Context, env messaging.Envelope) error
}

// OrderActivityController copies order events from Kafka into the
// activity index.
type OrderActivityController struct {
	logger *logger.Logger
	index  ActivityIndex
}

func NewOrderActivityController(l *logger.Logger, index ActivityIndex) *OrderActivityController {
	return &OrderActivityController{logger: l, index: index}
}

func (c *OrderActivityController) HandleMessage(ctx context.Context, key, value []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		c.logger.ErrorCtx(ctx, "Failed to unmarshal envelope: key=%s error=%v", string(key), err)
		return messaging.Permanent(fmt.Errorf("unmarshal envelope: %w", err))
	}
	if env.EventID == "" {
		return messaging.Permanent(fmt.Errorf("envelope for key %s has no event id", key))
	}

	if err := c.index.Publish(ctx, env); err != nil {
		c.logger.ErrorCtx(ctx, "Failed to index order event: event_id=%s key=%s error=%v",
			env.EventID, env.Key, err)
		return err
	}

	c.logger.DebugCtx(ctx, "Order event indexed: event_id=%s key=%s type=%s",
		env.EventID, env.Key, env.Type)
	return nil
}
