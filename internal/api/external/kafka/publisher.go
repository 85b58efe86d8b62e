package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MockECommerce/internal/api/messaging"
	"MockECommerce/pkg/correlation"
	"MockECommerce/pkg/logger"

	"github.com/segmentio/kafka-go"
)

var _ messaging.Publisher = (*Publisher)(nil)

// messageWriter is the part of *kafka.Writer the publishers use.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order event envelopes to a topic, keyed by order id so
// events of one order stay ordered within a partition.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *logger.Logger
}

func NewPublisher(l *logger.Logger, brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}

	return &Publisher{writer: writer, topic: topic, logger: l}
}

func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.Type)},
		},
	}
	if corrID := correlation.FromContext(ctx); corrID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   correlation.KafkaHeaderName,
			Value: []byte(corrID),
		})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorCtx(ctx, "Failed to publish message: topic=%s key=%s error=%v", p.topic, env.Key, err)
		return fmt.Errorf("write message: %w", err)
	}

	p.logger.DebugCtx(ctx, "Message published: topic=%s key=%s event_id=%s type=%s",
		p.topic, env.Key, env.EventID, env.Type)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
