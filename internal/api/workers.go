package api

import (
	"context"

	"MockECommerce/config"
	"MockECommerce/internal/api/consumers"
	"MockECommerce/internal/api/external/kafka"
	"MockECommerce/internal/api/messaging"
	"MockECommerce/pkg/logger"
)

// StartWorkers runs the consumer that indexes order events from Kafka into
// the activity index. It returns immediately; the worker stops when ctx is
// cancelled and done is closed once it has released its connections.
func StartWorkers(ctx context.Context, l *logger.Logger, cfg config.Config, index consumers.ActivityIndex) (done <-chan struct{}) {
	dlq := kafka.NewDLQPublisher(cfg.KafkaBrokers, cfg.KafkaOrderEventsDLQ)

	controller := consumers.NewOrderActivityController(l, index)
	handler := messaging.WithMetrics(
		cfg.KafkaOrderEventsTopic,
		cfg.KafkaIndexerGroup,
		messaging.WithDLQ(
			messaging.WithRetry(controller.HandleMessage, messaging.DefaultRetryConfig()),
			dlq,
		),
	)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic, cfg.KafkaIndexerGroup)
	runner := messaging.NewRunner(l, []messaging.Worker{consumer}, handler)

	ch := make(chan struct{})
	go func() {
		defer close(ch)
		defer func() {
			if err := dlq.Close(); err != nil {
				l.Error("close dlq publisher: %v", err)
			}
		}()

		l.Info("Starting order activity indexer: topic=%s group=%s", cfg.KafkaOrderEventsTopic, cfg.KafkaIndexerGroup)
		if err := runner.Start(ctx); err != nil {
			l.Error("Order activity indexer failed: %v", err)
		}
	}()
	return ch
}
