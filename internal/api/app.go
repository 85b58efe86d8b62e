package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"MockECommerce/config"
	"MockECommerce/internal/api/domain/order"
	"MockECommerce/internal/api/external/kafka"
	"MockECommerce/internal/api/external/opensearch"
	"MockECommerce/internal/api/handlers"
	"MockECommerce/internal/api/messaging"
	"MockECommerce/internal/api/middleware"
	order_repo "MockECommerce/internal/api/repo/order"
	product_repo "MockECommerce/internal/api/repo/product"
	"MockECommerce/pkg/health"
	"MockECommerce/pkg/logger"
	"MockECommerce/pkg/postgres"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func Run(cfg config.Config) {
	logger.Setup(logger.Options{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		ContextAttrs: []logger.ContextAttr{middleware.UserLogAttr},
	})
	l := logger.New(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("api - Run - postgres.New: %w", err))
	}
	defer pool.Close()

	if err := ApplyMigrations(cfg.PgURL, MigrationFS); err != nil {
		l.Fatal(fmt.Errorf("api - Run - ApplyMigrations: %w", err))
	}

	healthRegistry := health.NewRegistry(health.NewPostgresChecker(pool.Pool))

	var products order.ProductRepo = product_repo.NewPgProductRepo(pool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		products = product_repo.NewCachedProductRepo(products, rdb, cfg.ProductCacheTTL)
		healthRegistry.Register(health.NewRedisChecker(rdb))
	}

	events, history, workersDone, err := setUpEvents(ctx, l, cfg, healthRegistry)
	if err != nil {
		l.Fatal(fmt.Errorf("api - Run - setUpEvents: %w", err))
	}

	deps := order.Dependencies{
		Orders:   order_repo.NewPgOrderRepo(pool),
		Products: products,
		Events:   events,
	}
	// A nil *OrderEventSink must not reach the interface field.
	if history != nil {
		deps.History = history
	}
	orderService := order.NewOrderService(deps)
	orderHandler := handlers.NewOrderHandler(orderService, cfg.EnforceOwnership)

	engine := NewGinEngine(l, cfg.GinMode)
	auth := middleware.AuthConfig{
		Secret:   []byte(cfg.JWTSecretKey),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}
	NewRouter(orderHandler, auth, healthRegistry).SetUp(engine)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info("Starting API HTTP server: port=%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		l.Info("Shutting down API service gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Error("api - Run: %v", err)
	}

	// The worker stops on ctx; make sure it is cancelled when the server
	// failed on its own.
	cancel()
	if workersDone != nil {
		<-workersDone
	}
	if err := events.Close(); err != nil {
		l.Error("close event publishers: %v", err)
	}
}

// setUpEvents picks the event pipeline from configuration:
//   - Kafka and OpenSearch: events go to Kafka and an in-process worker
//     indexes them into OpenSearch.
//   - OpenSearch only: events are indexed directly.
//   - Kafka only: events go to Kafka, order history is unavailable.
//
// With neither configured the publisher has no sinks.
func setUpEvents(
	ctx context.Context,
	l *logger.Logger,
	cfg config.Config,
	registry *health.Registry,
) (*messaging.OrderEventPublisher, *opensearch.OrderEventSink, <-chan struct{}, error) {
	var (
		sinks   []messaging.Sink
		history *opensearch.OrderEventSink
		done    <-chan struct{}
	)

	if len(cfg.OpensearchUrls) > 0 {
		client, err := opensearch.NewClient(cfg.OpensearchUrls)
		if err != nil {
			return nil, nil, nil, err
		}
		history, err = opensearch.NewOrderEventSink(ctx, client, cfg.OpensearchIndexOrderEvents)
		if err != nil {
			return nil, nil, nil, err
		}
		registry.Register(health.NewOpenSearchChecker(client))
	}

	if len(cfg.KafkaBrokers) > 0 {
		sinks = append(sinks, messaging.Sink{
			Name:      "kafka",
			Publisher: kafka.NewPublisher(l, cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic),
		})
		registry.Register(health.NewKafkaChecker(cfg.KafkaBrokers))

		if history != nil {
			done = StartWorkers(ctx, l, cfg, history)
		}
	} else if history != nil {
		sinks = append(sinks, messaging.Sink{Name: "opensearch", Publisher: history})
	}

	l.Info("Order events: sinks=%d history=%t indexer=%t", len(sinks), history != nil, done != nil)
	return messaging.NewOrderEventPublisher(sinks...), history, done, nil
}
