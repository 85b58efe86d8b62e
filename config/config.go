package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	PgURL     string `env:"PG_URL,required"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	GinMode   string `env:"GIN_MODE" envDefault:"release"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	JWTSecretKey string `env:"JWT_SECRET_KEY,required"`
	JWTIssuer    string `env:"JWT_ISSUER"`
	JWTAudience  string `env:"JWT_AUDIENCE"`

	// When off, any caller in the right role may act on any user's orders.
	EnforceOwnership bool `env:"AUTH_ENFORCE_OWNERSHIP" envDefault:"true"`

	// Kafka is optional: no brokers means no event publishing to Kafka.
	KafkaBrokers          []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaOrderEventsTopic string   `env:"KAFKA_ORDER_EVENTS_TOPIC" envDefault:"orders.events"`
	KafkaOrderEventsDLQ   string   `env:"KAFKA_ORDER_EVENTS_DLQ_TOPIC" envDefault:"orders.events.dlq"`
	// Consumer group of the worker that indexes order events into OpenSearch.
	KafkaIndexerGroup string `env:"KAFKA_INDEXER_CONSUMER_GROUP" envDefault:"order-activity-indexer"`

	// Redis is optional: no address means product lookups always hit Postgres.
	RedisAddr       string        `env:"REDIS_ADDR"`
	ProductCacheTTL time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"5m"`

	OpensearchUrls             []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexOrderEvents string   `env:"OPENSEARCH_INDEX_ORDER_EVENTS" envDefault:"order-events"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
