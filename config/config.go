package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultPrefix — префикс переменных окружения сервиса (SHOP_HTTP_ADDR и т.д.).
const DefaultPrefix = "SHOP"

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"3s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Metrics struct {
	Addr string `default:":2112" envconfig:"ADDR"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"shop-api" envconfig:"OTEL_SERVICE_NAME"`
	Environment string  `default:"dev" envconfig:"OTEL_ENVIRONMENT"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Mongo struct {
	URI                    string        `default:"mongodb://mongo:27017" envconfig:"URI"`
	Database               string        `default:"shop" envconfig:"DATABASE"`
	ConnectTimeout         time.Duration `default:"5s" envconfig:"CONNECT_TIMEOUT"`
	ServerSelectionTimeout time.Duration `default:"5s" envconfig:"SERVER_SELECTION_TIMEOUT"`
	MaxPoolSize            uint64        `default:"20" envconfig:"MAX_POOL_SIZE"`
}

type Kafka struct {
	Enabled        bool          `default:"false" envconfig:"ENABLED"`
	Brokers        []string      `default:"kafka:9092" envconfig:"BROKERS"`
	Topic          string        `default:"products" envconfig:"TOPIC"`
	GroupID        string        `default:"shop-catalog" envconfig:"GROUP_ID"`
	StartOffset    string        `default:"last" envconfig:"START_OFFSET"`
	ProcessTimeout time.Duration `default:"5s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
}

type Cache struct {
	Capacity int           `default:"1000" envconfig:"CAPACITY"`
	TTL      time.Duration `default:"10m" envconfig:"TTL"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Config struct {
	HTTP    HTTP
	Metrics Metrics
	Tracing Tracing
	Mongo   Mongo
	Kafka   Kafka
	Cache   Cache
	Logger  Logger
}

// Load — конфигурация из окружения с префиксом SHOP.
func Load() (Config, error) {
	return LoadWithPrefix(DefaultPrefix)
}

// LoadWithPrefix — то же, но с произвольным префиксом (нужно тестам).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", prefix, err)
	}

	return c, nil
}

// Validate — проверки, которые не выразить тегами envconfig.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Mongo.URI) == "" || strings.TrimSpace(c.Mongo.Database) == "" {
		errs = append(errs, errors.New("mongo uri and database are required"))
	}
	if c.HTTP.HandlerTimeout < 0 {
		errs = append(errs, errors.New("http handler timeout must not be negative"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing sample ratio %v out of [0,1]", c.Tracing.SampleRatio))
	}
	if c.Cache.Capacity < 0 {
		errs = append(errs, errors.New("cache capacity must not be negative"))
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || strings.TrimSpace(c.Kafka.Topic) == "") {
		errs = append(errs, errors.New("kafka brokers and topic are required when ingest is enabled"))
	}

	return errors.Join(errs...)
}
