package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/Gunvolt24/shop/config"
)

func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("SHOP_TEST_DEFAULTS")
	require.NoError(t, err)

	assert.Equal(t, cfg.HTTP{
		Addr:              ":8080",
		GinMode:           "debug",
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		HandlerTimeout:    3 * time.Second,
		GracefulTimeout:   5 * time.Second,
	}, c.HTTP)
	assert.Equal(t, ":2112", c.Metrics.Addr)
	assert.Equal(t, cfg.Tracing{
		ServiceName: "shop-api",
		Environment: "dev",
		Endpoint:    "jaeger:4318",
		SampleRatio: 1,
	}, c.Tracing)
	assert.Equal(t, cfg.Mongo{
		URI:                    "mongodb://mongo:27017",
		Database:               "shop",
		ConnectTimeout:         5 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		MaxPoolSize:            20,
	}, c.Mongo)
	assert.Equal(t, cfg.Kafka{
		Brokers:        []string{"kafka:9092"},
		Topic:          "products",
		GroupID:        "shop-catalog",
		StartOffset:    "last",
		ProcessTimeout: 5 * time.Second,
		RetryInitial:   time.Second,
		RetryMax:       30 * time.Second,
	}, c.Kafka)
	assert.Equal(t, cfg.Cache{Capacity: 1000, TTL: 10 * time.Minute}, c.Cache)
	assert.False(t, c.Logger.IsProd)
}

func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "SHOP_TEST_OVR"
	env := map[string]string{
		"_HTTP_ADDR":                      ":9999",
		"_HTTP_GIN_MODE":                  "release",
		"_HTTP_HANDLER_TIMEOUT":           "4500ms",
		"_METRICS_ADDR":                   "",
		"_TRACING_OTEL_ENABLED":           "true",
		"_TRACING_OTEL_ENVIRONMENT":       "staging",
		"_TRACING_OTEL_SAMPLE_RATIO":      "0.25",
		"_MONGO_URI":                      "mongodb://u:p@h:27017",
		"_MONGO_DATABASE":                 "shop_test",
		"_MONGO_SERVER_SELECTION_TIMEOUT": "1500ms",
		"_MONGO_MAX_POOL_SIZE":            "42",
		"_KAFKA_ENABLED":                  "true",
		"_KAFKA_BROKERS":                  "k1:9092,k2:9093",
		"_KAFKA_START_OFFSET":             "first",
		"_KAFKA_RETRY_MAX":                "2m",
		"_CACHE_CAPACITY":                 "777",
		"_LOGGER_IS_PROD":                 "true",
	}
	for k, v := range env {
		t.Setenv(p+k, v)
	}

	c, err := cfg.LoadWithPrefix(p)
	require.NoError(t, err)

	assert.Equal(t, ":9999", c.HTTP.Addr)
	assert.Equal(t, "release", c.HTTP.GinMode)
	assert.Equal(t, 4500*time.Millisecond, c.HTTP.HandlerTimeout)
	assert.Empty(t, c.Metrics.Addr, "blank address disables the metrics listener")
	assert.True(t, c.Tracing.Enabled)
	assert.Equal(t, "staging", c.Tracing.Environment)
	assert.InDelta(t, 0.25, c.Tracing.SampleRatio, 1e-9)
	assert.Equal(t, "mongodb://u:p@h:27017", c.Mongo.URI)
	assert.Equal(t, "shop_test", c.Mongo.Database)
	assert.Equal(t, 1500*time.Millisecond, c.Mongo.ServerSelectionTimeout)
	assert.EqualValues(t, 42, c.Mongo.MaxPoolSize)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9093"}, c.Kafka.Brokers)
	assert.Equal(t, "first", c.Kafka.StartOffset)
	assert.Equal(t, 2*time.Minute, c.Kafka.RetryMax)
	assert.Equal(t, 777, c.Cache.Capacity)
	assert.True(t, c.Logger.IsProd)
}

func TestLoadWithPrefix_Errors(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		env    map[string]string
		want   string
	}{
		{"bad duration", "SHOP_TEST_BAD_DUR", map[string]string{"_HTTP_READ_TIMEOUT": "not-a-duration"}, "READ_TIMEOUT"},
		{"sample ratio above one", "SHOP_TEST_BAD_RATIO", map[string]string{"_TRACING_OTEL_SAMPLE_RATIO": "1.5"}, "sample ratio"},
		{"negative handler timeout", "SHOP_TEST_BAD_HT", map[string]string{"_HTTP_HANDLER_TIMEOUT": "-1s"}, "handler timeout"},
		{"kafka enabled without topic", "SHOP_TEST_BAD_KAFKA", map[string]string{"_KAFKA_ENABLED": "true", "_KAFKA_TOPIC": " "}, "kafka"},
		{"blank mongo database", "SHOP_TEST_BAD_DB", map[string]string{"_MONGO_DATABASE": " "}, "mongo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(tt.prefix+k, v)
			}
			_, err := cfg.LoadWithPrefix(tt.prefix)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
