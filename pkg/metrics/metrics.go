package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Ингест каталога из Kafka.
var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

// Кэш товаров.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Product cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of products currently in cache",
		},
	)
)

// Каталог, заказы и хранилище.
var (
	ProductsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "products_created_total",
			Help: "Number of products created",
		},
	)
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Number of orders created",
		},
	)
	OrdersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Number of order requests rejected before persistence",
		},
		[]string{"reason"}, // validation|reference
	)
	OrderRecordsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_records_skipped_total",
			Help: "Stored order records skipped while listing because they could not be read",
		},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Document store operation failures",
		},
		[]string{"collection", "op"},
	)
)

// HTTP API. route — шаблон gin ("/products/:id"), для неизвестных путей "unmatched".
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 3},
		},
		[]string{"method", "route"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация в prometheus.DefaultRegisterer; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			CacheOps, CacheSize,
			ProductsCreated, OrdersCreated, OrdersRejected, OrderRecordsSkipped, StoreErrors,
			HTTPRequests, HTTPRequestDuration,
		)
	})
}
