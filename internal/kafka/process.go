package kafka

import (
	"context"
	"errors"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/pkg/metrics"
)

const tracerName = "github.com/Gunvolt24/shop/internal/kafka"

// outcome — судьба сообщения после обработки.
type outcome int

const (
	outcomeStored   outcome = iota // товар сохранён, коммит
	outcomeRejected                // payload отбракован, коммит без повторов
	outcomeRetry                   // временный сбой, без коммита
)

func (o outcome) String() string {
	switch o {
	case outcomeStored:
		return "stored"
	case outcomeRejected:
		return "rejected"
	default:
		return "retry"
	}
}

// process сохраняет товар из сообщения в рамках processTimeout.
// Спан продолжает трассу продюсера, если тот положил traceparent в заголовки.
func (c *Consumer) process(ctx context.Context, topic string, msg *kafka.Message) outcome {
	ctx = otel.GetTextMapPropagator().Extract(ctx, headerCarrier{msg: msg})
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.ingest "+topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	pctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.service.CreateFromMessage(pctx, msg.Value)
	cancel()

	res := classify(err)
	span.SetAttributes(attribute.String("catalog.ingest.outcome", res.String()))

	switch res {
	case outcomeStored:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
	case outcomeRejected:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		span.RecordError(err)
		c.log.Warnf(ctx, "invalid product message partition=%d offset=%d: %v (skipped)", msg.Partition, msg.Offset, err)
	case outcomeRetry:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warnf(ctx, "process failed partition=%d offset=%d: %v (will retry without commit)", msg.Partition, msg.Offset, err)
	}
	return res
}

func classify(err error) outcome {
	switch {
	case err == nil:
		return outcomeStored
	case errors.Is(err, domain.ErrValidation):
		return outcomeRejected
	default:
		return outcomeRetry
	}
}

// headerCarrier — заголовки сообщения как TextMapCarrier для пропагаторов otel.
type headerCarrier struct {
	msg *kafka.Message
}

var _ propagation.TextMapCarrier = headerCarrier{}

func (h headerCarrier) Get(key string) string {
	for _, hd := range h.msg.Headers {
		if strings.EqualFold(hd.Key, key) {
			return string(hd.Value)
		}
	}
	return ""
}

func (h headerCarrier) Set(key, value string) {
	for i, hd := range h.msg.Headers {
		if strings.EqualFold(hd.Key, key) {
			h.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	h.msg.Headers = append(h.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (h headerCarrier) Keys() []string {
	keys := make([]string, 0, len(h.msg.Headers))
	for _, hd := range h.msg.Headers {
		keys = append(keys, hd.Key)
	}
	return keys
}
