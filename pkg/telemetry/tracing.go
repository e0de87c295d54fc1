package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const (
	DefaultServiceName = "shop-api"
	DefaultEndpoint    = "localhost:4318"
)

// Options — параметры экспорта трейсов.
type Options struct {
	ServiceName string
	Environment string  // deployment.environment, пусто — атрибут не ставится
	Endpoint    string  // host:port OTLP/HTTP коллектора
	SampleRatio float64 // доля корневых спанов, [0..1]
}

func (o Options) normalized() Options {
	o.ServiceName = strings.TrimSpace(o.ServiceName)
	if o.ServiceName == "" {
		o.ServiceName = DefaultServiceName
	}
	if strings.TrimSpace(o.Endpoint) == "" {
		o.Endpoint = DefaultEndpoint
	}
	o.SampleRatio = min(max(o.SampleRatio, 0), 1)
	return o
}

func (o Options) resource() *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(o.ServiceName),
		attribute.String("service.component", "catalog-orders"),
	}
	if env := strings.TrimSpace(o.Environment); env != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(env))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// SetupTracing ставит глобальный провайдер с OTLP/HTTP экспортом и пропагаторы W3C.
// Спаны otelgin (HTTP) и otelmongo (команды хранилища) уходят через него.
// Возвращает Shutdown провайдера.
func SetupTracing(ctx context.Context, opts Options) (func(context.Context) error, error) {
	opts = opts.normalized()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	// входящий sampled-флаг уважается, новые трассы семплируются по доле
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(opts.resource()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}
