package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"uilint/internal/shared/version"
)

// Tracer is the process-wide tracer used for lint spans. It resolves against
// the global provider, so spans are no-ops until SetupTracing runs.
var Tracer trace.Tracer = otel.Tracer("uilint")

// SetupTracing wires an OTLP gRPC exporter against the given endpoint and
// installs the tracer provider globally. The returned shutdown func flushes
// pending spans; callers defer it. An empty endpoint leaves tracing disabled.
func SetupTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("uilint"),
		semconv.ServiceVersion(version.Version),
	))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	Tracer = provider.Tracer("uilint")

	return provider.Shutdown, nil
}
