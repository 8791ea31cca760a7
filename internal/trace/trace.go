// Package trace wires the OTLP trace exporter. Tracing is optional: when
// no endpoint is configured Init installs nothing and the tracer returned
// by Tracer is a no-op.
package trace

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "generate-agent"

// Config holds tracing configuration.
type Config struct {
	Endpoint string // host:port of the OTLP endpoint; empty disables tracing
	APIKey   string // optional API key sent as Authorization header
}

// otelErrorHandler logs OTel internal errors via slog.
type otelErrorHandler struct{}

func (otelErrorHandler) Handle(err error) {
	slog.Error("otel error", "error", err)
}

// Init sets up the global tracer provider. The returned shutdown func
// flushes pending spans; it is a no-op when tracing is disabled.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	otel.SetErrorHandler(otelErrorHandler{})

	opts := []otlptracehttp.Option{
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.APIKey != "" {
		opts = append(opts, otlptracehttp.WithHeaders(map[string]string{
			"Authorization": "Bearer " + cfg.APIKey,
		}))
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}

	// Synchronous export: the process is short-lived, so batching would
	// drop spans emitted right before exit.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns the generate-agent tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(serviceName)
}
