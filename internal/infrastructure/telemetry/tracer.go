// Package telemetry configura el TracerProvider de OpenTelemetry (exportador OTLP/HTTP).
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/ppf-inventory/pkg/config"
)

// Provider tracer de la aplicación y su función de apagado.
type Provider struct {
	Tracer   trace.Tracer
	Shutdown func(ctx context.Context) error
}

// Init registra un TracerProvider global si hay endpoint OTLP; sin endpoint devuelve
// el tracer global (no-op) y un Shutdown vacío.
func Init(ctx context.Context, cfg config.TelemetryConfig, version string) (*Provider, error) {
	if cfg.Endpoint == "" {
		return &Provider{
			Tracer:   otel.Tracer(cfg.ServiceName),
			Shutdown: func(context.Context) error { return nil },
		}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("exportador OTLP: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("resource OTel: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)

	return &Provider{Tracer: tp.Tracer(cfg.ServiceName), Shutdown: tp.Shutdown}, nil
}
