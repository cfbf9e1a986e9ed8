package telemetry

import (
	"context"
	"fmt"
	"log"
	"time"

	"rechord-client/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// Init configures tracing and metrics for the client. Every API request then
// carries a client span via the otelhttp transport. Returns a shutdown func.
func Init(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tel := cfg.Telemetry
	if tel.OTLPEndpoint == "" && tel.OTLPTracesEndpoint == "" && tel.OTLPMetricsEndpoint == "" {
		log.Println("OpenTelemetry disabled: OTEL_EXPORTER_OTLP_ENDPOINT is empty")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(tel.ServiceName),
			semconv.ServiceVersion(tel.ServiceVersion),
			attribute.String("deployment.environment", cfg.AppEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	traceEndpoint := tel.OTLPEndpoint
	if tel.OTLPTracesEndpoint != "" {
		traceEndpoint = tel.OTLPTracesEndpoint
	}
	metricEndpoint := tel.OTLPEndpoint
	if tel.OTLPMetricsEndpoint != "" {
		metricEndpoint = tel.OTLPMetricsEndpoint
	}

	traceExporter, metricExporter, err := newExporters(ctx, tel, traceEndpoint, metricEndpoint)
	if err != nil {
		return nil, err
	}

	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
	)
	metricProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(
			metricExporter,
			metric.WithInterval(tel.MetricExportInterval),
		)),
	)

	otel.SetTracerProvider(traceProvider)
	otel.SetMeterProvider(metricProvider)

	return func(shutdownCtx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(shutdownCtx, 5*time.Second)
		defer cancel()

		var shutdownErr error
		if err := traceProvider.Shutdown(shutdownCtx); err != nil {
			shutdownErr = err
		}
		if err := metricProvider.Shutdown(shutdownCtx); err != nil {
			if shutdownErr != nil {
				shutdownErr = fmt.Errorf("%w; %v", shutdownErr, err)
			} else {
				shutdownErr = err
			}
		}
		return shutdownErr
	}, nil
}

func newExporters(ctx context.Context, tel config.TelemetryConfig, traceEndpoint, metricEndpoint string) (trace.SpanExporter, metric.Exporter, error) {
	switch tel.OTLPProtocol {
	case "http/protobuf", "http":
		traceOptions := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(traceEndpoint),
			otlptracehttp.WithHeaders(tel.OTLPHeaders),
			otlptracehttp.WithTimeout(tel.ExportTimeout),
		}
		metricOptions := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(metricEndpoint),
			otlpmetrichttp.WithHeaders(tel.OTLPHeaders),
			otlpmetrichttp.WithTimeout(tel.ExportTimeout),
		}
		if tel.OTLPInsecure {
			traceOptions = append(traceOptions, otlptracehttp.WithInsecure())
			metricOptions = append(metricOptions, otlpmetrichttp.WithInsecure())
		}

		traceExporter, err := otlptracehttp.New(ctx, traceOptions...)
		if err != nil {
			return nil, nil, fmt.Errorf("create trace exporter: %w", err)
		}
		metricExporter, err := otlpmetrichttp.New(ctx, metricOptions...)
		if err != nil {
			return nil, nil, fmt.Errorf("create metric exporter: %w", err)
		}
		return traceExporter, metricExporter, nil
	default:
		traceOptions := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(traceEndpoint),
			otlptracegrpc.WithHeaders(tel.OTLPHeaders),
			otlptracegrpc.WithTimeout(tel.ExportTimeout),
		}
		metricOptions := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(metricEndpoint),
			otlpmetricgrpc.WithHeaders(tel.OTLPHeaders),
			otlpmetricgrpc.WithTimeout(tel.ExportTimeout),
		}
		if tel.OTLPInsecure {
			traceOptions = append(traceOptions, otlptracegrpc.WithInsecure())
			metricOptions = append(metricOptions, otlpmetricgrpc.WithInsecure())
		}

		traceExporter, err := otlptracegrpc.New(ctx, traceOptions...)
		if err != nil {
			return nil, nil, fmt.Errorf("create trace exporter: %w", err)
		}
		metricExporter, err := otlpmetricgrpc.New(ctx, metricOptions...)
		if err != nil {
			return nil, nil, fmt.Errorf("create metric exporter: %w", err)
		}
		return traceExporter, metricExporter, nil
	}
}
