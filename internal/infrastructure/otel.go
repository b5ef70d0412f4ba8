package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/config"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts"
)

const (
	ServiceName = config.AppName
	MeterName   = "transactions-eda"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	// TraceWriter receives stdout spans. Defaults to stderr so the report stays clean.
	TraceWriter io.Writer
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider trace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *promclient.Registry
	Tracer         trace.Tracer
	Meter          metric.Meter
	Logger         *slog.Logger

	sdkTracerProvider *sdktrace.TracerProvider
}

// PipelineMetrics are the counters and histograms recorded by a pipeline run
type PipelineMetrics struct {
	RowsLoaded     metric.Int64Counter
	RowsDropped    metric.Int64Counter
	ValuesImputed  metric.Int64Counter
	ChartsRendered metric.Int64Counter
	StepDuration   metric.Float64Histogram
	StepErrors     metric.Int64Counter
}

// NewOTelConfig derives the OpenTelemetry configuration from the telemetry section
func NewOTelConfig(cfg config.TelemetryConfig) *OTelConfig {
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: contracts.Version,
		Environment:    cfg.Environment,
		TraceExporter:  cfg.TraceExporter,
	}
}

// InitializeOTel sets up tracing and metrics. Metrics always flow into a
// private Prometheus registry so they can be written as a textfile after the run.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = NewOTelConfig(config.Default().Telemetry)
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{Logger: logger}

	if err := initializeTracing(cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.DebugContext(ctx, "OpenTelemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("trace_exporter", cfg.TraceExporter))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", GenerateTraceID()),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.TraceExporter {
	case "stdout":
		w := cfg.TraceWriter
		if w == nil {
			w = os.Stderr
		}
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(w),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}

		// A batch job ends quickly; export spans synchronously so none are lost
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		)
		providers.sdkTracerProvider = tp
		providers.TracerProvider = tp
	case "none", "":
		providers.TracerProvider = tracenoop.NewTracerProvider()
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	providers.Tracer = providers.TracerProvider.Tracer(MeterName,
		trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(providers.TracerProvider)

	return nil
}

// initializeMetrics sets up OpenTelemetry metrics backed by a Prometheus registry
func initializeMetrics(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := promclient.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetMeterProvider(mp)

	return nil
}

// CreatePipelineMetrics creates the pipeline's instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"eda_rows_loaded",
		metric.WithDescription("Number of transaction rows read from the input file"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"eda_rows_dropped",
		metric.WithDescription("Number of transaction rows removed during cleaning, by reason"),
	)
	if err != nil {
		return nil, err
	}

	valuesImputed, err := meter.Int64Counter(
		"eda_values_imputed",
		metric.WithDescription("Number of missing values replaced during cleaning, by column"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"eda_charts_rendered",
		metric.WithDescription("Number of chart files written"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"eda_step_duration_seconds",
		metric.WithDescription("Pipeline step duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stepErrors, err := meter.Int64Counter(
		"eda_step_errors",
		metric.WithDescription("Number of failed pipeline steps"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsLoaded:     rowsLoaded,
		RowsDropped:    rowsDropped,
		ValuesImputed:  valuesImputed,
		ChartsRendered: chartsRendered,
		StepDuration:   stepDuration,
		StepErrors:     stepErrors,
	}, nil
}

// WriteMetrics writes the registry in the Prometheus text format to path
func (p *OTelProviders) WriteMetrics(path string) error {
	if p.Registry == nil {
		return errors.New("metrics registry not initialized")
	}
	return promclient.WriteToTextfile(path, p.Registry)
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.sdkTracerProvider != nil {
		if err := p.sdkTracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}
