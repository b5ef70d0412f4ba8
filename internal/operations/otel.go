package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/charts"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/dataprocessing"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/infrastructure"
)

const (
	TracerName = "eda.pipeline"
)

// RunTracer provides OpenTelemetry instrumentation for pipeline runs.
// A nil metrics value records spans only.
type RunTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewRunTracer creates a tracer recording into metrics
func NewRunTracer(tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *RunTracer {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return &RunTracer{tracer: tracer, metrics: metrics}
}

// NewRunTracerFromProviders creates a tracer and its instruments from the run's providers
func NewRunTracerFromProviders(providers *infrastructure.OTelProviders) (*RunTracer, error) {
	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	return NewRunTracer(providers.Tracer, metrics), nil
}

// TraceRun creates a span for the entire run
func (rt *RunTracer) TraceRun(ctx context.Context, runID, inputFile string) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.input_file", inputFile),
		),
	)
}

// RecordRunCompletion closes out the run span
func (rt *RunTracer) RecordRunCompletion(span trace.Span, duration time.Duration, err error) {
	span.SetAttributes(attribute.Float64("run.duration_seconds", duration.Seconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "run completed")
}

// TraceStep creates a span for one step
func (rt *RunTracer) TraceStep(ctx context.Context, runID string, step Step) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("pipeline.step.%s", step.ID())
	return rt.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
}

// RecordStepCompletion records the step's duration and outcome
func (rt *RunTracer) RecordStepCompletion(ctx context.Context, span trace.Span, stepID string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)

	if rt.metrics != nil {
		attrs := metric.WithAttributes(
			attribute.String("step", stepID),
			attribute.String("status", status),
		)
		rt.metrics.StepDuration.Record(ctx, duration.Seconds(), attrs)
		if err != nil {
			rt.metrics.StepErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("step", stepID)))
		}
	}

	if err != nil {
		span.RecordError(err, trace.WithAttributes(attribute.String("error.type", string(GetErrorType(err)))))
		span.SetStatus(codes.Error, "step execution failed")
		return
	}
	span.AddEvent("step.completed", trace.WithAttributes(
		attribute.String("step.id", stepID),
		attribute.Float64("duration", duration.Seconds()),
	))
	span.SetStatus(codes.Ok, "step completed successfully")
}

// RecordLoaded counts the rows read from the input
func (rt *RunTracer) RecordLoaded(ctx context.Context, rows int) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("rows.loaded", rows))
	if rt.metrics == nil {
		return
	}
	rt.metrics.RowsLoaded.Add(ctx, int64(rows))
}

// RecordCleaning counts the rows dropped and values imputed by the cleaner
func (rt *RunTracer) RecordCleaning(ctx context.Context, report dataprocessing.CleanReport) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("rows.in", report.RowsIn),
		attribute.Int("rows.out", report.RowsOut),
	)
	if rt.metrics == nil {
		return
	}
	dropped := []struct {
		reason string
		n      int
	}{
		{"price", report.DroppedPrice},
		{"quantity", report.DroppedQuantity},
	}
	for _, d := range dropped {
		rt.metrics.RowsDropped.Add(ctx, int64(d.n), metric.WithAttributes(attribute.String("reason", d.reason)))
	}
	imputed := []struct {
		column string
		n      int
	}{
		{"gender", report.GenderImputed},
		{"age", report.AgeImputed},
	}
	for _, v := range imputed {
		rt.metrics.ValuesImputed.Add(ctx, int64(v.n), metric.WithAttributes(attribute.String("column", v.column)))
	}
}

// RecordCharts counts the chart files written
func (rt *RunTracer) RecordCharts(ctx context.Context, rendered []charts.Chart) {
	written := 0
	for _, c := range rendered {
		if !c.Skipped {
			written++
		}
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("charts.written", written),
		attribute.Int("charts.skipped", len(rendered)-written),
	)
	if rt.metrics == nil {
		return
	}
	rt.metrics.ChartsRendered.Add(ctx, int64(written))
}
