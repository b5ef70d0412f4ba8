package operations

import (
	"io"
	"log/slog"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/charts"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/config"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/dataprocessing"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/exporter"
)

// PipelineDeps are the collaborators of a pipeline run
type PipelineDeps struct {
	Config   *config.Config
	Paths    *config.Paths
	Renderer charts.Renderer
	// Report receives the diagnostic text
	Report io.Writer
	Tracer *RunTracer
	Logger *slog.Logger
}

// NewPipelineSteps builds the six steps in execution order:
// load, clean, enrich, report, visualize, export.
func NewPipelineSteps(deps PipelineDeps) []Step {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = NewRunTracer(nil, nil)
	}
	cfg := deps.Config

	var xlsx *exporter.XLSXWriter
	if cfg.Export.XLSXFile != "" {
		xlsx = exporter.NewXLSXWriter(deps.Paths, logger)
	}

	return []Step{
		NewLoadStep(dataprocessing.NewLoader(logger), deps.Paths.InputFile, tracer),
		NewCleanStep(dataprocessing.NewCleaner(logger), tracer),
		NewEnrichStep(dataprocessing.NewEnricher(logger)),
		NewReportStep(dataprocessing.NewReporter(deps.Report)),
		NewVisualizeStep(charts.NewVisualizer(deps.Renderer, cfg.Charts.Parallelism, logger), tracer, logger),
		NewExportStep(exporter.NewCSVWriter(deps.Paths, logger), cfg.Export.CleanedFile, xlsx, cfg.Export.XLSXFile),
	}
}
