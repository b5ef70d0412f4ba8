package operations

import (
	"context"
	"log/slog"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/charts"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/dataprocessing"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/exporter"
)

// Step names
const (
	StepNameLoad      = "Load transactions"
	StepNameClean     = "Clean transactions"
	StepNameEnrich    = "Enrich transactions"
	StepNameReport    = "Print report"
	StepNameVisualize = "Render charts"
	StepNameExport    = "Export dataset"
)

// LoadStep reads the transaction log
type LoadStep struct {
	BaseStep
	loader *dataprocessing.Loader
	path   string
	tracer *RunTracer
}

// NewLoadStep creates the step that reads path
func NewLoadStep(loader *dataprocessing.Loader, path string, tracer *RunTracer) *LoadStep {
	return &LoadStep{
		BaseStep: NewBaseStep(StepIDLoad, StepNameLoad),
		loader:   loader,
		path:     path,
		tracer:   tracer,
	}
}

// Execute loads the file into state.Raw
func (s *LoadStep) Execute(ctx context.Context, state *RunState) error {
	raw, err := s.loader.LoadFile(ctx, s.path)
	if err != nil {
		return err
	}

	state.Raw = raw
	s.tracer.RecordLoaded(ctx, raw.Len())

	stepState := state.GetStep(s.ID())
	stepState.SetMetadata("input_file", s.path)
	stepState.SetMetadata("rows", raw.Len())
	stepState.SetMetadata("columns", len(raw.Columns))
	return nil
}

// CleanStep diagnoses and cleans the loaded table
type CleanStep struct {
	BaseStep
	cleaner *dataprocessing.Cleaner
	tracer  *RunTracer
}

// NewCleanStep creates the cleaning step
func NewCleanStep(cleaner *dataprocessing.Cleaner, tracer *RunTracer) *CleanStep {
	return &CleanStep{
		BaseStep: NewBaseStep(StepIDClean, StepNameClean),
		cleaner:  cleaner,
		tracer:   tracer,
	}
}

// Execute records the pre-clean diagnostics, then cleans into state.Cleaned
func (s *CleanStep) Execute(ctx context.Context, state *RunState) error {
	if state.Raw == nil {
		return NewDependencyError(s.ID(), StepIDLoad, "no loaded table")
	}

	state.Diagnostics = dataprocessing.Diagnose(state.Raw)

	cleaned, report, err := s.cleaner.Clean(ctx, state.Raw)
	if err != nil {
		return err
	}

	state.Cleaned = cleaned
	state.CleanReport = report
	s.tracer.RecordCleaning(ctx, report)

	stepState := state.GetStep(s.ID())
	stepState.SetMetadata("rows_in", report.RowsIn)
	stepState.SetMetadata("rows_out", report.RowsOut)
	stepState.SetMetadata("gender_imputed", report.GenderImputed)
	stepState.SetMetadata("age_imputed", report.AgeImputed)
	stepState.SetMetadata("dropped_price", report.DroppedPrice)
	stepState.SetMetadata("dropped_quantity", report.DroppedQuantity)
	if report.AgeMeanAvailable {
		stepState.SetMetadata("age_mean", report.AgeMean.String())
	}
	return nil
}

// EnrichStep derives total_amount and month
type EnrichStep struct {
	BaseStep
	enricher *dataprocessing.Enricher
}

// NewEnrichStep creates the enrichment step
func NewEnrichStep(enricher *dataprocessing.Enricher) *EnrichStep {
	return &EnrichStep{
		BaseStep: NewBaseStep(StepIDEnrich, StepNameEnrich),
		enricher: enricher,
	}
}

// Execute enriches state.Cleaned into state.Enriched
func (s *EnrichStep) Execute(ctx context.Context, state *RunState) error {
	if state.Cleaned == nil {
		return NewDependencyError(s.ID(), StepIDClean, "no cleaned table")
	}

	enriched, err := s.enricher.Enrich(ctx, state.Cleaned)
	if err != nil {
		return err
	}

	state.Enriched = enriched
	state.GetStep(s.ID()).SetMetadata("rows", enriched.Len())
	return nil
}

// ReportStep prints the diagnostics and month profitability
type ReportStep struct {
	BaseStep
	reporter *dataprocessing.Reporter
}

// NewReportStep creates the report step
func NewReportStep(reporter *dataprocessing.Reporter) *ReportStep {
	return &ReportStep{
		BaseStep: NewBaseStep(StepIDReport, StepNameReport),
		reporter: reporter,
	}
}

// Execute prints the diagnostics block followed by the profitability lines
func (s *ReportStep) Execute(ctx context.Context, state *RunState) error {
	if state.Enriched == nil {
		return NewDependencyError(s.ID(), StepIDEnrich, "no enriched table")
	}

	if err := s.reporter.PrintDiagnostics(state.Diagnostics); err != nil {
		return err
	}
	if err := s.reporter.PrintProfitability(state.Enriched); err != nil {
		return err
	}

	if p, ok := dataprocessing.MonthProfitability(state.Enriched); ok {
		stepState := state.GetStep(s.ID())
		stepState.SetMetadata("most_profitable_month", p.Best.Month.String())
		stepState.SetMetadata("most_unprofitable_month", p.Worst.Month.String())
	}
	return nil
}

// VisualizeStep renders the charts
type VisualizeStep struct {
	BaseStep
	visualizer *charts.Visualizer
	tracer     *RunTracer
	logger     *slog.Logger
}

// NewVisualizeStep creates the chart step
func NewVisualizeStep(visualizer *charts.Visualizer, tracer *RunTracer, logger *slog.Logger) *VisualizeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisualizeStep{
		BaseStep:   NewBaseStep(StepIDVisualize, StepNameVisualize),
		visualizer: visualizer,
		tracer:     tracer,
		logger:     logger.With(slog.String("step", StepIDVisualize)),
	}
}

// Execute renders every chart from state.Enriched
func (s *VisualizeStep) Execute(ctx context.Context, state *RunState) error {
	if state.Enriched == nil {
		return NewDependencyError(s.ID(), StepIDEnrich, "no enriched table")
	}

	rendered, err := s.visualizer.RenderAll(ctx, state.Enriched)
	if err != nil {
		return err
	}

	state.Charts = rendered
	s.tracer.RecordCharts(ctx, rendered)

	skipped := make([]string, 0)
	for _, c := range rendered {
		if c.Skipped {
			skipped = append(skipped, c.FileName)
			continue
		}
		state.AddArtifact(Artifact{Type: ArtifactChart, Path: c.Path, CreatedBy: s.ID()})
	}
	if len(skipped) > 0 {
		s.logger.WarnContext(ctx, "some charts were not drawn",
			slog.Int("skipped", len(skipped)))
	}
	stepState := state.GetStep(s.ID())
	stepState.SetMetadata("charts", len(rendered)-len(skipped))
	if len(skipped) > 0 {
		stepState.SetMetadata("skipped", skipped)
	}
	return nil
}

// ExportStep writes the cleaned dataset
type ExportStep struct {
	BaseStep
	csv         *exporter.CSVWriter
	xlsx        *exporter.XLSXWriter
	cleanedFile string
	xlsxFile    string
}

// NewExportStep creates the export step. The workbook is written only
// when xlsx is non-nil and xlsxFile is set.
func NewExportStep(csv *exporter.CSVWriter, cleanedFile string, xlsx *exporter.XLSXWriter, xlsxFile string) *ExportStep {
	return &ExportStep{
		BaseStep:    NewBaseStep(StepIDExport, StepNameExport),
		csv:         csv,
		xlsx:        xlsx,
		cleanedFile: cleanedFile,
		xlsxFile:    xlsxFile,
	}
}

// Execute writes state.Enriched as CSV and, if configured, as a workbook
func (s *ExportStep) Execute(ctx context.Context, state *RunState) error {
	if state.Enriched == nil {
		return NewDependencyError(s.ID(), StepIDEnrich, "no enriched table")
	}

	stepState := state.GetStep(s.ID())

	path, err := s.csv.WriteTable(ctx, s.cleanedFile, state.Enriched)
	if err != nil {
		return err
	}
	state.AddArtifact(Artifact{Type: ArtifactCSV, Path: path, CreatedBy: s.ID()})
	stepState.SetMetadata("csv_file", path)

	if s.xlsx == nil || s.xlsxFile == "" {
		return nil
	}

	path, err = s.xlsx.WriteWorkbook(ctx, s.xlsxFile, state.Enriched, state.Diagnostics)
	if err != nil {
		return err
	}
	state.AddArtifact(Artifact{Type: ArtifactWorkbook, Path: path, CreatedBy: s.ID()})
	stepState.SetMetadata("xlsx_file", path)
	return nil
}
