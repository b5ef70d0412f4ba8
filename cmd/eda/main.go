package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/charts"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/config"
	apperrors "github.com/Fekt0ral/Exploratory-data-analysis-project/internal/errors"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/infrastructure"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/operations"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("Analysis failed",
			slog.String("error", err.Error()),
			slog.String("step", operations.FailedStep(err)))
		stop()
		os.Exit(1)
	}
}

// run executes one analysis. The diagnostic report goes to stdout; logs go
// wherever the logging configuration sends them.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	startTime := time.Now()
	fs := flag.NewFlagSet("eda", flag.ContinueOnError)
	configFile := fs.String("config", "", "path to a YAML configuration file (default eda.yaml if present)")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return apperrors.NewConfigError("invalid arguments", err)
	}

	if *showVersion {
		_, err := fmt.Fprintln(stdout, contracts.GetVersionString())
		return err
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return apperrors.NewConfigError("failed to load configuration", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize logger", err)
	}
	defer infrastructure.CloseLogFile()

	runID := infrastructure.GenerateTraceID()
	ctx = infrastructure.WithTraceID(ctx, runID)

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize telemetry", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	tracer, err := operations.NewRunTracerFromProviders(providers)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize metrics", err)
	}
	systemMetrics, err := infrastructure.NewSystemMetrics(providers.Meter)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize metrics", err)
	}

	paths := config.NewPaths(cfg.Pipeline)
	if err := paths.EnsureDirectories(); err != nil {
		return apperrors.NewStorageError("failed to prepare output directory", err)
	}

	logger.InfoContext(ctx, "Starting transaction analysis",
		slog.String("version", contracts.Version),
		slog.String("input_file", paths.InputFile),
		slog.String("output_dir", paths.OutputDir),
		slog.Int("chart_parallelism", cfg.Charts.Parallelism))

	steps := operations.NewPipelineSteps(operations.PipelineDeps{
		Config:   cfg,
		Paths:    paths,
		Renderer: charts.NewPlotRenderer(paths, cfg.Charts, logger),
		Report:   stdout,
		Tracer:   tracer,
		Logger:   logger,
	})
	manifest := operations.NewRunManifest(runID, paths.InputFile)
	runner := operations.NewRunner(steps, tracer, manifest, logger)

	runErr := runner.Run(ctx, operations.NewRunState(runID))

	stats := systemMetrics.Collect(ctx, startTime)
	logger.InfoContext(ctx, "Run resources", stats.LogAttrs()...)

	// The manifest and metrics describe failed runs too
	if cfg.Pipeline.ManifestFile != "" {
		path := paths.GetOutputPath(cfg.Pipeline.ManifestFile)
		if err := manifest.SaveToFile(path); err != nil {
			logger.ErrorContext(ctx, "Failed to write run manifest",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}
	if cfg.Telemetry.MetricsFile != "" {
		path := paths.GetOutputPath(cfg.Telemetry.MetricsFile)
		if err := providers.WriteMetrics(path); err != nil {
			logger.ErrorContext(ctx, "Failed to write metrics",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}

	return runErr
}
