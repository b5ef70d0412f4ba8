// Package operations runs the analysis pipeline as an ordered list of steps.
//
// Core Components:
//
// Runner: executes steps in order against a shared RunState. The first
// failing step stops the run; the steps after it are marked skipped.
// Cancellation is checked between steps.
//
// Step: a single unit of work. The six pipeline steps are load, clean,
// enrich, report, visualize and export, built by NewPipelineSteps.
//
// RunState: the values handed from one step to the next. Every stage output
// is a new table; no step modifies an earlier step's output.
//
// RunManifest: the JSON record of a run, with per-step timing, status,
// metadata and the files written.
//
// RunTracer: OpenTelemetry spans per run and per step, plus the pipeline
// counters (rows loaded, rows dropped, values imputed, charts rendered).
//
// Usage:
//
//	tracer, _ := operations.NewRunTracerFromProviders(providers)
//	steps := operations.NewPipelineSteps(operations.PipelineDeps{...})
//	runner := operations.NewRunner(steps, tracer, manifest, logger)
//	err := runner.Run(ctx, operations.NewRunState(runID))
package operations
