package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runner executes pipeline steps in order and stops at the first failure
type Runner struct {
	steps    []Step
	tracer   *RunTracer
	manifest *RunManifest
	logger   *slog.Logger
}

// NewRunner creates a runner for steps. The manifest may be nil.
func NewRunner(steps []Step, tracer *RunTracer, manifest *RunManifest, logger *slog.Logger) *Runner {
	if tracer == nil {
		tracer = NewRunTracer(nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		steps:    steps,
		tracer:   tracer,
		manifest: manifest,
		logger:   logger,
	}
}

// Steps returns the steps in execution order
func (r *Runner) Steps() []Step {
	return r.steps
}

// Manifest returns the manifest the runner records into, or nil
func (r *Runner) Manifest() *RunManifest {
	return r.manifest
}

// Run executes every step against state. Steps after a failed or
// cancelled one are marked skipped and never executed.
func (r *Runner) Run(ctx context.Context, state *RunState) (err error) {
	if state.Status == RunStatusCompleted {
		return ErrRunCompleted
	}

	for _, step := range r.steps {
		state.SetStep(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	ctx, span := r.tracer.TraceRun(ctx, state.ID, inputFile(r.manifest))
	defer span.End()

	start := time.Now()
	state.Start()
	r.logger.InfoContext(ctx, "pipeline run started",
		slog.String("run_id", state.ID),
		slog.Int("step_count", len(r.steps)))

	defer func() {
		if r.manifest != nil {
			r.manifest.AddArtifacts(state.Artifacts()...)
		}
		r.tracer.RecordRunCompletion(span, time.Since(start), err)
	}()

	for i, step := range r.steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.logger.WarnContext(ctx, "pipeline run cancelled",
				slog.String("run_id", state.ID),
				slog.String("step", step.ID()))
			r.skipRemaining(state, r.steps[i:], "run cancelled")
			state.Cancel()
			return NewCancellationError(step.ID(), ctxErr)
		}

		if err := r.executeStep(ctx, state, step); err != nil {
			r.skipRemaining(state, r.steps[i+1:], fmt.Sprintf("previous step %s failed", step.ID()))
			if GetErrorType(err) == ErrorTypeCancellation {
				state.Cancel()
			} else {
				state.Fail(err)
			}
			return err
		}
	}

	state.Complete()
	if r.manifest != nil {
		r.manifest.MarkCompleted()
	}
	r.logger.InfoContext(ctx, "pipeline run completed",
		slog.String("run_id", state.ID),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// executeStep runs one step inside its own span and records the outcome
func (r *Runner) executeStep(ctx context.Context, state *RunState, step Step) error {
	stepState := state.GetStep(step.ID())

	stepCtx, span := r.tracer.TraceStep(ctx, state.ID, step)
	defer span.End()

	stepState.Start()
	if r.manifest != nil {
		r.manifest.RecordStageStart(step.ID(), step.Name())
	}
	r.logger.DebugContext(stepCtx, "executing step",
		slog.String("run_id", state.ID),
		slog.String("step", step.ID()))

	start := time.Now()
	err := step.Execute(stepCtx, state)
	duration := time.Since(start)

	if err != nil {
		opErr := WrapError(err, step.ID())
		stepState.Fail(opErr)
		if r.manifest != nil {
			r.manifest.RecordStageFailure(step.ID(), opErr)
		}
		r.tracer.RecordStepCompletion(stepCtx, span, step.ID(), duration, opErr)
		r.logger.ErrorContext(stepCtx, "step failed",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", duration),
			slog.String("error", opErr.Error()))
		return opErr
	}

	stepState.Complete()
	if r.manifest != nil {
		r.manifest.RecordStageCompletion(step.ID(), stepState.MetadataSnapshot())
	}
	r.tracer.RecordStepCompletion(stepCtx, span, step.ID(), duration, nil)
	r.logger.InfoContext(stepCtx, "step completed",
		slog.String("run_id", state.ID),
		slog.String("step", step.ID()),
		slog.Duration("duration", duration))
	return nil
}

func (r *Runner) skipRemaining(state *RunState, steps []Step, reason string) {
	for _, step := range steps {
		if s := state.GetStep(step.ID()); s != nil {
			s.Skip(reason)
		}
	}
}

func inputFile(m *RunManifest) string {
	if m == nil {
		return ""
	}
	return m.InputFile
}
