package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JMR-dev/namemigrate/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the report
// filled by the steps before it.
type Step interface {
	// Do executes the step. A non-nil error stops the pipeline.
	Do(ctx context.Context, report *model.MigrationReport) error

	// Name returns the step's name for logging and the report.
	Name() string

	// Phase returns the migration phase the step belongs to.
	Phase() model.Phase
}

// StepError is returned by Execute when a step fails. It tags the
// underlying error with the phase and step it came from.
type StepError struct {
	// Phase is the phase of the failed step.
	Phase model.Phase

	// Step is the name of the failed step.
	Step string

	// Err is the error returned by the step.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s phase (%s): %v", e.Phase, e.Step, e.Err)
}

// Unwrap returns the step's error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	for _, step := range steps {
		p.AddStep(step)
	}
}

// Execute runs all steps in order and stops at the first failure.
//
// Cancellation is checked before each step; a step in progress is expected
// to honour ctx itself. The returned error, if any, is a *StepError and is
// also recorded in report together with its phase. report.FinishedAt is set
// when Execute returns.
func (p *Pipeline) Execute(ctx context.Context, report *model.MigrationReport) error {
	defer func() {
		report.FinishedAt = time.Now()
	}()

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			return p.fail(report, step, err)
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"phase", step.Phase(),
			"run_id", report.RunID,
		)

		start := time.Now()
		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"phase", step.Phase(),
				"run_id", report.RunID,
				"error", err,
			)
			return p.fail(report, step, err)
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"elapsed", time.Since(start),
		)
		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}

	return nil
}

func (p *Pipeline) fail(report *model.MigrationReport, step Step, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		report.Cancelled = true
	}
	report.Fail(step.Phase(), err)
	return &StepError{Phase: step.Phase(), Step: step.Name(), Err: err}
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
