package calcgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/aretw0/calcgate/pkg/extract"
	"github.com/aretw0/calcgate/pkg/ports"
)

// Version is the calcgate release, overridable with -ldflags "-X".
var Version = "0.1.0"

// Calculator is the high-level entry point shared by every surface (HTTP, MCP, CLI).
// It holds no per-request state: each call owns its evaluator run and output.
type Calculator struct {
	evaluator ports.Evaluator
	journal   ports.Journal
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// Option defines a functional option for configuring the Calculator.
type Option func(*Calculator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Calculator) {
		c.hooks = hooks
	}
}

// WithJournal records every finished calculation.
func WithJournal(j ports.Journal) Option {
	return func(c *Calculator) {
		c.journal = j
	}
}

// New creates a Calculator around an evaluator.
func New(evaluator ports.Evaluator, opts ...Option) *Calculator {
	c := &Calculator{
		evaluator: evaluator,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Journal returns the configured journal, or nil.
func (c *Calculator) Journal() ports.Journal {
	return c.journal
}

// Calculate runs the evaluator once and extracts the first "Result:" value from its output.
//
// The exit status never changes the outcome: only the presence of a result does.
// The returned error wraps domain.ErrEvaluatorUnavailable when the evaluator could not run.
func (c *Calculator) Calculate(ctx context.Context, expression string) (domain.Outcome, error) {
	out, err := c.evaluator.Evaluate(ctx, expression)
	if err != nil {
		c.logger.Error("evaluator failed to run", "expression", expression, "error", err)
		c.emit(ctx, expression, out, "unavailable")
		if !errors.Is(err, domain.ErrEvaluatorUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrEvaluatorUnavailable, err)
		}
		return domain.Outcome{}, err
	}

	c.logger.Info("evaluator output",
		"expression", expression,
		"output", out.Text,
		"exit_code", out.ExitCode,
		"duration", out.Duration,
	)

	outcome := extract.Outcome(out.Text)

	// Non-zero exits are reported, not acted upon.
	if out.ExitCode != 0 {
		c.logger.Warn("evaluator exited with non-zero status",
			"expression", expression,
			"exit_code", out.ExitCode,
			"outcome", outcome.Kind(),
		)
	}

	c.emit(ctx, expression, out, outcome.Kind())
	c.record(ctx, expression, out, outcome)

	return outcome, nil
}

func (c *Calculator) emit(ctx context.Context, expression string, out domain.Output, kind string) {
	if c.hooks.OnEvaluate == nil {
		return
	}
	c.hooks.OnEvaluate(ctx, &domain.EvaluationEvent{
		Timestamp:  c.now(),
		Expression: expression,
		ExitCode:   out.ExitCode,
		Duration:   out.Duration,
		Outcome:    kind,
	})
}

func (c *Calculator) record(ctx context.Context, expression string, out domain.Output, outcome domain.Outcome) {
	if c.journal == nil {
		return
	}
	rec := domain.Record{
		ID:         uuid.New().String(),
		Expression: expression,
		Outcome:    outcome,
		ExitCode:   out.ExitCode,
		DurationMS: out.Duration.Milliseconds(),
		CreatedAt:  c.now().UTC(),
	}
	if err := c.journal.Append(ctx, rec); err != nil {
		c.logger.Warn("journal append failed", "error", err)
	}
}
