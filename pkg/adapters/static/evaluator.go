// Package static provides a canned evaluator for tests and demos.
package static

import (
	"context"
	"sync"

	"github.com/aretw0/calcgate/pkg/domain"
)

// Evaluator returns the same output for every expression and remembers what it was asked.
// Safe for concurrent use.
type Evaluator struct {
	mu       sync.Mutex
	output   domain.Output
	err      error
	respond  func(string) domain.Output
	received []string
}

// Option configures the evaluator.
type Option func(*Evaluator)

// WithExitCode sets the exit status reported with the canned text.
func WithExitCode(code int) Option {
	return func(e *Evaluator) {
		e.output.ExitCode = code
	}
}

// WithError makes every evaluation fail as if the evaluator could not start.
func WithError(err error) Option {
	return func(e *Evaluator) {
		e.err = err
	}
}

// WithResponder computes the output from the expression instead of using canned text.
func WithResponder(fn func(expression string) domain.Output) Option {
	return func(e *Evaluator) {
		e.respond = fn
	}
}

// New creates an evaluator that always prints text.
func New(text string, opts ...Option) *Evaluator {
	e := &Evaluator{output: domain.Output{Text: text}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate records the expression and returns the configured output.
func (e *Evaluator) Evaluate(ctx context.Context, expression string) (domain.Output, error) {
	e.mu.Lock()
	e.received = append(e.received, expression)
	e.mu.Unlock()

	if e.err != nil {
		return domain.Output{ExitCode: -1}, e.err
	}
	if e.respond != nil {
		return e.respond(expression), nil
	}
	return e.output, nil
}

// Received returns every expression evaluated so far, in call order.
func (e *Evaluator) Received() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.received))
	copy(out, e.received)
	return out
}
