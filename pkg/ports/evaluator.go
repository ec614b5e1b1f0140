package ports

import (
	"context"

	"github.com/aretw0/calcgate/pkg/domain"
)

// Evaluator turns an expression into human-readable output text.
// Implementations may spawn a process, call a library or return canned text.
type Evaluator interface {
	// Evaluate runs one evaluation and blocks until it has finished.
	// A run that completes returns a nil error regardless of its exit status.
	// An error means the evaluator could not run at all.
	Evaluate(ctx context.Context, expression string) (domain.Output, error)
}
