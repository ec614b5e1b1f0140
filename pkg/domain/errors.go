package domain

import "errors"

// ErrEvaluatorUnavailable is returned when the evaluator could not be started at all.
var ErrEvaluatorUnavailable = errors.New("evaluator unavailable")

// ErrMissingExpression is returned when a request carries no expression field.
var ErrMissingExpression = errors.New("expression is required")

// ErrJournalDisabled is returned when history is requested but no journal is configured.
var ErrJournalDisabled = errors.New("journal disabled")
