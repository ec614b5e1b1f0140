package domain

import (
	"context"
	"time"
)

// EvaluationEvent describes one finished evaluator run.
type EvaluationEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Expression string        `json:"expression"`
	ExitCode   int           `json:"exit_code"`
	Duration   time.Duration `json:"duration"`
	Outcome    string        `json:"outcome"` // result, invalid or unavailable
}

// LifecycleHooks defines callbacks for calculator observability.
type LifecycleHooks struct {
	OnEvaluate func(context.Context, *EvaluationEvent)
}
