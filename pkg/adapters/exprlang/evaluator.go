// Package exprlang evaluates arithmetic in-process with expr-lang/expr.
//
// The evaluator writes the same text a calculator process would, so it can
// stand in for one without changing how results are extracted.
package exprlang

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"

	"github.com/aretw0/calcgate/pkg/domain"
)

// Evaluator implements ports.Evaluator without spawning a process.
// Expressions see no variables, only literals and expr builtins.
type Evaluator struct{}

// New creates an in-process evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes expression and renders "Result: <n>" on success or
// "Error: <reason>" with exit code 1 on failure.
func (e *Evaluator) Evaluate(ctx context.Context, expression string) (domain.Output, error) {
	if err := ctx.Err(); err != nil {
		return domain.Output{ExitCode: -1}, err
	}

	start := time.Now()
	v, err := Compute(expression)
	out := domain.Output{Duration: time.Since(start)}
	if err != nil {
		out.Text = fmt.Sprintf("Error: %s\n", err)
		out.ExitCode = 1
		return out, nil
	}
	out.Text = fmt.Sprintf("Result: %s\n", Format(v))
	return out, nil
}

// Compute evaluates expression and returns its numeric value.
func Compute(expression string) (float64, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return 0, fmt.Errorf("empty expression")
	}

	program, err := expr.Compile(expression, expr.Env(map[string]any{}))
	if err != nil {
		return 0, fmt.Errorf("syntax: %s", firstLine(err.Error()))
	}

	res, err := expr.Run(program, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("evaluation: %s", firstLine(err.Error()))
	}

	var v float64
	switch n := res.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case float64:
		v = n
	default:
		return 0, fmt.Errorf("expression did not produce a number (got %T)", res)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("result is not a finite number")
	}
	return v, nil
}

// Format renders v without exponent notation so the text stays within the
// "Result: -digits.digits" shape.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
