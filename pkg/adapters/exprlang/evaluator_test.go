package exprlang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		expression string
		want       float64
	}{
		{"3 + 4", 7},
		{"2 * (3 + 4)", 14},
		{"7 / 2", 3.5},
		{"-3.5", -3.5},
		{"10 - 20", -10},
		{"  1+1  ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := Compute(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_Errors(t *testing.T) {
	for _, expression := range []string{"", "2 +", "1 / 0", `"text"`, "true", "unknown_var + 1"} {
		t.Run(expression, func(t *testing.T) {
			_, err := Compute(expression)
			assert.Error(t, err)
		})
	}
}

func TestEvaluate_Output(t *testing.T) {
	e := New()

	out, err := e.Evaluate(context.Background(), "3 + 4")
	require.NoError(t, err)
	assert.Equal(t, "Result: 7\n", out.Text)
	assert.Equal(t, 0, out.ExitCode)

	out, err = e.Evaluate(context.Background(), "2 +")
	require.NoError(t, err)
	assert.Contains(t, out.Text, "Error: ")
	assert.Equal(t, 1, out.ExitCode)
}

func TestEvaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Evaluate(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "7", Format(7))
	assert.Equal(t, "-3.5", Format(-3.5))
	assert.Equal(t, "100000000000000000000", Format(1e20))
}
