package static_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calcgate/pkg/adapters/static"
	"github.com/aretw0/calcgate/pkg/domain"
)

func TestEvaluator_Canned(t *testing.T) {
	e := static.New("Result: 1\n", static.WithExitCode(3))

	out, err := e.Evaluate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "Result: 1\n", out.Text)
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, []string{"anything"}, e.Received())
}

func TestEvaluator_Error(t *testing.T) {
	boom := errors.New("boom")
	e := static.New("", static.WithError(boom))

	_, err := e.Evaluate(context.Background(), "1+1")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, e.Received(), 1)
}

func TestEvaluator_Responder(t *testing.T) {
	e := static.New("ignored", static.WithResponder(func(expr string) domain.Output {
		return domain.Output{Text: "echo " + expr}
	}))

	out, err := e.Evaluate(context.Background(), "2*2")
	require.NoError(t, err)
	assert.Equal(t, "echo 2*2", out.Text)
}

func TestEvaluator_Concurrent(t *testing.T) {
	e := static.New("Result: 0")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = e.Evaluate(context.Background(), "x")
		}()
	}
	wg.Wait()

	assert.Len(t, e.Received(), 50)
}
