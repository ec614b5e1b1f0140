package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/calcgate"
	"github.com/aretw0/calcgate/internal/logging"
	"github.com/aretw0/calcgate/pkg/adapters/exprlang"
	"github.com/aretw0/calcgate/pkg/adapters/memory"
	"github.com/aretw0/calcgate/pkg/adapters/static"
	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer(md string) (string, error) { return md, nil }

func TestRunREPL_NonInteractive(t *testing.T) {
	calc := calcgate.New(exprlang.New(), calcgate.WithLogger(logging.NewNop()))
	var out bytes.Buffer

	err := RunREPL(context.Background(), calc, REPLOptions{
		In:       strings.NewReader("3 + 4\n7 / 2\n2 +\n"),
		Out:      &out,
		Renderer: plainRenderer,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"result":7}`, lines[0])
	assert.JSONEq(t, `{"result":3.5}`, lines[1])
	assert.JSONEq(t, `{"error":"Invalid expression"}`, lines[2])
}

func TestRunREPL_EmptyLineIsEvaluatedWhenPiped(t *testing.T) {
	eval := static.New("Error: empty")
	calc := calcgate.New(eval, calcgate.WithLogger(logging.NewNop()))
	var out bytes.Buffer

	err := RunREPL(context.Background(), calc, REPLOptions{
		In:       strings.NewReader("\n"),
		Out:      &out,
		Renderer: plainRenderer,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, eval.Received())
}

func TestRunREPL_PipedLinesAreVerbatim(t *testing.T) {
	eval := static.New("Error: nope")
	calc := calcgate.New(eval, calcgate.WithLogger(logging.NewNop()))
	var out bytes.Buffer

	err := RunREPL(context.Background(), calc, REPLOptions{
		In:       strings.NewReader("  1 + 1 \nexit\nquit\n2*3\n:q\n5\n"),
		Out:      &out,
		Renderer: plainRenderer,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"  1 + 1 ", "exit", "quit", "2*3"}, eval.Received())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 4)
}

func TestRunREPL_ExitWordsEndPrompt(t *testing.T) {
	for _, word := range []string{"exit", "quit", "  :q  "} {
		eval := static.New("Result: 1")
		calc := calcgate.New(eval, calcgate.WithLogger(logging.NewNop()))
		var out bytes.Buffer

		err := RunREPL(context.Background(), calc, REPLOptions{
			In:          strings.NewReader(word + "\n1+1\n"),
			Out:         &out,
			Interactive: true,
			Renderer:    plainRenderer,
		})
		require.NoError(t, err)
		assert.Empty(t, eval.Received(), word)
		assert.Contains(t, out.String(), "Bye!")
	}
}

func TestRunREPL_Commands(t *testing.T) {
	journal := memory.NewJournal(5)
	calc := calcgate.New(static.New("Result: 2"), calcgate.WithLogger(logging.NewNop()), calcgate.WithJournal(journal))
	var out bytes.Buffer

	err := RunREPL(context.Background(), calc, REPLOptions{
		In:          strings.NewReader("1+1\n:history\n:help\n:quit\n9*9\n"),
		Out:         &out,
		Interactive: true,
		Version:     "9.9.9",
		Journal:     journal,
		Renderer:    plainRenderer,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "v9.9.9")
	assert.Contains(t, text, "= 2")
	assert.Contains(t, text, "1+1")
	assert.Contains(t, text, ":history")
	assert.Contains(t, text, "Bye!")

	recs, _ := journal.Recent(context.Background(), 10)
	assert.Len(t, recs, 1, "input after :quit must not be evaluated")
}

func TestRunREPL_UnavailableEvaluator(t *testing.T) {
	calc := calcgate.New(static.New("", static.WithError(domain.ErrEvaluatorUnavailable)), calcgate.WithLogger(logging.NewNop()))

	t.Run("Piped Input Stops", func(t *testing.T) {
		err := RunREPL(context.Background(), calc, REPLOptions{
			In:       strings.NewReader("1\n2\n"),
			Out:      &bytes.Buffer{},
			Renderer: plainRenderer,
		})
		assert.ErrorIs(t, err, domain.ErrEvaluatorUnavailable)
	})

	t.Run("Interactive Continues", func(t *testing.T) {
		var out bytes.Buffer
		err := RunREPL(context.Background(), calc, REPLOptions{
			In:          strings.NewReader("1\n2\n"),
			Out:         &out,
			Interactive: true,
			Renderer:    plainRenderer,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out.String(), "evaluator unavailable"))
	})
}

func TestWriteOutcome(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteOutcome(&out, domain.Success(-3.5)))
	assert.Equal(t, "{\"result\":-3.5}\n", out.String())
}
