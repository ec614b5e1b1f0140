package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/calcgate"
	"github.com/aretw0/calcgate/internal/logging"
	"github.com/aretw0/calcgate/pkg/adapters/static"
	"github.com/aretw0/calcgate/pkg/domain"
)

func buildRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      ToolName,
			Arguments: args,
		},
	}
}

func newServer(eval *static.Evaluator) *Server {
	return NewServer(calcgate.New(eval, calcgate.WithLogger(logging.NewNop())))
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestToolRegistration(t *testing.T) {
	s := newServer(static.New(""))

	tool := s.mcpServer.GetTool(ToolName)
	require.NotNil(t, tool)
	assert.Contains(t, tool.Tool.Description, "arithmetic")
	assert.Contains(t, tool.Tool.InputSchema.Required, "expression")
}

func TestHandleCalculate(t *testing.T) {
	t.Run("Result", func(t *testing.T) {
		s := newServer(static.New("Result: 7\n"))

		res, err := s.handleCalculate(context.Background(), buildRequest(map[string]any{"expression": "3+4"}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.JSONEq(t, `{"result":7}`, textOf(t, res))
	})

	t.Run("Invalid Expression Is Not A Tool Error", func(t *testing.T) {
		s := newServer(static.New("Error: nope"))

		res, err := s.handleCalculate(context.Background(), buildRequest(map[string]any{"expression": "3+"}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.JSONEq(t, `{"error":"Invalid expression"}`, textOf(t, res))
	})

	t.Run("Missing Expression", func(t *testing.T) {
		eval := static.New("Result: 1")
		s := newServer(eval)

		res, err := s.handleCalculate(context.Background(), buildRequest(map[string]any{}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Empty(t, eval.Received())
	})

	t.Run("Wrong Type", func(t *testing.T) {
		s := newServer(static.New("Result: 1"))

		res, err := s.handleCalculate(context.Background(), buildRequest(map[string]any{"expression": 12}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("Evaluator Unavailable", func(t *testing.T) {
		s := newServer(static.New("", static.WithError(domain.ErrEvaluatorUnavailable)))

		res, err := s.handleCalculate(context.Background(), buildRequest(map[string]any{"expression": "1"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, textOf(t, res), "evaluator unavailable")
	})
}
