package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/calcgate"
	"github.com/aretw0/calcgate/pkg/domain"
)

// ToolName is the name of the calculation tool.
const ToolName = "calculate"

// Calculator defines what the MCP server needs from calcgate.
type Calculator interface {
	Calculate(ctx context.Context, expression string) (domain.Outcome, error)
}

// Server wraps the Calculator and exposes it as an MCP Server.
type Server struct {
	calc      Calculator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(calc Calculator) *Server {
	s := &Server{
		calc:      calc,
		mcpServer: server.NewMCPServer("calcgate-mcp", strings.TrimSpace(calcgate.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	tool := mcp.NewTool(ToolName,
		mcp.WithDescription("Evaluate an arithmetic expression. Returns {\"result\": n} or {\"error\": \"Invalid expression\"}."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("The arithmetic expression, e.g. (1 + 2) * 3")),
	)
	s.mcpServer.AddTool(tool, s.handleCalculate)
}

func (s *Server) handleCalculate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw, ok := args["expression"]
	if !ok {
		return mcp.NewToolResultError(domain.ErrMissingExpression.Error()), nil
	}
	expression, ok := raw.(string)
	if !ok {
		return mcp.NewToolResultError("expression must be a string"), nil
	}

	outcome, err := s.calc.Calculate(ctx, expression)
	if err != nil {
		if errors.Is(err, domain.ErrEvaluatorUnavailable) {
			return mcp.NewToolResultError(domain.ErrEvaluatorUnavailable.Error()), nil
		}
		return nil, err
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
