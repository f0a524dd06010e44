// Package mcp exposes the calculator as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"yqhp/calc-engine/internal/calculator"
	"yqhp/calc-engine/internal/expression"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "calc-engine"

// Server wraps an MCP server with the calculator tools registered.
type Server struct {
	calc *calculator.Service
	mcp  *server.MCPServer
}

// NewServer creates an MCP server with the evaluate and postfix tools.
func NewServer(calc *calculator.Service, version string) *Server {
	s := &Server{
		calc: calc,
		mcp:  server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcplib.NewTool("evaluate",
		mcplib.WithDescription("Evaluate an integer arithmetic expression with + - * / and parentheses"),
		mcplib.WithString("expression",
			mcplib.Required(),
			mcplib.Description("Infix expression, e.g. (42 * 42) + 3"),
		),
	), s.handleEvaluate)

	s.mcp.AddTool(mcplib.NewTool("postfix",
		mcplib.WithDescription("Convert an arithmetic expression into postfix (reverse Polish) notation"),
		mcplib.WithString("expression",
			mcplib.Required(),
			mcplib.Description("Infix expression"),
		),
	), s.handlePostfix)

	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the tools over stdin and stdout until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleEvaluate(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	expr, err := request.RequireString("expression")
	if err != nil {
		return mcplib.NewToolResultError(err.Error()), nil
	}

	res, err := s.calc.Evaluate(ctx, expr)
	if err != nil {
		return toolError(err), nil
	}
	return mcplib.NewToolResultText(res.String()), nil
}

func (s *Server) handlePostfix(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	expr, err := request.RequireString("expression")
	if err != nil {
		return mcplib.NewToolResultError(err.Error()), nil
	}

	postfix, err := s.calc.Postfix(ctx, expr)
	if err != nil {
		return toolError(err), nil
	}
	return mcplib.NewToolResultText(strings.Join(expression.Strings(postfix), " ")), nil
}

// toolError reports a failed evaluation as a tool error prefixed with its kind.
func toolError(err error) *mcplib.CallToolResult {
	return mcplib.NewToolResultError(fmt.Sprintf("%s error: %v", calculator.KindOf(err), err))
}
