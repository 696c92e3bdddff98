package mcp

import "context"

// Tool is a remote-invokable operation exposed over MCP.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}
	Execute(ctx context.Context, args map[string]interface{}) (*ToolResult, error)
}
