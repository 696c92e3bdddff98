// Package mcp implements the server side of the Model Context Protocol over
// stdio: JSON-RPC 2.0 framing, tool listing, and tool dispatch.
package mcp

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const protocolVersion = "2024-11-05"

// JSONRPCRequest represents an incoming JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents an outgoing JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// InitializeResult is the response payload for the initialize handshake.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

// ServerInfo identifies this server to the client.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities advertises what the server supports.
type Capabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// ToolsCapability is the (empty) tools capability marker.
type ToolsCapability struct{}

// ToolDescriptor is one entry in a tools/list response.
type ToolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolsListResult is the tools/list response payload.
type ToolsListResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// Content is one element of a tool result content array.
type Content struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"` // base64 payload for image content
	MimeType string `json:"mimeType,omitempty"`
}

// TextContent builds a text content element.
func TextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// ImageContent builds a base64-encoded image content element.
func ImageContent(data []byte, mimeType string) Content {
	return Content{
		Type:     "image",
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}
}

// ToolResult is the payload delivered back through tools/call. Pipeline
// failures set IsError instead of surfacing as protocol errors.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// ErrorResult builds a failure result with a human-readable message.
func ErrorResult(format string, args ...interface{}) *ToolResult {
	return &ToolResult{
		Content: []Content{TextContent(fmt.Sprintf(format, args...))},
		IsError: true,
	}
}
