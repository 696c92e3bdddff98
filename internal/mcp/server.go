package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Server dispatches JSON-RPC requests to registered tools. Requests are read
// one per line from the transport; responses are written the same way. All
// logging goes to the injected logger, never the transport stream.
type Server struct {
	name    string
	version string
	tools   map[string]Tool
	order   []string
	log     *zap.Logger
}

// NewServer creates an MCP server.
func NewServer(name, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		name:    name,
		version: version,
		tools:   make(map[string]Tool),
		log:     logger,
	}
}

// Register adds a tool. Later registrations with the same name replace
// earlier ones.
func (s *Server) Register(t Tool) {
	if _, exists := s.tools[t.Name()]; !exists {
		s.order = append(s.order, t.Name())
	}
	s.tools[t.Name()] = t
}

// ServeStdio reads requests from in and writes responses to out until in is
// exhausted or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // image payloads can be large
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			if err := enc.Encode(JSONRPCResponse{
				JSONRPC: "2.0",
				Error:   &JSONRPCError{Code: codeParseError, Message: "Parse error: " + err.Error()},
			}); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			continue
		}

		if req.Method == "initialized" || strings.HasPrefix(req.Method, "notifications/") {
			continue
		}

		resp := s.Handle(ctx, req)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

// Handle processes a single request.
func (s *Server) Handle(ctx context.Context, req JSONRPCRequest) JSONRPCResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &JSONRPCError{Code: codeMethodNotFound, Message: "Method not found: " + req.Method},
		}
	}
}

func (s *Server) handleInitialize(req JSONRPCRequest) JSONRPCResponse {
	result := InitializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo:      ServerInfo{Name: s.name, Version: s.version},
		Capabilities:    Capabilities{Tools: ToolsCapability{}},
	}
	payload, _ := json.Marshal(result)
	return JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: payload}
}

func (s *Server) handleToolsList(req JSONRPCRequest) JSONRPCResponse {
	descriptors := make([]ToolDescriptor, 0, len(s.order))
	for _, name := range s.order {
		t := s.tools[name]
		descriptors = append(descriptors, ToolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	payload, _ := json.Marshal(ToolsListResult{Tools: descriptors})
	return JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: payload}
}

func (s *Server) handleToolsCall(ctx context.Context, req JSONRPCRequest) JSONRPCResponse {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &JSONRPCError{Code: codeInvalidParams, Message: "Invalid params: " + err.Error()},
		}
	}

	tool, ok := s.tools[params.Name]
	if !ok {
		return JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &JSONRPCError{Code: codeMethodNotFound, Message: "Unknown tool: " + params.Name},
		}
	}

	requestID := uuid.NewString()
	start := time.Now()
	s.log.Info("tool call started",
		zap.String("tool", params.Name),
		zap.String("request_id", requestID))

	result := s.execute(ctx, tool, params.Arguments)

	s.log.Info("tool call finished",
		zap.String("tool", params.Name),
		zap.String("request_id", requestID),
		zap.Bool("is_error", result.IsError),
		zap.Duration("duration", time.Since(start)))

	payload, err := json.Marshal(result)
	if err != nil {
		payload, _ = json.Marshal(ErrorResult("encode tool result: %v", err))
	}
	return JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: payload}
}

// execute runs a tool and converts every failure mode, panics included, into
// an error-flagged result. Nothing escapes the tool boundary.
func (s *Server) execute(ctx context.Context, tool Tool, args map[string]interface{}) (result *ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tool panicked",
				zap.String("tool", tool.Name()),
				zap.Any("panic", r))
			result = ErrorResult("%s failed: internal error", tool.Name())
		}
	}()

	if args == nil {
		args = map[string]interface{}{}
	}
	res, err := tool.Execute(ctx, args)
	if err != nil {
		return ErrorResult("%s failed: %v", tool.Name(), err)
	}
	if res == nil {
		return ErrorResult("%s returned no result", tool.Name())
	}
	return res
}
