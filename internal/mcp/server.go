// ABOUTME: MCP server that exposes snap tools via JSON-RPC over stdin/stdout
// ABOUTME: Handles initialize, tools/list, tools/call, ping, and resources/list

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/knightscode139/snap-store-mcp/internal/log"
	"github.com/knightscode139/snap-store-mcp/internal/tools"
)

const maxScannerBuffer = 10 * 1024 * 1024 // 10MB

// Server exposes the tool registry over newline-delimited JSON-RPC.
type Server struct {
	registry *tools.Registry
	reader   *bufio.Scanner
	writer   io.Writer
	info     ServerInfo
}

// NewServer creates an MCP server reading requests from in and writing
// responses to out.
func NewServer(registry *tools.Registry, in io.Reader, out io.Writer, version string) *Server {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, maxScannerBuffer), maxScannerBuffer)

	return &Server{
		registry: registry,
		reader:   scanner,
		writer:   out,
		info:     ServerInfo{Name: "snap-store-mcp", Version: version},
	}
}

// Serve reads JSON-RPC messages and dispatches them until EOF or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	for s.reader.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := s.reader.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeError(0, -32700, "Parse error")
			continue
		}

		s.handleRequest(ctx, &req)
	}

	return s.reader.Err()
}

func (s *Server) handleRequest(ctx context.Context, req *Request) {
	log.Debug("request %d: %s", req.ID, req.Method)

	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolsCall(ctx, req)
	case "resources/list":
		s.writeResult(req.ID, map[string]any{"resources": []Resource{}})
	case "ping":
		s.writeResult(req.ID, map[string]any{})
	case "notifications/initialized":
		// ACK; no response needed
	default:
		s.writeError(req.ID, -32601, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) handleInitialize(req *Request) {
	result := InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{},
		},
		ServerInfo: s.info,
	}
	s.writeResult(req.ID, result)
}

func (s *Server) handleToolsList(req *Request) {
	all := s.registry.All()
	descriptors := make([]ToolDescriptor, 0, len(all))
	for _, t := range all {
		descriptors = append(descriptors, ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	s.writeResult(req.ID, map[string]any{"tools": descriptors})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(req.ID, -32602, "invalid params")
		return
	}

	if s.registry.Get(params.Name) == nil {
		s.writeError(req.ID, -32602, fmt.Sprintf("unknown tool: %s", params.Name))
		return
	}

	result, err := s.registry.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		s.writeError(req.ID, -32000, err.Error())
		return
	}

	s.writeResult(req.ID, ToolCallResult{
		Content: []ContentItem{{Type: "text", Text: result.Content}},
		IsError: result.IsError,
	})
}

func (s *Server) writeResult(id int64, result any) {
	data, _ := json.Marshal(result)
	resp := Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result:  data,
	}
	out, _ := json.Marshal(resp)
	fmt.Fprintf(s.writer, "%s\n", out)
}

func (s *Server) writeError(id int64, code int, message string) {
	resp := Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	}
	out, _ := json.Marshal(resp)
	fmt.Fprintf(s.writer, "%s\n", out)
}
