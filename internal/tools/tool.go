// ABOUTME: Tool and Result types shared by the registry and the MCP server
// ABOUTME: Defines the Runner interface the snap client satisfies

package tools

import (
	"context"
	"encoding/json"
)

// Result holds the outcome of a single tool execution. IsError marks
// tool-level failures; these are returned to the client as data, never as
// protocol faults.
type Result struct {
	Content string
	IsError bool
}

// Tool is one operation exposed over MCP.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Execute     func(ctx context.Context, params map[string]any) (Result, error)
}

// Runner abstracts the snap CLI for the tools. *snap.Client implements it.
type Runner interface {
	Search(ctx context.Context, query string) (string, error)
	Info(ctx context.Context, name string) (string, error)
}
