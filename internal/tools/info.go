// ABOUTME: snap_info tool: runs snap info and returns the parsed field map
// ABOUTME: Output is the indented JSON object of field name to field value

package tools

import (
	"context"
	"encoding/json"

	"github.com/knightscode139/snap-store-mcp/internal/snap"
)

// NewInfoTool creates the snap_info tool backed by the given runner.
func NewInfoTool(runner Runner) *Tool {
	return &Tool{
		Name:        "snap_info",
		Description: "Get detailed information about a specific snap package",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"required": ["package_name"],
			"properties": {
				"package_name": {"type": "string", "description": "Exact snap package name (e.g., 'firefox')"}
			}
		}`),
		Execute: func(ctx context.Context, params map[string]any) (Result, error) {
			name, err := requireStringParam(params, "package_name")
			if err != nil {
				return errResult(err), nil
			}

			raw, err := runner.Info(ctx, name)
			if err != nil {
				return invocationErrResult(err), nil
			}

			out, err := json.MarshalIndent(snap.ParseInfo(raw), "", "  ")
			if err != nil {
				return invocationErrResult(err), nil
			}
			return Result{Content: string(out)}, nil
		},
	}
}
