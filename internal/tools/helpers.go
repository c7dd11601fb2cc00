// ABOUTME: Shared helper functions for tool parameter extraction
// ABOUTME: Builds the structured error payload returned on failed invocations

package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/knightscode139/snap-store-mcp/internal/snap"
)

// requireStringParam extracts a required string parameter from the args map.
func requireStringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

// intParam extracts an optional integer parameter with a default value.
// Handles both float64 (from JSON unmarshal) and int types.
func intParam(params map[string]any, key string, defaultVal int) int {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n > float64(math.MaxInt) || n < float64(math.MinInt) {
			return defaultVal
		}
		return int(n)
	case int:
		return n
	default:
		return defaultVal
	}
}

// boolParam extracts an optional boolean parameter with a default value.
func boolParam(params map[string]any, key string, defaultVal bool) bool {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// errResult builds a Result that signals an error.
func errResult(err error) Result {
	return Result{Content: err.Error(), IsError: true}
}

// errorPayload is the JSON error object returned to MCP clients when a snap
// invocation fails or something unexpected goes wrong.
type errorPayload struct {
	Error      string `json:"error"`
	Command    string `json:"command,omitempty"`
	Stderr     string `json:"stderr,omitempty"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion"`
}

// invocationErrResult converts a snap client error into a structured error
// payload. CommandError carries the failed command and its stderr; anything
// else is reported as unexpected.
func invocationErrResult(err error) Result {
	var cmdErr *snap.CommandError
	var payload errorPayload
	if errors.As(err, &cmdErr) {
		payload = errorPayload{
			Error:      "Command failed",
			Command:    cmdErr.Command,
			Stderr:     cmdErr.Stderr,
			Suggestion: cmdErr.Hint,
		}
	} else {
		payload = errorPayload{
			Error:      "Unexpected error",
			Details:    err.Error(),
			Suggestion: "Please report this issue on GitHub",
		}
	}

	out, _ := json.MarshalIndent(payload, "", "  ")
	return Result{Content: string(out), IsError: true}
}
