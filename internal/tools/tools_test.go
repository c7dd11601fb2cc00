// ABOUTME: Tests for the search_snaps and snap_info tools and the registry
// ABOUTME: Uses a fake runner; no snap processes are spawned

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/knightscode139/snap-store-mcp/internal/snap"
)

// fakeRunner implements Runner with canned output and errors.
type fakeRunner struct {
	searchOut string
	searchErr error
	infoOut   string
	infoErr   error

	lastQuery string
	lastName  string
}

func (f *fakeRunner) Search(_ context.Context, query string) (string, error) {
	f.lastQuery = query
	return f.searchOut, f.searchErr
}

func (f *fakeRunner) Info(_ context.Context, name string) (string, error) {
	f.lastName = name
	return f.infoOut, f.infoErr
}

const searchOutput = "Name Version Publisher Notes Summary\n" +
	"firefox 120.0 mozilla stable Fast web browser\n" +
	"chromium 119.0 canonical - Open-source browser\n" +
	"vlc 3.0.20 videolan - Media player\n"

func newTestRegistry(t *testing.T, runner Runner) *Registry {
	t.Helper()
	r, err := NewRegistry(runner)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestSearchTool_HappyPath(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{searchOut: searchOutput}
	r := newTestRegistry(t, runner)

	result, err := r.Call(context.Background(), "search_snaps", map[string]any{"query": "browser"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", result.Content)
	}
	if runner.lastQuery != "browser" {
		t.Errorf("query passed as %q", runner.lastQuery)
	}

	var packages []snap.Package
	if err := json.Unmarshal([]byte(result.Content), &packages); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	if len(packages) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(packages))
	}
	if packages[0].Name != "firefox" || packages[0].Summary != "Fast web browser" {
		t.Errorf("unexpected first package: %+v", packages[0])
	}
}

func TestSearchTool_EmptyResultsIsNotError(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{searchOut: "Name Version Publisher Notes Summary\n"}
	r := newTestRegistry(t, runner)

	result, err := r.Call(context.Background(), "search_snaps", map[string]any{"query": "nothing"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", result.Content)
	}
	if strings.TrimSpace(result.Content) != "[]" {
		t.Errorf("got %q, want empty JSON array", result.Content)
	}
}

func TestSearchTool_Limit(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{searchOut: searchOutput}
	r := newTestRegistry(t, runner)

	result, err := r.Call(context.Background(), "search_snaps", map[string]any{
		"query": "browser",
		"limit": float64(2), // JSON numbers arrive as float64
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	var packages []snap.Package
	if err := json.Unmarshal([]byte(result.Content), &packages); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	if len(packages) != 2 {
		t.Errorf("expected 2 packages, got %d", len(packages))
	}
}

func TestSearchTool_Rank(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{searchOut: searchOutput}
	r := newTestRegistry(t, runner)

	result, err := r.Call(context.Background(), "search_snaps", map[string]any{
		"query": "vlc",
		"rank":  true,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	var packages []snap.Package
	if err := json.Unmarshal([]byte(result.Content), &packages); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	if len(packages) != 3 {
		t.Fatalf("expected all 3 packages, got %d", len(packages))
	}
	if packages[0].Name != "vlc" {
		t.Errorf("expected vlc ranked first, got %q", packages[0].Name)
	}
}

func TestSearchTool_CommandFailurePayload(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{searchErr: &snap.CommandError{
		Command: "snap search x",
		Stderr:  "store is unreachable",
		Hint:    "Check if the package name is correct. Try using 'search_snaps' first.",
	}}
	r := newTestRegistry(t, runner)

	result, err := r.Call(context.Background(), "search_snaps", map[string]any{"query": "x"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for failed invocation")
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(result.Content), &payload); err != nil {
		t.Fatalf("error content is not JSON: %v", err)
	}
	if payload["error"] != "Command failed" {
		t.Errorf("error = %q", payload["error"])
	}
	if payload["command"] != "snap search x" {
		t.Errorf("command = %q", payload["command"])
	}
	if payload["stderr"] != "store is unreachable" {
		t.Errorf("stderr = %q", payload["stderr"])
	}
	if payload["suggestion"] == "" {
		t.Error("expected a suggestion")
	}
}

func TestSearchTool_UnexpectedErrorPayload(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{searchErr: errors.New("fork failed")}
	r := newTestRegistry(t, runner)

	result, _ := r.Call(context.Background(), "search_snaps", map[string]any{"query": "x"})
	if !result.IsError {
		t.Fatal("expected IsError")
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(result.Content), &payload); err != nil {
		t.Fatalf("error content is not JSON: %v", err)
	}
	if payload["error"] != "Unexpected error" {
		t.Errorf("error = %q", payload["error"])
	}
	if payload["details"] != "fork failed" {
		t.Errorf("details = %q", payload["details"])
	}
}

func TestSearchTool_SchemaRejectsMissingQuery(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, &fakeRunner{})

	result, err := r.Call(context.Background(), "search_snaps", map[string]any{})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for missing query")
	}
	if !strings.Contains(result.Content, "invalid arguments") {
		t.Errorf("got %q, want schema validation message", result.Content)
	}
}

func TestSearchTool_SchemaRejectsWrongType(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, &fakeRunner{})

	result, err := r.Call(context.Background(), "search_snaps", map[string]any{"query": float64(42)})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for non-string query")
	}
}

func TestInfoTool_HappyPath(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{infoOut: "name: firefox\nsummary: A browser\n  that is fast\n"}
	r := newTestRegistry(t, runner)

	result, err := r.Call(context.Background(), "snap_info", map[string]any{"package_name": "firefox"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", result.Content)
	}
	if runner.lastName != "firefox" {
		t.Errorf("package_name passed as %q", runner.lastName)
	}

	var info map[string]string
	if err := json.Unmarshal([]byte(result.Content), &info); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	if info["summary"] != "A browser\nthat is fast" {
		t.Errorf("summary = %q", info["summary"])
	}
}

func TestInfoTool_SchemaRejectsMissingName(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, &fakeRunner{})

	result, err := r.Call(context.Background(), "snap_info", nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for missing package_name")
	}
}

func TestRegistry_UnknownTool(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, &fakeRunner{})

	if _, err := r.Call(context.Background(), "no_such_tool", nil); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestRegistry_All(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, &fakeRunner{})

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(all))
	}
	// Sorted by name.
	if all[0].Name != "search_snaps" || all[1].Name != "snap_info" {
		t.Errorf("unexpected order: %s, %s", all[0].Name, all[1].Name)
	}
}
