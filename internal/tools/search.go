// ABOUTME: search_snaps tool: runs snap search and returns structured results
// ABOUTME: Optional fuzzy ranking and result limit applied after parsing

package tools

import (
	"context"
	"encoding/json"

	"github.com/sahilm/fuzzy"

	"github.com/knightscode139/snap-store-mcp/internal/snap"
)

// NewSearchTool creates the search_snaps tool backed by the given runner.
func NewSearchTool(runner Runner) *Tool {
	return &Tool{
		Name:        "search_snaps",
		Description: "Search for snap packages in the Snap Store by name, category, or keywords. Returns matching packages even if query doesn't exactly match package name.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"required": ["query"],
			"properties": {
				"query": {"type": "string", "description": "Search query - can be package name, category, or keywords (e.g., 'browser', 'video editor', 'python', 'game')"},
				"limit": {"type": "integer", "minimum": 1, "description": "Maximum number of results to return"},
				"rank":  {"type": "boolean", "description": "Order results by name relevance to the query instead of store order"}
			}
		}`),
		Execute: func(ctx context.Context, params map[string]any) (Result, error) {
			query, err := requireStringParam(params, "query")
			if err != nil {
				return errResult(err), nil
			}

			raw, err := runner.Search(ctx, query)
			if err != nil {
				return invocationErrResult(err), nil
			}

			packages := snap.ParseSearch(raw)
			if boolParam(params, "rank", false) {
				packages = rankByName(packages, query)
			}
			if limit := intParam(params, "limit", 0); limit > 0 && limit < len(packages) {
				packages = packages[:limit]
			}

			out, err := json.MarshalIndent(packages, "", "  ")
			if err != nil {
				return invocationErrResult(err), nil
			}
			return Result{Content: string(out)}, nil
		},
	}
}

// rankByName orders packages by fuzzy relevance of their name to the query.
// Non-matching packages keep their original order after the matches.
func rankByName(packages []snap.Package, query string) []snap.Package {
	names := make([]string, len(packages))
	for i, p := range packages {
		names[i] = p.Name
	}

	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return packages
	}

	matched := make(map[int]bool, len(matches))
	out := make([]snap.Package, 0, len(packages))
	for _, m := range matches {
		out = append(out, packages[m.Index])
		matched[m.Index] = true
	}
	for i, p := range packages {
		if !matched[i] {
			out = append(out, p)
		}
	}
	return out
}
