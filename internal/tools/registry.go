// ABOUTME: Tool registry: stores tools and dispatches schema-validated calls
// ABOUTME: Compiles each tool's input schema once at registration time

package tools

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Registry manages the collection of available tools.
type Registry struct {
	tools   map[string]*Tool
	schemas map[string]*jsonschema.Schema
}

// NewRegistry creates a Registry with the built-in snap tools registered.
func NewRegistry(runner Runner) (*Registry, error) {
	r := &Registry{
		tools:   make(map[string]*Tool),
		schemas: make(map[string]*jsonschema.Schema),
	}

	builtins := []*Tool{
		NewSearchTool(runner),
		NewInfoTool(runner),
	}
	for _, t := range builtins {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool, replacing any existing tool with the same name.
// The tool's input schema is compiled here so Call can validate arguments.
func (r *Registry) Register(t *Tool) error {
	if len(t.InputSchema) > 0 {
		c := jsonschema.NewCompiler()
		name := t.Name + ".schema.json"
		if err := c.AddResource(name, bytes.NewReader(t.InputSchema)); err != nil {
			return fmt.Errorf("loading schema for %s: %w", t.Name, err)
		}
		sch, err := c.Compile(name)
		if err != nil {
			return fmt.Errorf("compiling schema for %s: %w", t.Name, err)
		}
		r.schemas[t.Name] = sch
	}
	r.tools[t.Name] = t
	return nil
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) *Tool {
	return r.tools[name]
}

// All returns every registered tool, sorted by name.
func (r *Registry) All() []*Tool {
	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call validates params against the named tool's schema and executes it.
// Validation failures are tool-level errors, not Go errors: the client sees
// an isError result with the validation message.
func (r *Registry) Call(ctx context.Context, name string, params map[string]any) (Result, error) {
	t, ok := r.tools[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown tool %q", name)
	}

	if sch := r.schemas[name]; sch != nil {
		doc := any(params)
		if params == nil {
			doc = map[string]any{}
		}
		if err := sch.Validate(doc); err != nil {
			return Result{Content: fmt.Sprintf("invalid arguments: %v", err), IsError: true}, nil
		}
	}

	return t.Execute(ctx, params)
}
