package agent

import "context"

// Tool is a single capability the model can invoke during generation.
// InputSchema returns a JSON Schema object describing the arguments;
// Execute receives them as raw JSON and returns text for the model.
type Tool interface {
	Name() string
	Description() string
	InputSchema() any
	Execute(ctx context.Context, input string) (string, error)
}

type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns the registered tools in registration order, so the tool
// list sent to the model is stable across runs.
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}
