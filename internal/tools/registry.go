package tools

import (
	"github.com/saify-technologies/generate-agent/internal/agent"
	"github.com/saify-technologies/generate-agent/internal/runtime"
	"github.com/saify-technologies/generate-agent/internal/spaces"
)

// Options configures the generator toolset.
type Options struct {
	ModelID     string // model id baked into generated agents
	MaxSteps    int    // max_steps for generated agents
	HubToken    string // Hugging Face token for the Spaces API
	BraveAPIKey string // empty disables web search
	Pip         *runtime.Pip
}

// NewRegistry assembles the full toolset in the order the system prompt
// walks through it.
func NewRegistry(o Options) *agent.Registry {
	spacesClient := spaces.NewClient("", o.HubToken)
	pip := o.Pip
	if pip == nil {
		pip = &runtime.Pip{}
	}

	reg := agent.NewRegistry()
	reg.Register(NewSearchSpaces(spacesClient))
	reg.Register(NewValidateSpace(spacesClient))
	reg.Register(NewWeb(o.BraveAPIKey))
	reg.Register(&ResolveDependencies{})
	reg.Register(NewGenerateStructure(o.ModelID, o.MaxSteps))
	reg.Register(&GenerateTool{})
	reg.Register(NewGenerateSpaceTool(spacesClient))
	reg.Register(NewCheckDependencies(pip))
	reg.Register(NewInstallDependencies(pip))
	return reg
}
