package agentconfig

// Config is the persisted agent configuration (agent_config.json).
type Config struct {
	AgentName    string     `json:"agent_name"`
	ModelID      string     `json:"model_id"`
	SystemPrompt string     `json:"system_prompt"`
	MaxSteps     int        `json:"max_steps,omitempty"`
	Imports      []string   `json:"imports,omitempty"`
	Tools        []ToolSpec `json:"tools,omitempty"`
}

// ToolSpec describes a single tool wired into a generated agent. It is a
// static record, not runtime state: the scaffolder turns each entry into a
// Python source stub and an import line.
type ToolSpec struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Kind         string   `json:"kind"`
	SpaceID      string   `json:"space_id,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// Tool kinds for the ToolSpec.Kind discriminator.
const (
	KindCustom  = "custom"  // templated stub the user fills in
	KindSpace   = "space"   // Tool.from_space wrapper for a HF Space
	KindBuiltin = "builtin" // shipped with smolagents (e.g., web search)
)

// ValidKinds contains all valid ToolSpec.Kind values.
var ValidKinds = []string{KindCustom, KindSpace, KindBuiltin}

// BaseImports are always authorized for a generated CodeAgent, matching
// the import surface the emitted agent.py actually uses.
var BaseImports = []string{"os", "json", "typing", "smolagents", "requests"}
