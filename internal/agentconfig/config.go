package agentconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// FileName is the config file emitted at the root of a generated agent.
const FileName = "agent_config.json"

// New returns a Config with the base import set and the given identity
// fields filled in.
func New(agentName, modelID, systemPrompt string, maxSteps int) *Config {
	return &Config{
		AgentName:    agentName,
		ModelID:      modelID,
		SystemPrompt: systemPrompt,
		MaxSteps:     maxSteps,
		Imports:      slices.Clone(BaseImports),
	}
}

// AddTool appends a tool entry, replacing any existing entry with the same
// name so repeated generation attempts stay idempotent.
func (c *Config) AddTool(t ToolSpec) {
	for i, existing := range c.Tools {
		if existing.Name == t.Name {
			c.Tools[i] = t
			return
		}
	}
	c.Tools = append(c.Tools, t)
}

// AddImports merges additional authorized imports, preserving order and
// dropping duplicates.
func (c *Config) AddImports(imports ...string) {
	for _, imp := range imports {
		if imp != "" && !slices.Contains(c.Imports, imp) {
			c.Imports = append(c.Imports, imp)
		}
	}
}

// Requirements collects the Python package requirements declared by all
// tool entries, in first-seen order.
func (c *Config) Requirements() []string {
	var reqs []string
	for _, t := range c.Tools {
		for _, r := range t.Requirements {
			if r != "" && !slices.Contains(reqs, r) {
				reqs = append(reqs, r)
			}
		}
	}
	return reqs
}

// Marshal renders the config as indented JSON with a trailing newline.
func (c *Config) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling agent config: %w", err)
	}
	return append(data, '\n'), nil
}

// Parse decodes an agent config from JSON bytes.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing agent config: %w", err)
	}
	return &c, nil
}

// ParseFile reads and decodes an agent config file.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent config %s: %w", path, err)
	}
	return Parse(data)
}

// WriteFile marshals the config and writes it to path.
func (c *Config) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing agent config %s: %w", path, err)
	}
	return nil
}
