package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/saify-technologies/generate-agent/internal/agentconfig"
	"github.com/saify-technologies/generate-agent/internal/deps"
	"github.com/saify-technologies/generate-agent/internal/scaffold"
)

// GenerateTool writes a custom tool stub into an existing agent project
// and records it in agent_config.json.
type GenerateTool struct{}

func (g *GenerateTool) Name() string { return "generate_tool" }
func (g *GenerateTool) Description() string {
	return "Add a custom tool stub to an already generated agent project"
}

func (g *GenerateTool) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_dir": map[string]any{
				"type":        "string",
				"description": "Path to the generated agent directory",
			},
			"name": map[string]any{
				"type":        "string",
				"description": "Tool name in snake_case, e.g. 'fetch_page'",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One-line description of what the tool does",
			},
			"requirements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Extra pip requirements the tool needs, e.g. ['requests>=2.31.0']",
			},
		},
		"required":             []string{"agent_dir", "name", "description", "requirements"},
		"additionalProperties": false,
	}
}

func (g *GenerateTool) Execute(_ context.Context, input string) (string, error) {
	var args struct {
		AgentDir     string   `json:"agent_dir"`
		ToolName     string   `json:"name"`
		Description  string   `json:"description"`
		Requirements []string `json:"requirements"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing generate_tool input: %w", err)
	}
	if err := checkIdent(args.ToolName); err != nil {
		return "", err
	}

	spec := agentconfig.ToolSpec{
		Name:         args.ToolName,
		Description:  args.Description,
		Kind:         agentconfig.KindCustom,
		Requirements: args.Requirements,
	}
	path, err := addToolToProject(expandHome(args.AgentDir), spec)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("custom tool %s written to %s", args.ToolName, path), nil
}

// addToolToProject writes the stub, records the tool in
// agent_config.json, and folds its requirements into requirements.txt.
func addToolToProject(agentDir string, spec agentconfig.ToolSpec) (string, error) {
	cfgPath := filepath.Join(agentDir, agentconfig.FileName)
	cfg, err := agentconfig.ParseFile(cfgPath)
	if err != nil {
		return "", fmt.Errorf("loading agent config: %w", err)
	}

	path, err := scaffold.WriteToolStub(agentDir, spec)
	if err != nil {
		return "", fmt.Errorf("writing tool stub: %w", err)
	}

	cfg.AddTool(spec)
	if err := cfg.WriteFile(cfgPath); err != nil {
		return "", fmt.Errorf("updating agent config: %w", err)
	}

	if err := mergeRequirements(agentDir, spec.Requirements); err != nil {
		return "", err
	}

	slog.Info("tool added", "name", spec.Name, "kind", spec.Kind, "dir", agentDir)
	return path, nil
}

// mergeRequirements folds extra requirement lines into the project's
// requirements.txt, keeping the highest minimum per package.
func mergeRequirements(agentDir string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	extra, err := deps.ParseList(joinLines(lines))
	if err != nil {
		return fmt.Errorf("parsing tool requirements: %w", err)
	}

	reqPath := filepath.Join(agentDir, "requirements.txt")
	existing := []deps.Requirement{}
	if data, err := os.ReadFile(reqPath); err == nil {
		existing, err = deps.ParseList(string(data))
		if err != nil {
			return fmt.Errorf("parsing requirements.txt: %w", err)
		}
	}

	merged := deps.Merge(append(existing, extra...))
	return os.WriteFile(reqPath, []byte(deps.Render(merged)), 0644)
}

func joinLines(lines []string) string {
	var b []byte
	for i, l := range lines {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, l...)
	}
	return string(b)
}
