package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saify-technologies/generate-agent/internal/agentconfig"
	"github.com/saify-technologies/generate-agent/internal/deps"
	"github.com/saify-technologies/generate-agent/internal/scaffold"
)

// GenerateStructure writes the complete agent project skeleton. The
// model calls it once, after it has planned the tool list.
type GenerateStructure struct {
	modelID  string // model id baked into the generated agent
	maxSteps int
}

func NewGenerateStructure(modelID string, maxSteps int) *GenerateStructure {
	return &GenerateStructure{modelID: modelID, maxSteps: maxSteps}
}

func (g *GenerateStructure) Name() string { return "generate_agent_structure" }
func (g *GenerateStructure) Description() string {
	return "Write the full agent project (agent.py, run.py, tools, config, docs) to the output directory"
}

func (g *GenerateStructure) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"output_dir": map[string]any{
				"type":        "string",
				"description": "Directory to write the project into (must be empty or absent)",
			},
			"agent_name": map[string]any{
				"type":        "string",
				"description": "Agent name in snake_case, e.g. 'image_agent'",
			},
			"system_prompt": map[string]any{
				"type":        "string",
				"description": "System prompt tailored to the requirement",
			},
			"tools": map[string]any{
				"type":        "array",
				"description": "Planned tools for the agent",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Tool name in snake_case",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "What the tool does",
						},
						"kind": map[string]any{
							"type":        "string",
							"enum":        []string{"custom", "space", "builtin"},
							"description": "custom: templated stub; space: HF Space wrapper; builtin: shipped with smolagents",
						},
						"space_id": map[string]any{
							"type":        "string",
							"description": "Space to wrap for kind=space; empty otherwise",
						},
						"capability": map[string]any{
							"type":        "string",
							"description": "Capability phrase used to resolve pip requirements, e.g. 'scrape web pages'",
						},
					},
					"required":             []string{"name", "description", "kind", "space_id", "capability"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"output_dir", "agent_name", "system_prompt", "tools"},
		"additionalProperties": false,
	}
}

type plannedTool struct {
	ToolName    string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	SpaceID     string `json:"space_id"`
	Capability  string `json:"capability"`
}

func (g *GenerateStructure) Execute(_ context.Context, input string) (string, error) {
	var args struct {
		OutputDir    string        `json:"output_dir"`
		AgentName    string        `json:"agent_name"`
		SystemPrompt string        `json:"system_prompt"`
		Tools        []plannedTool `json:"tools"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing structure input: %w", err)
	}
	if err := checkIdent(args.AgentName); err != nil {
		return "", err
	}
	if args.SystemPrompt == "" {
		return "", fmt.Errorf("system_prompt is required")
	}

	cfg := agentconfig.New(args.AgentName, g.modelID, args.SystemPrompt, g.maxSteps)

	var resolved []deps.Requirement
	resolved = append(resolved, deps.BaseRequirements...)
	for _, t := range args.Tools {
		if err := checkIdent(t.ToolName); err != nil {
			return "", err
		}
		if t.Kind == agentconfig.KindSpace && t.SpaceID == "" {
			return "", fmt.Errorf("tool %s has kind=space but no space_id", t.ToolName)
		}

		reqs := deps.Resolve(t.Capability)
		if t.Kind == agentconfig.KindSpace {
			reqs = append(reqs, deps.GradioClient)
		}
		resolved = append(resolved, reqs...)

		var lines []string
		for _, r := range reqs {
			lines = append(lines, r.String())
		}
		cfg.AddTool(agentconfig.ToolSpec{
			Name:         t.ToolName,
			Description:  t.Description,
			Kind:         t.Kind,
			SpaceID:      t.SpaceID,
			Requirements: lines,
		})
	}

	result, err := scaffold.Generate(cfg, deps.Merge(resolved), expandHome(args.OutputDir))
	if err != nil {
		return "", fmt.Errorf("generating structure: %w", err)
	}

	slog.Info("agent structure written",
		"agent", args.AgentName, "dir", result.OutputDir,
		"files", len(result.Files), "warnings", len(result.Warnings))

	var b strings.Builder
	fmt.Fprintf(&b, "agent project written to %s\n", result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	return b.String(), nil
}
