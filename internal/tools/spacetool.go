package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saify-technologies/generate-agent/internal/agentconfig"
	"github.com/saify-technologies/generate-agent/internal/deps"
	"github.com/saify-technologies/generate-agent/internal/spaces"
)

// GenerateSpaceTool wraps a validated Hugging Face Space as a tool in an
// existing agent project.
type GenerateSpaceTool struct {
	client *spaces.Client
}

func NewGenerateSpaceTool(client *spaces.Client) *GenerateSpaceTool {
	return &GenerateSpaceTool{client: client}
}

func (g *GenerateSpaceTool) Name() string { return "generate_space_tool" }
func (g *GenerateSpaceTool) Description() string {
	return "Add a Hugging Face Space wrapper tool to an already generated agent project"
}

func (g *GenerateSpaceTool) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_dir": map[string]any{
				"type":        "string",
				"description": "Path to the generated agent directory",
			},
			"name": map[string]any{
				"type":        "string",
				"description": "Tool name in snake_case, e.g. 'remove_background'",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One-line description of what the tool does",
			},
			"space_id": map[string]any{
				"type":        "string",
				"description": "Space to wrap, e.g. 'owner/space-name'",
			},
		},
		"required":             []string{"agent_dir", "name", "description", "space_id"},
		"additionalProperties": false,
	}
}

func (g *GenerateSpaceTool) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		AgentDir    string `json:"agent_dir"`
		ToolName    string `json:"name"`
		Description string `json:"description"`
		SpaceID     string `json:"space_id"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing generate_space_tool input: %w", err)
	}
	if err := checkIdent(args.ToolName); err != nil {
		return "", err
	}
	if args.SpaceID == "" {
		return "", fmt.Errorf("space_id is required")
	}

	exists, isGradio, err := g.client.Validate(ctx, args.SpaceID)
	if err != nil {
		return "", fmt.Errorf("validating space: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("space %s does not exist or is not public", args.SpaceID)
	}
	if !isGradio {
		return "", fmt.Errorf("space %s does not run Gradio and cannot be wrapped", args.SpaceID)
	}

	spec := agentconfig.ToolSpec{
		Name:         args.ToolName,
		Description:  args.Description,
		Kind:         agentconfig.KindSpace,
		SpaceID:      args.SpaceID,
		Requirements: []string{deps.GradioClient.String()},
	}
	path, err := addToolToProject(expandHome(args.AgentDir), spec)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("space tool %s (wrapping %s) written to %s", args.ToolName, args.SpaceID, path), nil
}
