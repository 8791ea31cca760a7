package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saify-technologies/generate-agent/internal/spaces"
)

// SearchSpaces finds Hugging Face Spaces matching a capability query.
type SearchSpaces struct {
	client *spaces.Client
}

func NewSearchSpaces(client *spaces.Client) *SearchSpaces {
	return &SearchSpaces{client: client}
}

func (s *SearchSpaces) Name() string { return "search_hf_spaces" }
func (s *SearchSpaces) Description() string {
	return "Search Hugging Face Spaces for an existing implementation of a capability"
}

func (s *SearchSpaces) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Capability to search for, e.g. 'background removal'",
			},
			"limit": map[string]any{
				"type":        "number",
				"description": "Maximum results to return (default 5, max 50)",
			},
			"gradio_only": map[string]any{
				"type":        "boolean",
				"description": "Only return Gradio spaces, the kind usable with Tool.from_space",
			},
		},
		"required":             []string{"query", "limit", "gradio_only"},
		"additionalProperties": false,
	}
}

func (s *SearchSpaces) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Query      string `json:"query"`
		Limit      int    `json:"limit"`
		GradioOnly bool   `json:"gradio_only"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing search input: %w", err)
	}
	if args.Query == "" {
		return "", fmt.Errorf("query is required")
	}

	slog.Debug("spaces: searching", "query", args.Query, "limit", args.Limit, "gradio_only", args.GradioOnly)

	found, err := s.client.Search(ctx, args.Query, args.Limit)
	if err != nil {
		return "", fmt.Errorf("searching spaces: %w", err)
	}
	if args.GradioOnly {
		kept := found[:0]
		for _, sp := range found {
			if sp.IsGradio() {
				kept = append(kept, sp)
			}
		}
		found = kept
	}
	if len(found) == 0 {
		return "No Spaces found.", nil
	}

	var b strings.Builder
	for i, sp := range found {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		fmt.Fprintf(&b, "%s\nsdk: %s, likes: %d\n%s", sp.ID, sp.SDK, sp.Likes, sp.URL())
	}
	return truncate([]byte(b.String())), nil
}

// ValidateSpace checks that a Space exists, is public, and exposes a
// Gradio interface usable via Tool.from_space.
type ValidateSpace struct {
	client *spaces.Client
}

func NewValidateSpace(client *spaces.Client) *ValidateSpace {
	return &ValidateSpace{client: client}
}

func (v *ValidateSpace) Name() string { return "validate_space" }
func (v *ValidateSpace) Description() string {
	return "Check that a Hugging Face Space exists, is public, and runs Gradio"
}

func (v *ValidateSpace) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"space_id": map[string]any{
				"type":        "string",
				"description": "Space identifier, e.g. 'owner/space-name'",
			},
		},
		"required":             []string{"space_id"},
		"additionalProperties": false,
	}
}

func (v *ValidateSpace) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		SpaceID string `json:"space_id"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing validate input: %w", err)
	}
	if args.SpaceID == "" {
		return "", fmt.Errorf("space_id is required")
	}

	exists, isGradio, err := v.client.Validate(ctx, args.SpaceID)
	if err != nil {
		return "", fmt.Errorf("validating space: %w", err)
	}

	switch {
	case !exists:
		return fmt.Sprintf("Space %s does not exist or is not public.", args.SpaceID), nil
	case !isGradio:
		return fmt.Sprintf("Space %s exists but does not run Gradio; it cannot be wrapped with Tool.from_space.", args.SpaceID), nil
	default:
		return fmt.Sprintf("Space %s is public and runs Gradio; usable as a space tool.", args.SpaceID), nil
	}
}
