package agentconfig

import (
	"testing"
)

func TestValidateConfig_Valid(t *testing.T) {
	c := New("WebAgent", "meta-llama/Llama-3.3-70B-Instruct", "You browse the web.", 20)
	c.AddTool(ToolSpec{Name: "fetch_page", Description: "Fetch a web page", Kind: KindCustom, Requirements: []string{"requests>=2.31.0"}})
	c.AddTool(ToolSpec{Name: "stable_diffusion", Description: "Generate images", Kind: KindSpace, SpaceID: "stabilityai/stable-diffusion"})

	result, err := ValidateConfig(c)
	if err != nil {
		t.Fatalf("ValidateConfig() error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %d issues:", len(result.Issues))
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
	}
}

func TestValidate_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing model_id", `{"agent_name": "A", "system_prompt": "p"}`},
		{"empty system_prompt", `{"agent_name": "A", "model_id": "m", "system_prompt": ""}`},
		{"bad agent name", `{"agent_name": "9bad", "model_id": "m", "system_prompt": "p"}`},
		{"bad tool kind", `{"agent_name": "A", "model_id": "m", "system_prompt": "p",
			"tools": [{"name": "x", "description": "d", "kind": "magic"}]}`},
		{"space tool without space_id", `{"agent_name": "A", "model_id": "m", "system_prompt": "p",
			"tools": [{"name": "x", "description": "d", "kind": "space"}]}`},
		{"bad tool name pattern", `{"agent_name": "A", "model_id": "m", "system_prompt": "p",
			"tools": [{"name": "Not-Python", "description": "d", "kind": "custom"}]}`},
		{"unknown top-level field", `{"agent_name": "A", "model_id": "m", "system_prompt": "p", "extra": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.json))
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if result.Valid {
				t.Errorf("expected invalid for %s, got valid", tt.name)
			}
			if len(result.Issues) == 0 {
				t.Errorf("expected at least one issue for %s", tt.name)
			}
		})
	}
}

func TestValidate_NotJSON(t *testing.T) {
	if _, err := Validate([]byte("not json at all")); err == nil {
		t.Fatal("expected error for non-JSON input, got nil")
	}
}

func TestValidate_IssueFields(t *testing.T) {
	result, err := Validate([]byte(`{"agent_name": "9bad", "model_id": "m", "system_prompt": "p"}`))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	for _, issue := range result.Issues {
		if issue.Message == "" {
			t.Error("issue has empty message")
		}
	}
}
