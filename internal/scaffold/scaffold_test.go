package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saify-technologies/generate-agent/internal/agentconfig"
	"github.com/saify-technologies/generate-agent/internal/deps"
)

func testConfig() *agentconfig.Config {
	cfg := agentconfig.New("web_researcher", "meta-llama/Llama-3.3-70B-Instruct", "You research topics on the web.", 20)
	cfg.AddTool(agentconfig.ToolSpec{
		Name:         "fetch_page",
		Description:  "Fetch a web page and return its text",
		Kind:         agentconfig.KindCustom,
		Requirements: []string{"requests>=2.31.0"},
	})
	cfg.AddTool(agentconfig.ToolSpec{
		Name:        "summarize_text",
		Description: "Summarize long text",
		Kind:        agentconfig.KindSpace,
		SpaceID:     "facebook/bart-large-cnn",
	})
	return cfg
}

func testRequirements(t *testing.T, cfg *agentconfig.Config) []deps.Requirement {
	t.Helper()
	extra, err := deps.ParseList(strings.Join(cfg.Requirements(), ","))
	if err != nil {
		t.Fatalf("parsing tool requirements: %v", err)
	}
	return deps.Merge(append(append([]deps.Requirement{}, deps.BaseRequirements...), extra...))
}

func TestGenerateEmitsFixedSkeleton(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "web_researcher")
	cfg := testConfig()

	result, err := Generate(cfg, testRequirements(t, cfg), outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	expected := []string{
		"README.md",
		"run.py",
		"agent_config.json",
		"requirements.txt",
		filepath.Join("src", "agent.py"),
		filepath.Join("src", "__init__.py"),
		filepath.Join("src", "tools", "__init__.py"),
		filepath.Join("src", "tools", "fetch_page.py"),
		filepath.Join("src", "tools", "summarize_text.py"),
		filepath.Join("tests", "test_agent.py"),
		filepath.Join("examples", "basic_usage.py"),
		filepath.Join("docs", "architecture.md"),
	}
	for _, f := range expected {
		if _, err := os.Stat(filepath.Join(outDir, f)); err != nil {
			t.Errorf("missing expected file %s: %v", f, err)
		}
	}

	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestGenerateAgentPyContent(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "web_researcher")
	cfg := testConfig()

	if _, err := Generate(cfg, testRequirements(t, cfg), outDir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	agentPy := readGenerated(t, outDir, filepath.Join("src", "agent.py"))
	assertContains(t, agentPy, "class WebResearcherAgent:")
	assertContains(t, agentPy, `model_id="meta-llama/Llama-3.3-70B-Instruct"`)
	assertContains(t, agentPy, "DuckDuckGoSearchTool(),")
	assertContains(t, agentPy, "fetch_page,")
	assertContains(t, agentPy, "summarize_text,")
	assertContains(t, agentPy, "max_steps: int = 20")
	assertContains(t, agentPy, "You research topics on the web.")

	initPy := readGenerated(t, outDir, filepath.Join("src", "tools", "__init__.py"))
	assertContains(t, initPy, "from .fetch_page import fetch_page")
	assertContains(t, initPy, "from .summarize_text import summarize_text")
}

func TestGenerateToolStubs(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "web_researcher")
	cfg := testConfig()

	if _, err := Generate(cfg, testRequirements(t, cfg), outDir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	custom := readGenerated(t, outDir, filepath.Join("src", "tools", "fetch_page.py"))
	assertContains(t, custom, "class FetchPageTool(Tool):")
	assertContains(t, custom, `name = "fetch_page"`)
	assertContains(t, custom, "def forward(")

	space := readGenerated(t, outDir, filepath.Join("src", "tools", "summarize_text.py"))
	assertContains(t, space, "Tool.from_space(")
	assertContains(t, space, `space_id="facebook/bart-large-cnn"`)
}

func TestGenerateRequirementsAndConfig(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "web_researcher")
	cfg := testConfig()

	if _, err := Generate(cfg, testRequirements(t, cfg), outDir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	reqs := readGenerated(t, outDir, "requirements.txt")
	assertContains(t, reqs, "smolagents>=1.2.2")
	assertContains(t, reqs, "huggingface-hub>=0.19.0")
	assertContains(t, reqs, "requests>=2.31.0")

	valResult, err := agentconfig.ValidateFile(filepath.Join(outDir, agentconfig.FileName))
	if err != nil {
		t.Fatalf("ValidateFile() error: %v", err)
	}
	if !valResult.Valid {
		t.Errorf("generated config failed validation: %v", valResult.Issues)
	}

	readme := readGenerated(t, outDir, "README.md")
	if strings.TrimSpace(readme) == "" {
		t.Error("README.md is empty")
	}
}

func TestGenerateRefusesNonEmptyDir(t *testing.T) {
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "keep.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	_, err := Generate(cfg, testRequirements(t, cfg), outDir)
	if err == nil {
		t.Fatal("expected error for non-empty output dir")
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("err = %v, want not-empty message", err)
	}
}

func TestWriteToolStubUpdatesInit(t *testing.T) {
	agentDir := t.TempDir()

	spec := agentconfig.ToolSpec{Name: "resize_image", Description: "Resize an image", Kind: agentconfig.KindCustom}
	path, err := WriteToolStub(agentDir, spec)
	if err != nil {
		t.Fatalf("WriteToolStub() error: %v", err)
	}
	if filepath.Base(path) != "resize_image.py" {
		t.Errorf("path = %q, want resize_image.py", path)
	}

	initPy := readGenerated(t, agentDir, filepath.Join("src", "tools", "__init__.py"))
	assertContains(t, initPy, "from .resize_image import resize_image")

	// Writing again must not duplicate the export.
	if _, err := WriteToolStub(agentDir, spec); err != nil {
		t.Fatalf("second WriteToolStub() error: %v", err)
	}
	initPy = readGenerated(t, agentDir, filepath.Join("src", "tools", "__init__.py"))
	if strings.Count(initPy, "from .resize_image import resize_image") != 1 {
		t.Errorf("duplicate export in __init__.py:\n%s", initPy)
	}
}

func TestPascalCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"web_researcher", "WebResearcher"},
		{"fetch-page", "FetchPage"},
		{"agent", "Agent"},
		{"img2img_tool", "Img2imgTool"},
	}
	for _, tt := range tests {
		if got := PascalCase(tt.in); got != tt.want {
			t.Errorf("PascalCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Web Researcher", "web_researcher"},
		{"Fetch--Page", "fetch_page"},
		{"  weird__name  ", "weird_name"},
	}
	for _, tt := range tests {
		if got := SnakeCase(tt.in); got != tt.want {
			t.Errorf("SnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ─── Helpers ───────────────────────────────────────────────────────

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, want string) {
	t.Helper()
	if !strings.Contains(content, want) {
		t.Errorf("content missing %q:\n%s", want, content)
	}
}
