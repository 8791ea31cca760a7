//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saify-technologies/generate-agent/internal/agentconfig"
	"github.com/saify-technologies/generate-agent/internal/deps"
	"github.com/saify-technologies/generate-agent/internal/scaffold"
	"github.com/saify-technologies/generate-agent/internal/tools"
)

// TestFullFlowScaffoldAndExtend runs the complete offline flow:
// scaffold a project -> add a custom tool -> verify config, layout, and
// requirements stay consistent.
func TestFullFlowScaffoldAndExtend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "price_agent")

	// Step 1: Write the project skeleton.
	cfg := agentconfig.New("price_agent", "test/model", "You track product prices.", 15)
	cfg.AddTool(agentconfig.ToolSpec{
		Name:        "scrape_prices",
		Description: "Scrape prices from a product page",
		Kind:        agentconfig.KindCustom,
	})

	result, err := scaffold.Generate(cfg, deps.Resolve("scrape web pages"), dir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected validation warnings: %v", result.Warnings)
	}

	expected := []string{
		"run.py",
		"requirements.txt",
		"README.md",
		"agent_config.json",
		filepath.Join("src", "agent.py"),
		filepath.Join("src", "tools", "scrape_prices.py"),
	}
	for _, rel := range expected {
		assertFileExists(t, filepath.Join(dir, rel))
	}

	// Step 2: Add a second tool through the generator toolset.
	gen := &tools.GenerateTool{}
	input := `{"agent_dir": "` + dir + `", "name": "compare_prices", "description": "Compare prices across stores", "requirements": ["pandas>=2.0.0"]}`
	if _, err := gen.Execute(context.Background(), input); err != nil {
		t.Fatalf("GenerateTool.Execute: %v", err)
	}

	// Step 3: Config must record both tools and still validate.
	reloaded, err := agentconfig.ParseFile(filepath.Join(dir, agentconfig.FileName))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(reloaded.Tools) != 2 {
		t.Fatalf("len(Tools) = %d, want 2", len(reloaded.Tools))
	}
	vr, err := agentconfig.ValidateConfig(reloaded)
	if err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
	if !vr.Valid {
		t.Fatalf("config invalid after extension: %v", vr.Issues)
	}

	// Step 4: Requirements must contain the merged tool deps exactly once.
	reqs := readFile(t, filepath.Join(dir, "requirements.txt"))
	for _, want := range []string{"smolagents", "beautifulsoup4", "pandas>=2.0.0"} {
		if !strings.Contains(reqs, want) {
			t.Errorf("requirements.txt missing %q:\n%s", want, reqs)
		}
	}
	if strings.Count(reqs, "pandas") != 1 {
		t.Errorf("pandas duplicated in requirements.txt:\n%s", reqs)
	}

	// Step 5: Both tools are exported from the package.
	exports := readFile(t, filepath.Join(dir, "src", "tools", "__init__.py"))
	for _, want := range []string{"scrape_prices", "compare_prices"} {
		if !strings.Contains(exports, want) {
			t.Errorf("__init__.py missing export for %s:\n%s", want, exports)
		}
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
