package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestReadRequirementLiteral(t *testing.T) {
	got, err := readRequirement("  build a scraper agent  ")
	if err != nil {
		t.Fatalf("readRequirement() error: %v", err)
	}
	if got != "build a scraper agent" {
		t.Errorf("readRequirement() = %q", got)
	}
}

func TestReadRequirementFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.txt")
	if err := os.WriteFile(path, []byte("summarize PDFs\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readRequirement(path)
	if err != nil {
		t.Fatalf("readRequirement() error: %v", err)
	}
	if got != "summarize PDFs" {
		t.Errorf("readRequirement() = %q", got)
	}
}

func TestReadRequirementEmpty(t *testing.T) {
	if _, err := readRequirement("   "); err == nil {
		t.Error("expected error for blank requirement text")
	}

	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := readRequirement(path); err == nil {
		t.Error("expected error for empty requirements file")
	}
}

func TestRunDryRunWritesSkeleton(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scraper-agent")

	if err := runDryRun("scrape web pages for prices", dir, "test/model", 10); err != nil {
		t.Fatalf("runDryRun() error: %v", err)
	}

	for _, rel := range expectedFiles {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	reqs, err := os.ReadFile(filepath.Join(dir, "requirements.txt"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"smolagents", "beautifulsoup4"} {
		if !strings.Contains(string(reqs), want) {
			t.Errorf("requirements.txt missing %q:\n%s", want, reqs)
		}
	}

	// Dry run must be deterministic: a second run into a fresh dir
	// produces the same agent identity.
	cfg, err := os.ReadFile(filepath.Join(dir, "agent_config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cfg), `"scraper_agent"`) {
		t.Errorf("agent name not derived from output dir:\n%s", cfg)
	}
}

func TestRunGenerateMissingToken(t *testing.T) {
	t.Setenv("HF_TOKEN", "")

	err := runGenerate(context.Background(), generateParams{
		requirements: "build a scraper agent",
		outputDir:    filepath.Join(t.TempDir(), "out"),
		modelID:      "test/model",
		maxSteps:     5,
	})
	if err == nil {
		t.Fatal("expected missing-token error")
	}
	if !strings.Contains(err.Error(), "HF_TOKEN") {
		t.Errorf("err = %v, want a message pointing at HF_TOKEN", err)
	}
}

func TestRunGenerateDryRunNeedsNoToken(t *testing.T) {
	t.Setenv("HF_TOKEN", "")

	err := runGenerate(context.Background(), generateParams{
		requirements: "build a scraper agent",
		outputDir:    filepath.Join(t.TempDir(), "scraper-agent"),
		modelID:      "test/model",
		maxSteps:     5,
		dryRun:       true,
	})
	if err != nil {
		t.Fatalf("dry run failed without a token: %v", err)
	}
}

func TestLastPathElem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"out/my-agent", "my-agent"},
		{"my-agent/", "my-agent"},
		{"agent", "agent"},
	}
	for _, tt := range tests {
		if got := lastPathElem(tt.in); got != tt.want {
			t.Errorf("lastPathElem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompact(t *testing.T) {
	long := strings.Repeat("word ", 50)
	got := compact(long, 20)
	if len(got) != 23 || !strings.HasSuffix(got, "...") {
		t.Errorf("compact() = %q", got)
	}
	if got := compact("a  b\nc", 100); got != "a b c" {
		t.Errorf("compact() = %q", got)
	}

	// Truncation must land on a rune boundary.
	got = compact(strings.Repeat("é", 30), 10)
	if !utf8.ValidString(got) {
		t.Errorf("compact() split a rune: %q", got)
	}
	if got != strings.Repeat("é", 10)+"..." {
		t.Errorf("compact() = %q", got)
	}
}
