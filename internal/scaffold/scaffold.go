package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/saify-technologies/generate-agent/internal/agentconfig"
	"github.com/saify-technologies/generate-agent/internal/deps"
)

const agentTemplateDir = "templates/agent"

// AgentData holds all template variables available to agent templates.
type AgentData struct {
	AgentName    string // e.g., "web_researcher"
	ClassName    string // derived: "WebResearcher"
	ModelID      string
	SystemPrompt string
	MaxSteps     int
	Imports      []string
	Tools        []ToolData
	Year         int
}

// ToolData is the per-tool view exposed to templates.
type ToolData struct {
	Name        string // Python identifier, e.g., "fetch_page"
	ClassName   string // derived: "FetchPage"
	Description string
	Kind        string
	SpaceID     string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewAgentData builds the template data for a config, deriving Python
// class names from the snake_case identifiers.
func NewAgentData(cfg *agentconfig.Config) *AgentData {
	d := &AgentData{
		AgentName:    cfg.AgentName,
		ClassName:    PascalCase(cfg.AgentName),
		ModelID:      cfg.ModelID,
		SystemPrompt: cfg.SystemPrompt,
		MaxSteps:     cfg.MaxSteps,
		Imports:      cfg.Imports,
		Year:         time.Now().Year(),
	}
	if d.MaxSteps <= 0 {
		d.MaxSteps = 20
	}
	for _, t := range cfg.Tools {
		d.Tools = append(d.Tools, ToolData{
			Name:        t.Name,
			ClassName:   PascalCase(t.Name),
			Description: t.Description,
			Kind:        t.Kind,
			SpaceID:     t.SpaceID,
		})
	}
	return d
}

// StubTools returns the subset of tools that need a generated source stub
// (everything except smolagents builtins).
func (d *AgentData) StubTools() []ToolData {
	var out []ToolData
	for _, t := range d.Tools {
		if t.Kind != agentconfig.KindBuiltin {
			out = append(out, t)
		}
	}
	return out
}

// Generate creates the complete agent tree under outputDir: template
// renders, per-tool stubs, requirements.txt, and agent_config.json. The
// requirements list must already be merged by the caller.
func Generate(cfg *agentconfig.Config, requirements []deps.Requirement, outputDir string) (*Result, error) {
	data := NewAgentData(cfg)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Refuse to clobber existing work.
	existing, err := os.ReadDir(outputDir)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{OutputDir: outputDir}

	// Render the fixed template set, preserving subdirectories.
	err = fs.WalkDir(templateFS, agentTemplateDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(agentTemplateDir, path)
		if err != nil {
			return err
		}
		outName := strings.TrimSuffix(rel, ".tmpl")

		content, err := render(path, data)
		if err != nil {
			return err
		}

		outPath := filepath.Join(outputDir, outName)
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Per-tool source stubs.
	for _, tool := range data.StubTools() {
		name, content, err := ToolStub(tool)
		if err != nil {
			return nil, err
		}
		outPath := filepath.Join(outputDir, "src", "tools", name)
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, filepath.Join("src", "tools", name))
	}

	// requirements.txt from the resolved dependency list.
	reqPath := filepath.Join(outputDir, "requirements.txt")
	if err := os.WriteFile(reqPath, []byte(deps.Render(requirements)), 0644); err != nil {
		return nil, fmt.Errorf("writing requirements.txt: %w", err)
	}
	result.Files = append(result.Files, "requirements.txt")

	// agent_config.json, then validate what we wrote.
	cfgPath := filepath.Join(outputDir, agentconfig.FileName)
	if err := cfg.WriteFile(cfgPath); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, agentconfig.FileName)

	valResult, valErr := agentconfig.ValidateFile(cfgPath)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate agent config: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	}

	return result, nil
}

// render parses and executes a single embedded template.
func render(path string, data any) ([]byte, error) {
	raw, err := fs.ReadFile(templateFS, path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// PascalCase converts a snake_case or kebab-case identifier to PascalCase.
func PascalCase(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// SnakeCase normalizes a tool or agent name to a valid lower_snake Python
// identifier.
func SnakeCase(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, lower)
	for strings.Contains(mapped, "__") {
		mapped = strings.ReplaceAll(mapped, "__", "_")
	}
	return strings.Trim(mapped, "_")
}
