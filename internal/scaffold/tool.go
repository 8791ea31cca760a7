package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saify-technologies/generate-agent/internal/agentconfig"
)

// ToolStub renders the Python source for a single tool stub and returns
// the file name it should be written as.
func ToolStub(tool ToolData) (fileName string, content []byte, err error) {
	var tmplPath string
	switch tool.Kind {
	case agentconfig.KindSpace:
		tmplPath = "templates/tool/space_tool.py.tmpl"
	case agentconfig.KindCustom:
		tmplPath = "templates/tool/custom_tool.py.tmpl"
	default:
		return "", nil, fmt.Errorf("no stub template for tool kind %q", tool.Kind)
	}

	content, err = render(tmplPath, tool)
	if err != nil {
		return "", nil, err
	}
	return tool.Name + ".py", content, nil
}

// WriteToolStub emits a tool stub into an existing agent's src/tools
// directory and registers the export in __init__.py. Used when the model
// generates tools one at a time instead of through a full scaffold pass.
func WriteToolStub(agentDir string, spec agentconfig.ToolSpec) (string, error) {
	tool := ToolData{
		Name:        spec.Name,
		ClassName:   PascalCase(spec.Name),
		Description: spec.Description,
		Kind:        spec.Kind,
		SpaceID:     spec.SpaceID,
	}

	name, content, err := ToolStub(tool)
	if err != nil {
		return "", err
	}

	toolsDir := filepath.Join(agentDir, "src", "tools")
	if err := os.MkdirAll(toolsDir, 0755); err != nil {
		return "", fmt.Errorf("creating tools directory: %w", err)
	}

	path := filepath.Join(toolsDir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("writing tool stub %s: %w", path, err)
	}

	if err := appendToolExport(toolsDir, spec.Name); err != nil {
		return "", err
	}
	return path, nil
}

// appendToolExport adds the re-export line for a tool to
// src/tools/__init__.py, creating the file if needed. Already-present
// exports are left alone.
func appendToolExport(toolsDir, toolName string) error {
	initPath := filepath.Join(toolsDir, "__init__.py")
	line := fmt.Sprintf("from .%s import %s\n", toolName, toolName)

	existing, err := os.ReadFile(initPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", initPath, err)
	}
	if strings.Contains(string(existing), line) {
		return nil
	}

	f, err := os.OpenFile(initPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", initPath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("updating %s: %w", initPath, err)
	}
	return nil
}
