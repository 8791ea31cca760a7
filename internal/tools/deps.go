package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/saify-technologies/generate-agent/internal/deps"
	"github.com/saify-technologies/generate-agent/internal/runtime"
)

// ResolveDependencies maps capability descriptions to pip requirements.
type ResolveDependencies struct{}

func (r *ResolveDependencies) Name() string { return "resolve_dependencies" }
func (r *ResolveDependencies) Description() string {
	return "Resolve Python package requirements for a list of tool capabilities"
}

func (r *ResolveDependencies) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"capabilities": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Capability descriptions, e.g. 'scrape web pages', 'plot charts'",
			},
		},
		"required":             []string{"capabilities"},
		"additionalProperties": false,
	}
}

func (r *ResolveDependencies) Execute(_ context.Context, input string) (string, error) {
	var args struct {
		Capabilities []string `json:"capabilities"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing resolve input: %w", err)
	}

	var all []deps.Requirement
	for _, capability := range args.Capabilities {
		all = append(all, deps.Resolve(capability)...)
	}
	if len(all) == 0 {
		all = deps.Resolve("")
	}
	merged := deps.Merge(all)

	slog.Debug("deps: resolved", "capabilities", len(args.Capabilities), "requirements", len(merged))
	return deps.Render(merged), nil
}

// CheckDependencies reports whether the local Python toolchain can
// install a generated agent, and whether its requirements exist on PyPI.
type CheckDependencies struct {
	pip      *runtime.Pip
	pypiBase string
	client   *http.Client
}

func NewCheckDependencies(pip *runtime.Pip) *CheckDependencies {
	return &CheckDependencies{
		pip:      pip,
		pypiBase: "https://pypi.org",
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *CheckDependencies) Name() string { return "check_dependencies" }
func (c *CheckDependencies) Description() string {
	return "Check that pip is available and that an agent's requirements exist on PyPI"
}

func (c *CheckDependencies) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_dir": map[string]any{
				"type":        "string",
				"description": "Path to a generated agent directory",
			},
		},
		"required":             []string{"agent_dir"},
		"additionalProperties": false,
	}
}

func (c *CheckDependencies) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		AgentDir string `json:"agent_dir"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing check input: %w", err)
	}
	agentDir := expandHome(args.AgentDir)

	var b strings.Builder
	if err := c.pip.Available(ctx); err != nil {
		fmt.Fprintf(&b, "pip unavailable: %v\n", err)
	} else {
		python, _ := c.pip.Python()
		fmt.Fprintf(&b, "pip available via %s\n", python)
	}

	data, err := os.ReadFile(filepath.Join(agentDir, "requirements.txt"))
	if err != nil {
		fmt.Fprintf(&b, "no requirements.txt in %s", agentDir)
		return b.String(), nil
	}
	reqs, err := deps.ParseList(string(data))
	if err != nil {
		return "", fmt.Errorf("parsing requirements.txt: %w", err)
	}

	for _, r := range reqs {
		if err := c.onPyPI(ctx, r.Package); err != nil {
			fmt.Fprintf(&b, "%s: %v\n", r.String(), err)
		} else {
			fmt.Fprintf(&b, "%s: ok\n", r.String())
		}
	}
	return b.String(), nil
}

// onPyPI probes the package's JSON endpoint on the index.
func (c *CheckDependencies) onPyPI(ctx context.Context, pkg string) error {
	u := fmt.Sprintf("%s/pypi/%s/json", c.pypiBase, url.PathEscape(pkg))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("pypi unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("not found on PyPI")
	default:
		return fmt.Errorf("pypi returned status %d", resp.StatusCode)
	}
}

// InstallDependencies runs pip install against a generated agent's
// requirements.txt.
type InstallDependencies struct {
	pip *runtime.Pip
}

func NewInstallDependencies(pip *runtime.Pip) *InstallDependencies {
	return &InstallDependencies{pip: pip}
}

func (i *InstallDependencies) Name() string { return "install_dependencies" }
func (i *InstallDependencies) Description() string {
	return "Install a generated agent's Python requirements with pip"
}

func (i *InstallDependencies) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_dir": map[string]any{
				"type":        "string",
				"description": "Path to a generated agent directory containing requirements.txt",
			},
		},
		"required":             []string{"agent_dir"},
		"additionalProperties": false,
	}
}

func (i *InstallDependencies) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		AgentDir string `json:"agent_dir"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing install input: %w", err)
	}
	agentDir := expandHome(args.AgentDir)

	slog.Info("installing agent requirements", "dir", agentDir)

	out, err := i.pip.Install(ctx, agentDir)
	if err != nil {
		return "", fmt.Errorf("pip install: %w", err)
	}
	if out.ExitCode != 0 {
		return "", fmt.Errorf("pip install failed (exit %d): %s", out.ExitCode, truncate([]byte(out.Stderr)))
	}
	return fmt.Sprintf("requirements installed\n%s", truncate([]byte(out.Stdout))), nil
}
