// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into
// the binary with //go:embed, so a fork only needs to edit one file to
// rename the tool and its environment surface.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	GitHubRepo    string `yaml:"github_repo"`
	RouterBaseURL string `yaml:"router_base_url"`
	HubBaseURL    string `yaml:"hub_base_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "generate-agent",
			DisplayName:   "Dynamic Agent Generator",
			Description:   "Generates specialized smolagents CodeAgents from natural-language requirements",
			HomeDir:       ".generate-agent",
			EnvPrefix:     "DAG",
			GoModule:      "github.com/saify-technologies/generate-agent",
			GitHubRepo:    "saify-technologies/dynamic-agent-generator",
			RouterBaseURL: "https://router.huggingface.co/v1",
			HubBaseURL:    "https://huggingface.co",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "generate-agent").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".generate-agent").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "DAG").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by release scripts, not at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string for this project.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// RouterBaseURL returns the OpenAI-compatible inference router endpoint.
func RouterBaseURL() string { load(); return defaults.RouterBaseURL }

// HubBaseURL returns the Hugging Face Hub base URL used by the Spaces client.
func HubBaseURL() string { load(); return defaults.HubBaseURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("model") → "DAG_MODEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
