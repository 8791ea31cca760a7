package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/saify-technologies/generate-agent/internal/agent"
	"github.com/saify-technologies/generate-agent/internal/agentconfig"
	"github.com/saify-technologies/generate-agent/internal/config"
	"github.com/saify-technologies/generate-agent/internal/deps"
	"github.com/saify-technologies/generate-agent/internal/llm"
	"github.com/saify-technologies/generate-agent/internal/runtime"
	"github.com/saify-technologies/generate-agent/internal/scaffold"
	"github.com/saify-technologies/generate-agent/internal/tools"
	"github.com/saify-technologies/generate-agent/internal/trace"
)

type generateParams struct {
	requirements string
	outputDir    string
	modelID      string
	hfToken      string
	maxSteps     int
	dryRun       bool
}

func runGenerate(ctx context.Context, p generateParams) error {
	requirement, err := readRequirement(p.requirements)
	if err != nil {
		return err
	}

	modelID := p.modelID
	if modelID == "" {
		modelID = config.Get(config.KeyModelID)
	}
	maxSteps := p.maxSteps
	if maxSteps <= 0 {
		maxSteps = config.GetInt(config.KeyMaxSteps)
	}

	if p.dryRun {
		return runDryRun(requirement, p.outputDir, modelID, maxSteps)
	}

	token := config.HFToken(p.hfToken)
	if token == "" {
		return fmt.Errorf("a Hugging Face token is required: set HF_TOKEN or pass --hf-token")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := trace.Init(ctx, trace.Config{
		Endpoint: config.Get(config.KeyOTLPEndpoint),
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer shutdown(context.Background())

	provider := llm.NewOpenAI(config.Get(config.KeyBaseURL), token, modelID)
	registry := tools.NewRegistry(tools.Options{
		ModelID:     modelID,
		MaxSteps:    maxSteps,
		HubToken:    token,
		BraveAPIKey: config.Get(config.KeyBraveAPIKey),
		// pip output belongs with the other progress noise on stderr.
		Pip: &runtime.Pip{Stdout: os.Stderr, Stderr: os.Stderr},
	})
	runner := agent.NewRunner(provider, registry, agent.WithMaxSteps(maxSteps))

	summary, err := runner.Run(ctx, requirement, p.outputDir, printEvent)
	if err != nil {
		return fmt.Errorf("generating agent: %w", err)
	}

	fmt.Println(summary)
	return nil
}

// runDryRun writes the deterministic part of the project without calling
// the model: the skeleton, a config derived from the requirement text,
// and keyword-resolved requirements.
func runDryRun(requirement, outputDir, modelID string, maxSteps int) error {
	name := scaffold.SnakeCase(lastPathElem(outputDir))
	if name == "" {
		name = "generated_agent"
	}
	if !strings.HasSuffix(name, "_agent") {
		name += "_agent"
	}

	prompt := fmt.Sprintf(
		"You are %s, a CodeAgent built for the following task:\n%s\nSolve tasks step by step using your tools.",
		name, requirement)
	cfg := agentconfig.New(name, modelID, prompt, maxSteps)

	result, err := scaffold.Generate(cfg, deps.Resolve(requirement), outputDir)
	if err != nil {
		return fmt.Errorf("generating skeleton: %w", err)
	}

	fmt.Printf("Skeleton written to %s (%d files):\n", result.OutputDir, len(result.Files))
	for _, f := range result.Files {
		fmt.Printf("  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return nil
}

// readRequirement treats the flag value as a file path when one exists,
// and as literal requirement text otherwise.
func readRequirement(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("reading requirements file %s: %w", arg, err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("requirements file %s is empty", arg)
		}
		return text, nil
	}

	text := strings.TrimSpace(arg)
	if text == "" {
		return "", fmt.Errorf("requirements text is empty")
	}
	return text, nil
}

func lastPathElem(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// printEvent renders progress on stderr; stdout is reserved for the
// final summary.
func printEvent(e agent.Event) {
	switch e.Type {
	case agent.EventToolCall:
		data := e.Data.(map[string]string)
		fmt.Fprintf(os.Stderr, "→ %s %s\n", data["name"], compact(data["arguments"], 120))
	case agent.EventToolResult:
		data := e.Data.(map[string]string)
		fmt.Fprintf(os.Stderr, "← %s: %s\n", data["name"], compact(data["content"], 120))
	case agent.EventText:
		fmt.Fprintf(os.Stderr, "%s\n", e.Data)
	case agent.EventError:
		fmt.Fprintf(os.Stderr, "error: %s\n", e.Data)
	}
}

// compact collapses whitespace and truncates to max runes, so multi-byte
// characters in tool arguments are never split mid-sequence.
func compact(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}
