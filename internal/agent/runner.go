package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/saify-technologies/generate-agent/internal/llm"
	"github.com/saify-technologies/generate-agent/internal/trace"
)

// DefaultSystemPrompt instructs the model how to drive the generator
// toolset. It mirrors the staged flow the tools are designed around.
const DefaultSystemPrompt = `You are an agent generator. Given a natural-language requirement you
produce a complete smolagents CodeAgent project by calling the provided tools.

Follow these steps:
1. Analyze the requirement and decide which tool capabilities the new agent needs.
2. For each required capability:
   a. Use search_hf_spaces to find relevant Hugging Face Spaces.
   b. Validate promising Spaces with validate_space.
   c. If a suitable Gradio Space exists, plan a space tool for it;
      otherwise plan a custom tool.
   Use the web tool to expand unfamiliar terms when needed.
3. Use resolve_dependencies to collect Python requirements for the planned tools.
4. Call generate_agent_structure exactly once with the agent name, a tailored
   system prompt, and the full tool list. This writes the project skeleton.
5. Use generate_tool or generate_space_tool only for tools added after the
   structure was written.
6. Finish with a short summary of what was generated and how to run it.

Prefer Spaces that are public, recently updated, and expose a Gradio
interface. Tool errors are reported back to you: adapt and continue rather
than giving up.`

const defaultMaxSteps = 20

// Option configures a Runner.
type Option func(*Runner)

func WithSystemPrompt(s string) Option {
	return func(r *Runner) { r.systemPrompt = s }
}

func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxSteps = n
		}
	}
}

// Runner drives the generation loop: the model reasons about the
// requirement and acts through the registered tools until it stops
// requesting calls or the step budget runs out.
type Runner struct {
	provider     llm.Provider
	registry     *Registry
	tools        []responses.ToolUnionParam
	systemPrompt string
	maxSteps     int
}

func NewRunner(provider llm.Provider, registry *Registry, opts ...Option) *Runner {
	r := &Runner{
		provider:     provider,
		registry:     registry,
		systemPrompt: DefaultSystemPrompt,
		maxSteps:     defaultMaxSteps,
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, t := range registry.All() {
		schema, _ := t.InputSchema().(map[string]any)
		r.tools = append(r.tools, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters:  schema,
				Strict:      openai.Bool(true),
			},
		})
	}

	return r
}

// Run executes the loop for one requirement and returns the model's final
// summary text.
func (r *Runner) Run(ctx context.Context, requirement, outputDir string, emit func(Event)) (string, error) {
	truncated := requirement
	if len(truncated) > 200 {
		truncated = truncated[:200]
	}
	ctx, span := trace.Tracer().Start(ctx, "agent.generate",
		oteltrace.WithAttributes(
			attribute.String("generate.requirement", truncated),
			attribute.String("generate.output_dir", outputDir),
		),
	)
	defer span.End()

	user := fmt.Sprintf(
		"Create a new CodeAgent based on these requirements:\n%s\n\nWrite the generated project under the directory %q.",
		requirement, outputDir,
	)

	input := []responses.ResponseInputItemUnionParam{
		responses.ResponseInputItemParamOfMessage(r.systemPrompt, "developer"),
		responses.ResponseInputItemParamOfMessage(user, "user"),
	}

	resp, err := r.loop(ctx, input, emit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	emit(Event{Type: EventDone})
	return resp.OutputText(), nil
}

// loop is the core cycle. Each iteration is a single LLM call where the
// model reasons about the current state and picks actions. Tool failures
// go back into context as results, so the model sees them next iteration
// and adapts. The loop exits when the model returns no tool calls or the
// step budget is exhausted.
func (r *Runner) loop(ctx context.Context, input []responses.ResponseInputItemUnionParam, emit func(Event)) (*responses.Response, error) {
	var resp *responses.Response

	for iteration := 0; ; iteration++ {
		if err := ctx.Err(); err != nil {
			emit(Event{Type: EventError, Data: "request cancelled"})
			return nil, err
		}
		if iteration >= r.maxSteps {
			return nil, fmt.Errorf("generation did not converge within %d steps", r.maxSteps)
		}

		llmCtx, llmSpan := trace.Tracer().Start(ctx, "llm.generate",
			oteltrace.WithAttributes(attribute.Int("llm.iteration", iteration)),
		)

		var err error
		resp, err = r.provider.Chat(llmCtx, input, r.tools)
		if err != nil {
			llmSpan.RecordError(err)
			llmSpan.SetStatus(codes.Error, err.Error())
			llmSpan.End()
			emit(Event{Type: EventError, Data: err.Error()})
			return nil, err
		}

		llmSpan.SetAttributes(
			attribute.String("llm.model", string(resp.Model)),
			attribute.Int64("llm.input_tokens", resp.Usage.InputTokens),
			attribute.Int64("llm.output_tokens", resp.Usage.OutputTokens),
		)
		llmSpan.End()

		if text := resp.OutputText(); text != "" {
			emit(Event{Type: EventText, Data: text})
		}

		// Feed the model's output (including its reasoning) back into context.
		input = append(input, llm.OutputToInput(resp.Output)...)

		var calls []responses.ResponseOutputItemUnion
		for _, item := range resp.Output {
			if item.Type == "function_call" {
				calls = append(calls, item)
			}
		}

		// No tool calls: the model considers the generation done.
		if len(calls) == 0 {
			return resp, nil
		}

		results := r.act(ctx, calls, emit)
		input = append(input, results...)
	}
}

// act executes tool calls in parallel, emitting events for each, and
// returns the results formatted as input items for the next LLM turn.
func (r *Runner) act(ctx context.Context, calls []responses.ResponseOutputItemUnion, emit func(Event)) []responses.ResponseInputItemUnionParam {
	for _, call := range calls {
		fc := call.AsFunctionCall()
		emit(Event{Type: EventToolCall, Data: map[string]string{
			"name":      fc.Name,
			"arguments": fc.Arguments,
		}})
	}

	var wg sync.WaitGroup
	results := make([]responses.ResponseInputItemUnionParam, len(calls))

	for i, call := range calls {
		wg.Add(1)
		go func(i int, call responses.ResponseOutputItemUnion) {
			defer wg.Done()
			fc := call.AsFunctionCall()

			tool, ok := r.registry.Get(fc.Name)
			if !ok {
				slog.Warn("unknown tool call", "name", fc.Name)
				results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, "error: unknown tool")
				emit(Event{Type: EventToolResult, Data: map[string]string{
					"name":    fc.Name,
					"content": "error: unknown tool",
				}})
				return
			}

			traced := withTrace(tool)
			result, err := traced.Execute(ctx, fc.Arguments)
			if err != nil {
				slog.Warn("tool execution failed", "name", fc.Name, "error", err)
				errMsg := "error: " + err.Error()
				results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, errMsg)
				emit(Event{Type: EventToolResult, Data: map[string]string{
					"name":    fc.Name,
					"content": errMsg,
				}})
				return
			}

			results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, result)
			emit(Event{Type: EventToolResult, Data: map[string]string{
				"name":    fc.Name,
				"content": result,
			}})
		}(i, call)
	}

	wg.Wait()
	return results
}
