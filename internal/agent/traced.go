package agent

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/saify-technologies/generate-agent/internal/trace"
)

type tracedTool struct {
	Tool
}

func withTrace(t Tool) Tool {
	return &tracedTool{Tool: t}
}

func (t *tracedTool) Execute(ctx context.Context, input string) (string, error) {
	ctx, span := trace.Tracer().Start(ctx, t.Name(),
		oteltrace.WithAttributes(
			attribute.String("gen_ai.tool.name", t.Name()),
			attribute.String("gen_ai.tool.input", input),
		),
	)
	defer span.End()

	result, err := t.Tool.Execute(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	span.SetAttributes(attribute.Int("gen_ai.tool.output_length", len(result)))
	return result, nil
}
