// Package llm abstracts the inference backend behind a single-call
// Provider interface so the generation loop can be tested with a fake.
package llm

import (
	"context"

	"github.com/openai/openai-go/v3/responses"
)

type Provider interface {
	Chat(ctx context.Context, input []responses.ResponseInputItemUnionParam, tools []responses.ToolUnionParam) (*responses.Response, error)
}
