package llm

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// OpenAIProvider talks to any OpenAI-compatible endpoint; in the default
// configuration that is the Hugging Face inference router with an HF token.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAI(baseURL, apiKey, model string) *OpenAIProvider {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, option.WithHTTPClient(&http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}))
	client := openai.NewClient(opts...)
	return &OpenAIProvider{client: &client, model: model}
}

func (o *OpenAIProvider) Chat(ctx context.Context, input []responses.ResponseInputItemUnionParam, tools []responses.ToolUnionParam) (*responses.Response, error) {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(o.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		Tools: tools,
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return nil, err
	}

	slog.Debug("llm response",
		"model", resp.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
	return resp, nil
}

// OutputToInput converts response output items into input item params for
// the next API call. Each output type's ToParam() does a lossless
// round-trip via RawJSON.
func OutputToInput(output []responses.ResponseOutputItemUnion) []responses.ResponseInputItemUnionParam {
	var items []responses.ResponseInputItemUnionParam
	for _, item := range output {
		switch item.Type {
		case "message":
			v := item.AsMessage().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfOutputMessage: &v})
		case "function_call":
			v := item.AsFunctionCall().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfFunctionCall: &v})
		case "reasoning":
			v := item.AsReasoning().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfReasoning: &v})
		default:
			slog.Debug("skipping unknown output item type", "type", item.Type)
		}
	}
	return items
}
