package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/siherrmann/tripler/model"
)

// OpenAI calls the chat completions API in JSON mode
type OpenAI struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAI creates an OpenAI backend. An empty baseURL keeps the public endpoint.
func NewOpenAI(apiKey string, modelName string, baseURL string, maxTokens int64) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAI{
		client:    openai.NewClient(opts...),
		model:     modelName,
		maxTokens: maxTokens,
	}
}

// ID implements Provider
func (p *OpenAI) ID() model.ProviderID {
	return model.ProviderOpenAI
}

// Complete implements Provider
func (p *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	if p.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(p.maxTokens)
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", providerError(p.ID(), err)
	}

	if len(completion.Choices) == 0 {
		return "", providerError(p.ID(), fmt.Errorf("%w: no choices", ErrEmptyResponse))
	}

	return completion.Choices[0].Message.Content, nil
}
