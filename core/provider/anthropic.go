package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/siherrmann/tripler/model"
)

// Anthropic calls the messages API with a single user message
type Anthropic struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropic creates an Anthropic backend. An empty baseURL keeps the public endpoint.
func NewAnthropic(apiKey string, modelName string, baseURL string, maxTokens int64) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if maxTokens <= 0 {
		maxTokens = model.DefaultMaxTokens
	}

	return &Anthropic{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(modelName),
		maxTokens: maxTokens,
	}
}

// ID implements Provider
func (p *Anthropic) ID() model.ProviderID {
	return model.ProviderAnthropic
}

// Complete implements Provider
func (p *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", providerError(p.ID(), err)
	}

	for _, content := range message.Content {
		if content.Type == "text" {
			return content.Text, nil
		}
	}

	return "", providerError(p.ID(), fmt.Errorf("%w: no text block in %d content blocks", ErrEmptyResponse, len(message.Content)))
}
