package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/siherrmann/tripler/model"
)

// systemPrompt frames the validator call for backends with a system role
const systemPrompt = "You are a precise relationship extraction system. Return only valid JSON."

// ErrEmptyResponse is wrapped when a backend answers without any text
var ErrEmptyResponse = errors.New("response contains no text")

// Provider sends one prompt to a language model and returns the raw reply text.
// Failures are returned as *model.ProviderError. Implementations never retry.
type Provider interface {
	ID() model.ProviderID
	Complete(ctx context.Context, prompt string) (string, error)
}

// New creates the backend named by the configuration.
// The configuration is validated first, an unknown provider id is a configuration error.
func New(config model.ExtractorConfig) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.ProviderID {
	case model.ProviderOpenAI:
		apiKey, err := resolveAPIKey(config.APIKey, "OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewOpenAI(apiKey, config.ModelName, config.BaseURL, config.MaxTokens), nil
	case model.ProviderAnthropic:
		apiKey, err := resolveAPIKey(config.APIKey, "ANTHROPIC_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewAnthropic(apiKey, config.ModelName, config.BaseURL, config.MaxTokens), nil
	default:
		return nil, &model.ConfigurationError{Field: "provider_id", Reason: fmt.Sprintf("unsupported provider %q", config.ProviderID)}
	}
}

// resolveAPIKey prefers the configured key and falls back to the provider's environment variable
func resolveAPIKey(apiKey string, envKey string) (string, error) {
	if strings.TrimSpace(apiKey) != "" {
		return apiKey, nil
	}
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v, nil
	}
	return "", &model.ConfigurationError{
		Field:  "api_key",
		Reason: fmt.Sprintf("API key required: set %s or provide it via config", envKey),
	}
}

func providerError(id model.ProviderID, err error) error {
	return &model.ProviderError{Provider: id, Err: err}
}
