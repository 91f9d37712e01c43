package model

import (
	"fmt"
	"math"
	"strings"
)

// ProviderID names one of the supported language model backends
type ProviderID string

const (
	ProviderOpenAI    ProviderID = "openai"
	ProviderAnthropic ProviderID = "anthropic"
)

// ParseProviderID maps a configured name onto a supported backend
func ParseProviderID(name string) (ProviderID, error) {
	switch ProviderID(strings.ToLower(strings.TrimSpace(name))) {
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	default:
		return "", &ConfigurationError{
			Field:  "provider_id",
			Reason: fmt.Sprintf("unsupported provider %q (expected %q or %q)", name, ProviderOpenAI, ProviderAnthropic),
		}
	}
}

// DefaultModelName returns the model used when none is configured
func (p ProviderID) DefaultModelName() string {
	switch p {
	case ProviderAnthropic:
		return "claude-3-opus-20240229"
	default:
		return "gpt-4-turbo"
	}
}

const (
	DefaultConfidenceThreshold = 0.85
	DefaultCostPerCall         = 0.0035
	DefaultMaxTokens           = 1024
)

// ExtractorConfig represents the configuration of a hybrid extractor
type ExtractorConfig struct {
	// Candidates at or above this confidence are trusted without validation
	ConfidenceThreshold float64 `json:"confidence_threshold"`

	// Validator backend
	ProviderID ProviderID `json:"provider_id"`
	ModelName  string     `json:"model_name"`
	APIKey     string     `json:"-"`
	BaseURL    string     `json:"base_url,omitempty"` // Overrides the provider endpoint
	MaxTokens  int64      `json:"max_tokens,omitempty"`

	// Cost estimation only
	CostPerCall float64 `json:"cost_per_call"`
}

// DefaultExtractorConfig returns the default configuration
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		ProviderID:          ProviderOpenAI,
		ModelName:           ProviderOpenAI.DefaultModelName(),
		MaxTokens:           DefaultMaxTokens,
		CostPerCall:         DefaultCostPerCall,
	}
}

// Validate checks the configuration and normalizes the provider id.
// Missing model name and max tokens are filled with the provider defaults.
func (c *ExtractorConfig) Validate() error {
	if math.IsNaN(c.ConfidenceThreshold) || c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return &ConfigurationError{
			Field:  "confidence_threshold",
			Reason: fmt.Sprintf("%v is outside [0,1]", c.ConfidenceThreshold),
		}
	}

	providerID, err := ParseProviderID(string(c.ProviderID))
	if err != nil {
		return err
	}
	c.ProviderID = providerID

	if math.IsNaN(c.CostPerCall) || c.CostPerCall < 0 {
		return &ConfigurationError{
			Field:  "cost_per_call",
			Reason: fmt.Sprintf("%v must be a non-negative number", c.CostPerCall),
		}
	}

	if c.MaxTokens < 0 {
		return &ConfigurationError{
			Field:  "max_tokens",
			Reason: fmt.Sprintf("%d must not be negative", c.MaxTokens),
		}
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}

	if strings.TrimSpace(c.ModelName) == "" {
		c.ModelName = c.ProviderID.DefaultModelName()
	}

	return nil
}
