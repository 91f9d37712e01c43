package helper

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/siherrmann/tripler/model"
)

// Environment variables read by NewExtractorConfiguration
const (
	EnvConfidenceThreshold = "TRIPLER_CONFIDENCE_THRESHOLD"
	EnvProviderID          = "TRIPLER_PROVIDER_ID"
	EnvModelName           = "TRIPLER_MODEL_NAME"
	EnvAPIKey              = "TRIPLER_API_KEY"
	EnvBaseURL             = "TRIPLER_BASE_URL"
	EnvMaxTokens           = "TRIPLER_MAX_TOKENS"
	EnvCostPerCall         = "TRIPLER_COST_PER_CALL"
)

// NewExtractorConfiguration builds an extractor configuration from the environment.
// A .env file in the working directory is loaded first if present; variables that
// are already set take precedence over it. Unset variables keep their defaults.
func NewExtractorConfiguration() (*model.ExtractorConfig, error) {
	if err := LoadEnvFile(); err != nil {
		return nil, err
	}

	config := model.DefaultExtractorConfig()

	if v, ok := lookupEnv(EnvConfidenceThreshold); ok {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &model.ConfigurationError{Field: "confidence_threshold", Reason: err.Error()}
		}
		config.ConfidenceThreshold = threshold
	}

	if v, ok := lookupEnv(EnvProviderID); ok {
		config.ProviderID = model.ProviderID(v)
		// The default model belongs to the default provider
		if _, set := lookupEnv(EnvModelName); !set {
			config.ModelName = ""
		}
	}

	if v, ok := lookupEnv(EnvModelName); ok {
		config.ModelName = v
	}

	if v, ok := lookupEnv(EnvAPIKey); ok {
		config.APIKey = v
	}

	if v, ok := lookupEnv(EnvBaseURL); ok {
		config.BaseURL = v
	}

	if v, ok := lookupEnv(EnvMaxTokens); ok {
		maxTokens, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &model.ConfigurationError{Field: "max_tokens", Reason: err.Error()}
		}
		config.MaxTokens = maxTokens
	}

	if v, ok := lookupEnv(EnvCostPerCall); ok {
		cost, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &model.ConfigurationError{Field: "cost_per_call", Reason: err.Error()}
		}
		config.CostPerCall = cost
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadEnvFile loads .env from the working directory without overriding set variables.
// A missing file is not an error.
func LoadEnvFile() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewError("load .env", err)
	}
	return nil
}

// SetTestExtractorConfigEnvs sets the configuration environment for a test
func SetTestExtractorConfigEnvs(t *testing.T, providerID model.ProviderID, baseURL string) {
	t.Setenv(EnvProviderID, string(providerID))
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvBaseURL, baseURL)
	t.Setenv(EnvConfidenceThreshold, "0.85")
	t.Setenv(EnvCostPerCall, "0.0035")
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
