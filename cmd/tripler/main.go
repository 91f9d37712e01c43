package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/siherrmann/tripler/helper"
	"github.com/siherrmann/tripler/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys, TRIPLER_<KEY> in the environment
const (
	keyThreshold   = "confidence-threshold"
	keyProvider    = "provider-id"
	keyModel       = "model-name"
	keyAPIKey      = "api-key"
	keyBaseURL     = "base-url"
	keyMaxTokens   = "max-tokens"
	keyCostPerCall = "cost-per-call"
	keyDebug       = "debug"
)

var (
	v      = viper.New()
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tripler",
	Short: "Extract relationship triples from text",
	Long: `tripler extracts subject-relation-object triples from academic text.

Surface patterns propose candidates. Candidates below the confidence
threshold are checked by a language model and merged with its answer.

Configuration precedence: flags > TRIPLER_* environment > config file > defaults.
A .env file in the working directory is loaded into the environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (yaml, json or toml)")
	flags.String("provider", string(model.ProviderOpenAI), "Validator provider (openai, anthropic)")
	flags.String("model", "", "Validator model (default depends on the provider)")
	flags.String("base-url", "", "Override the provider endpoint")
	flags.Float64("threshold", model.DefaultConfidenceThreshold, "Confidence at which candidates are trusted without validation")
	flags.Float64("cost-per-call", model.DefaultCostPerCall, "Cost of one validator call in USD")
	flags.Int64("max-tokens", model.DefaultMaxTokens, "Maximum tokens of a validator reply")
	flags.Bool("debug", false, "Enable debug logging")

	_ = v.BindPFlag(keyProvider, flags.Lookup("provider"))
	_ = v.BindPFlag(keyModel, flags.Lookup("model"))
	_ = v.BindPFlag(keyBaseURL, flags.Lookup("base-url"))
	_ = v.BindPFlag(keyThreshold, flags.Lookup("threshold"))
	_ = v.BindPFlag(keyCostPerCall, flags.Lookup("cost-per-call"))
	_ = v.BindPFlag(keyMaxTokens, flags.Lookup("max-tokens"))
	_ = v.BindPFlag(keyDebug, flags.Lookup("debug"))

	rootCmd.AddCommand(extractCmd, taxonomyCmd, promptCmd)
}

func initConfig(cmd *cobra.Command) error {
	if err := helper.LoadEnvFile(); err != nil {
		return err
	}

	v.SetEnvPrefix("TRIPLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keyAPIKey, helper.EnvAPIKey)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return helper.NewError("read config file", err)
		}
	}

	level := slog.LevelInfo
	if v.GetBool(keyDebug) {
		level = slog.LevelDebug
	}
	logger = slog.New(helper.NewPrettyHandler(os.Stderr, helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: level},
	}))

	return nil
}

// extractorConfig builds the validated extractor configuration from viper
func extractorConfig() (*model.ExtractorConfig, error) {
	config := model.ExtractorConfig{
		ConfidenceThreshold: v.GetFloat64(keyThreshold),
		ProviderID:          model.ProviderID(v.GetString(keyProvider)),
		ModelName:           v.GetString(keyModel),
		APIKey:              v.GetString(keyAPIKey),
		BaseURL:             v.GetString(keyBaseURL),
		MaxTokens:           v.GetInt64(keyMaxTokens),
		CostPerCall:         v.GetFloat64(keyCostPerCall),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
