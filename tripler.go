package tripler

import (
	"context"
	"log/slog"
	"os"

	"github.com/siherrmann/tripler/core/candidate"
	"github.com/siherrmann/tripler/core/provider"
	"github.com/siherrmann/tripler/core/router"
	"github.com/siherrmann/tripler/core/taxonomy"
	"github.com/siherrmann/tripler/core/validator"
	"github.com/siherrmann/tripler/helper"
	"github.com/siherrmann/tripler/model"
)

// Tripler provides a unified interface to the hybrid extraction engine
type Tripler struct {
	Config     model.ExtractorConfig
	Taxonomy   *taxonomy.Taxonomy
	Candidates candidate.Extractor
	Provider   provider.Provider
	Validator  *validator.Extractor
	Router     *router.Router
	// Logging
	log *slog.Logger
}

// NewTripler creates a new Tripler instance with all components initialized.
// A nil config uses the default configuration, nil candidates use the pattern extractor.
func NewTripler(config *model.ExtractorConfig, candidates candidate.Extractor) (*Tripler, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	return NewTriplerWithLogger(config, candidates, logger)
}

// NewTriplerWithLogger is NewTripler with a caller provided logger
func NewTriplerWithLogger(config *model.ExtractorConfig, candidates candidate.Extractor, logger *slog.Logger) (*Tripler, error) {
	logger = helper.LoggerOrDiscard(logger)

	c := model.DefaultExtractorConfig()
	if config != nil {
		c = *config
	}
	if err := c.Validate(); err != nil {
		return nil, helper.NewError("validate configuration", err)
	}

	if candidates == nil {
		candidates = candidate.NewPatternExtractor(candidate.WithLogger(logger))
	}

	tax := taxonomy.Default()

	p, err := provider.New(c)
	if err != nil {
		return nil, helper.NewError("create provider", err)
	}

	v, err := validator.NewExtractor(p, tax, logger)
	if err != nil {
		return nil, helper.NewError("create validator", err)
	}

	r, err := router.NewRouter(candidates, v, c, logger)
	if err != nil {
		return nil, helper.NewError("create router", err)
	}

	logger.Debug("Created tripler", slog.String("provider", string(c.ProviderID)), slog.String("model", c.ModelName), slog.Float64("threshold", c.ConfidenceThreshold))

	return &Tripler{
		Config:     c,
		Taxonomy:   tax,
		Candidates: candidates,
		Provider:   p,
		Validator:  v,
		Router:     r,
		log:        logger,
	}, nil
}

// UseDefaultEntityRecognizer replaces the candidate extractor with a pattern
// extractor boosted by the default NER model
func (t *Tripler) UseDefaultEntityRecognizer() error {
	recognizer, err := candidate.DefaultEntityRecognizer()
	if err != nil {
		return helper.NewError("create default entity recognizer", err)
	}

	candidates := candidate.NewPatternExtractor(
		candidate.WithEntityRecognizer(recognizer),
		candidate.WithLogger(t.log),
	)
	r, err := router.NewRouter(candidates, t.Validator, t.Config, t.log)
	if err != nil {
		return helper.NewError("create router", err)
	}

	t.Candidates = candidates
	t.Router = r
	return nil
}

// Extract returns the triples of a text
func (t *Tripler) Extract(ctx context.Context, text string) ([]model.Triple, error) {
	return t.Router.Extract(ctx, text)
}

// ExtractBatch extracts the triples of every text with at most workers concurrent extractions
func (t *Tripler) ExtractBatch(ctx context.Context, texts []string, workers int) []router.BatchResult {
	return t.Router.ExtractBatch(ctx, texts, workers)
}

// Statistics returns the usage statistics of the router
func (t *Tripler) Statistics() model.StatisticsReport {
	return t.Router.Statistics()
}

// EstimateCost projects the validator cost of n extractions
func (t *Tripler) EstimateCost(n int) float64 {
	return t.Router.EstimateCost(n)
}

// Diagnostics returns the parser counters of the validator
func (t *Tripler) Diagnostics() validator.Diagnostics {
	return t.Validator.Diagnostics()
}

// Prompt returns the validator prompt for a text
func (t *Tripler) Prompt(text string) string {
	return validator.BuildPrompt(text, t.Taxonomy)
}
