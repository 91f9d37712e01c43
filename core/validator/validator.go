package validator

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/siherrmann/tripler/core/provider"
	"github.com/siherrmann/tripler/core/taxonomy"
	"github.com/siherrmann/tripler/helper"
	"github.com/siherrmann/tripler/model"
)

// Diagnostics counts replies and elements the parser had to discard
type Diagnostics struct {
	ParseFailures   uint64 `json:"parse_failures"`
	DroppedElements uint64 `json:"dropped_elements"`
}

// Extractor asks a language model for the triples of a text
type Extractor struct {
	provider provider.Provider
	taxonomy *taxonomy.Taxonomy
	log      *slog.Logger

	parseFailures   atomic.Uint64
	droppedElements atomic.Uint64
}

// NewExtractor creates a validator on top of a provider.
// A nil taxonomy selects the default academic taxonomy, a nil logger discards output.
func NewExtractor(p provider.Provider, tax *taxonomy.Taxonomy, logger *slog.Logger) (*Extractor, error) {
	if p == nil {
		return nil, &model.ConfigurationError{Field: "provider", Reason: "provider is required"}
	}
	if tax == nil {
		tax = taxonomy.Default()
	}

	return &Extractor{
		provider: p,
		taxonomy: tax,
		log:      helper.LoggerOrDiscard(logger),
	}, nil
}

// Extract sends the text to the provider exactly once and parses the reply.
// An unusable reply is not an error, it results in an empty slice.
// Provider faults are returned as *model.ProviderError.
func (e *Extractor) Extract(ctx context.Context, text string) ([]model.Triple, error) {
	raw, err := e.provider.Complete(ctx, BuildPrompt(text, e.taxonomy))
	if err != nil {
		var providerErr *model.ProviderError
		if !errors.As(err, &providerErr) {
			err = &model.ProviderError{Provider: e.provider.ID(), Err: err}
		}
		return []model.Triple{}, err
	}

	triples, report := Parse(raw, e.taxonomy)
	e.record(report)

	return triples, nil
}

// Diagnostics returns a snapshot of the parser counters
func (e *Extractor) Diagnostics() Diagnostics {
	return Diagnostics{
		ParseFailures:   e.parseFailures.Load(),
		DroppedElements: e.droppedElements.Load(),
	}
}

func (e *Extractor) record(report Report) {
	if report.Err != nil {
		e.parseFailures.Add(1)
		e.log.Warn("Validator reply could not be parsed", "provider", e.provider.ID(), "error", report.Err)
		return
	}

	if len(report.Dropped) > 0 {
		e.droppedElements.Add(uint64(len(report.Dropped)))
		for _, err := range report.Dropped {
			e.log.Debug("Dropped validator element", "provider", e.provider.ID(), "shape", report.Shape.String(), "reason", err)
		}
	}
}
