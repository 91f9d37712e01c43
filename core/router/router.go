package router

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/siherrmann/tripler/core/candidate"
	"github.com/siherrmann/tripler/helper"
	"github.com/siherrmann/tripler/model"
)

// DefaultUsageRate is assumed for cost estimates before any extraction was recorded
const DefaultUsageRate = 0.20

// Validator returns triples for a text by asking a language model.
// Failures of the model call are *model.ProviderError.
type Validator interface {
	Extract(ctx context.Context, text string) ([]model.Triple, error)
}

// Router decides per text whether candidate triples are trusted as they are
// or whether the validator is consulted, and merges both results.
type Router struct {
	candidates  candidate.Extractor
	validator   Validator
	threshold   float64
	costPerCall float64
	log         *slog.Logger

	mu    sync.Mutex
	stats model.ExtractionStatistics
}

// NewRouter creates a router with fresh statistics.
// Only the confidence threshold and the cost per call of the configuration are used.
func NewRouter(candidates candidate.Extractor, validator Validator, config model.ExtractorConfig, logger *slog.Logger) (*Router, error) {
	if candidates == nil {
		return nil, &model.ConfigurationError{Field: "candidates", Reason: "candidate extractor is required"}
	}
	if validator == nil {
		return nil, &model.ConfigurationError{Field: "validator", Reason: "validator is required"}
	}
	if math.IsNaN(config.ConfidenceThreshold) || config.ConfidenceThreshold < 0 || config.ConfidenceThreshold > 1 {
		return nil, &model.ConfigurationError{
			Field:  "confidence_threshold",
			Reason: fmt.Sprintf("%v is outside [0,1]", config.ConfidenceThreshold),
		}
	}
	if math.IsNaN(config.CostPerCall) || config.CostPerCall < 0 {
		return nil, &model.ConfigurationError{
			Field:  "cost_per_call",
			Reason: fmt.Sprintf("%v must be a non-negative number", config.CostPerCall),
		}
	}

	return &Router{
		candidates:  candidates,
		validator:   validator,
		threshold:   config.ConfidenceThreshold,
		costPerCall: config.CostPerCall,
		log:         helper.LoggerOrDiscard(logger),
	}, nil
}

// Threshold returns the confidence at which candidates are trusted
func (r *Router) Threshold() float64 {
	return r.threshold
}

// Extract returns the triples of a text.
//
// Without candidates the validator result is returned as is. When every
// candidate reaches the threshold the candidates are returned and the
// validator is not called. Otherwise the validator is called once and its
// triples are merged with the trusted candidates.
//
// A *model.ProviderError of the validator is returned together with the
// trusted candidates, which are empty on the validator-only path.
func (r *Router) Extract(ctx context.Context, text string) ([]model.Triple, error) {
	id := uuid.New()
	r.count(func(s *model.ExtractionStatistics) { s.TotalExtractions++ })

	candidates := r.candidates.Extract(text)

	if len(candidates) == 0 {
		r.count(func(s *model.ExtractionStatistics) { s.LLMValidations++ })
		r.log.Debug("No candidates, validating", "extraction_id", id)

		triples, err := r.validator.Extract(ctx, text)
		if err != nil {
			r.log.Warn("Validator failed", "extraction_id", id, "error", err)
			return []model.Triple{}, err
		}
		if triples == nil {
			triples = []model.Triple{}
		}
		return triples, nil
	}

	high, low := partition(candidates, r.threshold)

	if len(low) == 0 {
		r.count(func(s *model.ExtractionStatistics) { s.RuleBasedOnly++ })
		r.log.Debug("Candidates trusted", "extraction_id", id, "count", len(high))
		return high, nil
	}

	r.count(func(s *model.ExtractionStatistics) { s.HybridDecisions++ })
	r.log.Debug("Validating uncertain candidates", "extraction_id", id, "high", len(high), "low", len(low))

	validated, err := r.validator.Extract(ctx, text)
	if err != nil {
		r.log.Warn("Validator failed, keeping trusted candidates", "extraction_id", id, "high", len(high), "error", err)
		return high, err
	}

	return merge(high, low, validated), nil
}

// Statistics returns a snapshot of the counters with derived percentages
func (r *Router) Statistics() model.StatisticsReport {
	r.mu.Lock()
	stats := r.stats
	r.mu.Unlock()

	return stats.Report()
}

// EstimateCost projects the validator cost of n extractions with the configured cost per call
func (r *Router) EstimateCost(n int) float64 {
	return r.EstimateCostWith(n, r.costPerCall)
}

// EstimateCostWith projects the validator cost of n extractions from the observed usage rate.
// Without recorded extractions a usage rate of 20% is assumed.
func (r *Router) EstimateCostWith(n int, costPerCall float64) float64 {
	rate := DefaultUsageRate
	if usage := r.Statistics().LLMUsagePercentage; usage != nil {
		rate = *usage / 100
	}

	return float64(n) * rate * costPerCall
}

func (r *Router) count(update func(s *model.ExtractionStatistics)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	update(&r.stats)
}

// partition splits candidates at the threshold, keeping their order
func partition(candidates []model.Triple, threshold float64) (high []model.Triple, low []model.Triple) {
	high = []model.Triple{}
	for _, c := range candidates {
		if c.Confidence >= threshold {
			high = append(high, c)
		} else {
			low = append(low, c)
		}
	}
	return high, low
}
