package router

import (
	"context"

	"github.com/siherrmann/tripler/model"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchWorkers is used when ExtractBatch is called without a worker count
const DefaultBatchWorkers = 4

// BatchResult is the outcome of one text of a batch
type BatchResult struct {
	Index   int            `json:"index"`
	Text    string         `json:"text"`
	Triples []model.Triple `json:"triples"`
	Err     error          `json:"-"`
}

// ExtractBatch runs Extract for every text with at most workers concurrent extractions.
// Results are in input order. A failing text does not stop the others.
func (r *Router) ExtractBatch(ctx context.Context, texts []string, workers int) []BatchResult {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	results := make([]BatchResult, len(texts))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, text := range texts {
		g.Go(func() error {
			triples, err := r.Extract(ctx, text)
			results[i] = BatchResult{Index: i, Text: text, Triples: triples, Err: err}
			return nil
		})
	}
	// Extraction errors are kept per result, the group never fails.
	_ = g.Wait()

	return results
}
