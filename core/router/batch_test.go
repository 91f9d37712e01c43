package router

import (
	"context"
	"errors"
	"testing"

	"github.com/siherrmann/tripler/core/candidate"
	"github.com/siherrmann/tripler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textValidator fails for one text and echoes every other one as a triple
type textValidator struct {
	fail string
}

func (v *textValidator) Extract(ctx context.Context, text string) ([]model.Triple, error) {
	if text == v.fail {
		return []model.Triple{}, &model.ProviderError{Provider: model.ProviderOpenAI, Err: errors.New("unavailable")}
	}
	return []model.Triple{{Subject: text, Relation: model.RelationStudies, Object: "Topic", Confidence: 0.8}}, nil
}

func TestRouterExtractBatch(t *testing.T) {
	t.Run("Results keep input order", func(t *testing.T) {
		r := newTestRouter(t, fixed(), &textValidator{})
		texts := []string{"one", "two", "three", "four", "five", "six"}

		results := r.ExtractBatch(context.Background(), texts, 3)

		require.Len(t, results, len(texts))
		for i, result := range results {
			assert.Equal(t, i, result.Index)
			assert.Equal(t, texts[i], result.Text)
			require.NoError(t, result.Err)
			require.Len(t, result.Triples, 1)
			assert.Equal(t, texts[i], result.Triples[0].Subject)
		}
		assert.Equal(t, uint64(len(texts)), r.Statistics().TotalExtractions)
	})

	t.Run("A failing text does not affect the others", func(t *testing.T) {
		r := newTestRouter(t, fixed(), &textValidator{fail: "two"})

		results := r.ExtractBatch(context.Background(), []string{"one", "two", "three"}, 0)

		require.Len(t, results, 3)
		assert.NoError(t, results[0].Err)
		var providerErr *model.ProviderError
		assert.True(t, errors.As(results[1].Err, &providerErr))
		assert.Empty(t, results[1].Triples)
		assert.NoError(t, results[2].Err)
	})

	t.Run("Empty batch returns no results", func(t *testing.T) {
		r := newTestRouter(t, candidate.ExtractFunc(func(string) []model.Triple { return nil }), &textValidator{})

		assert.Empty(t, r.ExtractBatch(context.Background(), nil, 2))
	})
}
