package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionStatisticsReport(t *testing.T) {
	t.Run("No percentages without extractions", func(t *testing.T) {
		report := ExtractionStatistics{}.Report()

		assert.Nil(t, report.RuleBasedPercentage)
		assert.Nil(t, report.LLMUsagePercentage)

		out, err := json.Marshal(report)
		require.NoError(t, err)
		assert.JSONEq(t, `{"total_extractions": 0, "rule_based_only": 0, "llm_validations": 0, "hybrid_decisions": 0}`, string(out))
	})

	t.Run("Percentages are derived from the counters", func(t *testing.T) {
		report := ExtractionStatistics{TotalExtractions: 10, RuleBasedOnly: 7, LLMValidations: 1, HybridDecisions: 2}.Report()

		require.NotNil(t, report.RuleBasedPercentage)
		require.NotNil(t, report.LLMUsagePercentage)
		assert.InDelta(t, 70.0, *report.RuleBasedPercentage, 1e-9)
		assert.InDelta(t, 30.0, *report.LLMUsagePercentage, 1e-9)
		assert.Equal(t, uint64(10), report.TotalExtractions)
	})
}
