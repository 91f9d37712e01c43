package model

// ExtractionStatistics holds the lifetime counters of one router
type ExtractionStatistics struct {
	TotalExtractions uint64 `json:"total_extractions"`
	RuleBasedOnly    uint64 `json:"rule_based_only"`
	LLMValidations   uint64 `json:"llm_validations"`
	HybridDecisions  uint64 `json:"hybrid_decisions"`
}

// StatisticsReport is the result of a statistics query.
// The percentages are only set once at least one extraction was recorded.
type StatisticsReport struct {
	ExtractionStatistics
	RuleBasedPercentage *float64 `json:"rule_based_percentage,omitempty"`
	LLMUsagePercentage  *float64 `json:"llm_usage_percentage,omitempty"`
}

// Report derives the percentages from the raw counters
func (s ExtractionStatistics) Report() StatisticsReport {
	report := StatisticsReport{ExtractionStatistics: s}
	if s.TotalExtractions == 0 {
		return report
	}

	total := float64(s.TotalExtractions)
	ruleBased := float64(s.RuleBasedOnly) / total * 100
	llmUsage := float64(s.LLMValidations+s.HybridDecisions) / total * 100
	report.RuleBasedPercentage = &ruleBased
	report.LLMUsagePercentage = &llmUsage

	return report
}
