package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/tripler"
	"github.com/siherrmann/tripler/helper"
)

var sampleTexts = []string{
	// Explicit statement, handled by the patterns alone
	"Alice Johnson works at Smith Institute.",
	// Uncertain candidate, checked by the validator
	"Neural Graph Networks builds upon Knowledge Graph Embeddings.",
	// Implicit statement the patterns miss
	"Johnson's pioneering work on embeddings influenced modern approaches.",
	"Johnson et al. (2023) cite Smith et al. (2022) on graph attention.",
	// Negation
	"The institute is NOT affiliated with any university.",
}

func main() {
	// Reads TRIPLER_* variables and an optional .env file
	config, err := helper.NewExtractorConfiguration()
	if err != nil {
		log.Fatalf("Failed to create configuration: %v", err)
	}

	t, err := tripler.NewTripler(config, nil)
	if err != nil {
		log.Fatalf("Failed to create tripler: %v", err)
	}

	fmt.Printf("Provider: %s (%s)\n", t.Config.ProviderID, t.Config.ModelName)
	fmt.Printf("Confidence threshold: %.2f\n\n", t.Config.ConfidenceThreshold)

	for i, text := range sampleTexts {
		fmt.Printf("%d. Text: %s\n", i+1, text)

		triples, err := t.Extract(context.Background(), text)
		if err != nil {
			fmt.Printf("   Error: %v\n", err)
		}
		if len(triples) == 0 {
			fmt.Println("   No relationships detected")
		}
		for _, triple := range triples {
			fmt.Printf("   %s\n", triple)
		}
		fmt.Println()
	}

	report := t.Statistics()
	fmt.Println("Extraction statistics:")
	fmt.Printf("  total: %d, rule based only: %d, llm validations: %d, hybrid decisions: %d\n",
		report.TotalExtractions, report.RuleBasedOnly, report.LLMValidations, report.HybridDecisions)
	if report.LLMUsagePercentage != nil {
		fmt.Printf("  rule based: %.1f%%, llm usage: %.1f%%\n", *report.RuleBasedPercentage, *report.LLMUsagePercentage)
	}

	fmt.Printf("\nEstimated cost for 100 extractions: $%.2f\n", t.EstimateCost(100))
	fmt.Printf("Estimated cost for 1000 extractions: $%.2f\n", t.EstimateCost(1000))
}
