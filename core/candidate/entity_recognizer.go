package candidate

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/siherrmann/tripler/helper"
)

// DefaultNERModel is the token classification model used by DefaultEntityRecognizer
const DefaultNERModel = "KnightsAnalytics/distilbert-NER"

// recognizedTypes are the NER labels that name a subject or object of a relation
var recognizedTypes = map[string]bool{
	"PER":  true,
	"ORG":  true,
	"LOC":  true,
	"MISC": true,
}

// DefaultEntityRecognizer creates an entity recognizer using a NER model.
// The model is downloaded on first use.
func DefaultEntityRecognizer() (EntityRecognizeFunc, error) {
	modelPath, err := helper.PrepareModel(DefaultNERModel, "model.onnx")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "candidate-ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	return func(text string) ([]string, error) {
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}

		result, err := nerPipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to run NER: %w", err)
		}
		if len(result.Entities) == 0 {
			return nil, nil
		}

		var names []string
		for _, entity := range result.Entities[0] {
			if !recognizedTypes[normalizeEntityType(entity.Entity)] {
				continue
			}
			if name := strings.TrimSpace(entity.Word); name != "" {
				names = append(names, name)
			}
		}

		return names, nil
	}, nil
}

// normalizeEntityType removes B- and I- prefixes from NER labels
func normalizeEntityType(label string) string {
	return strings.TrimPrefix(strings.TrimPrefix(label, "B-"), "I-")
}
