package candidate

import "github.com/siherrmann/tripler/model"

// Extractor produces candidate triples with self-assessed confidence.
// Implementations are synchronous, do no network I/O, have no side effects
// and may return an empty slice.
type Extractor interface {
	Extract(text string) []model.Triple
}

// ExtractFunc adapts a plain function to the Extractor interface
type ExtractFunc func(text string) []model.Triple

// Extract calls f(text)
func (f ExtractFunc) Extract(text string) []model.Triple {
	return f(text)
}

// EntityRecognizeFunc returns the surface names of named entities found in text
type EntityRecognizeFunc func(text string) ([]string, error)
