package model

import (
	"fmt"
	"strings"
)

// Triple is a subject-relation-object statement with a confidence in [0,1].
// Triples are plain values; every extraction returns a fresh slice owned by the caller.
type Triple struct {
	Subject    string       `json:"subject"`
	Relation   RelationType `json:"relation"`
	Object     string       `json:"object"`
	Confidence float64      `json:"confidence"`
}

// NewTriple creates a triple with the confidence clamped to [0,1]
func NewTriple(subject string, relation RelationType, object string, confidence float64) Triple {
	return Triple{
		Subject:    subject,
		Relation:   relation,
		Object:     object,
		Confidence: ClampConfidence(confidence),
	}
}

// Pair is the case-folded, ordered (subject, object) key of the triple
func (t Triple) Pair() EntityPair {
	return EntityPair{
		Subject: strings.ToLower(t.Subject),
		Object:  strings.ToLower(t.Object),
	}
}

// WithConfidence returns a copy of the triple with a new (clamped) confidence
func (t Triple) WithConfidence(confidence float64) Triple {
	t.Confidence = ClampConfidence(confidence)
	return t
}

// String renders the triple as (subject) --[relation]--> (object) [0.00]
func (t Triple) String() string {
	return fmt.Sprintf("(%s) --[%s]--> (%s) [%.2f]", t.Subject, t.Relation, t.Object, t.Confidence)
}

// EntityPair is a directional pair of case-folded entity names.
// (a, b) and (b, a) are different pairs.
type EntityPair struct {
	Subject string
	Object  string
}

// ClampConfidence limits a confidence value to [0,1]. NaN becomes 0.
func ClampConfidence(confidence float64) float64 {
	if confidence != confidence || confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
