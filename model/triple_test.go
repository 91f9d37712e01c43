package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "Inside the interval", input: 0.42, expected: 0.42},
		{name: "Lower bound", input: 0, expected: 0},
		{name: "Upper bound", input: 1, expected: 1},
		{name: "Negative", input: -0.3, expected: 0},
		{name: "Above one", input: 1.05, expected: 1},
		{name: "NaN", input: math.NaN(), expected: 0},
		{name: "Infinity", input: math.Inf(1), expected: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ClampConfidence(test.input))
		})
	}
}

func TestTriple(t *testing.T) {
	t.Run("NewTriple clamps the confidence", func(t *testing.T) {
		triple := NewTriple("A", RelationCitation, "B", 1.3)
		assert.Equal(t, 1.0, triple.Confidence)
	})

	t.Run("WithConfidence returns a copy", func(t *testing.T) {
		original := NewTriple("A", RelationCitation, "B", 0.5)
		boosted := original.WithConfidence(0.55)

		assert.Equal(t, 0.5, original.Confidence)
		assert.Equal(t, 0.55, boosted.Confidence)
	})

	t.Run("Pair is case folded and directional", func(t *testing.T) {
		a := NewTriple("Alice", RelationAffiliation, "ACME", 0.5)
		b := NewTriple("alice", RelationCollaboration, "acme", 0.9)
		c := NewTriple("Acme", RelationAffiliation, "Alice", 0.5)

		assert.Equal(t, a.Pair(), b.Pair())
		assert.NotEqual(t, a.Pair(), c.Pair())
	})

	t.Run("JSON field names", func(t *testing.T) {
		out, err := json.Marshal(NewTriple("Chen", RelationBuildsOn, "MIT", 0.75))
		require.NoError(t, err)
		assert.JSONEq(t, `{"subject": "Chen", "relation": "builds-on", "object": "MIT", "confidence": 0.75}`, string(out))
	})

	t.Run("String renders the arrow form", func(t *testing.T) {
		assert.Equal(t, "(A) --[citation]--> (B) [0.85]", NewTriple("A", RelationCitation, "B", 0.85).String())
	})
}
