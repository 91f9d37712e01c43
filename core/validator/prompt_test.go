package validator

import (
	"strings"
	"testing"

	"github.com/siherrmann/tripler/core/taxonomy"
	"github.com/siherrmann/tripler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	tax := taxonomy.Default()
	text := "Chen is affiliated with MIT CSAIL."

	t.Run("Prompt is deterministic", func(t *testing.T) {
		assert.Equal(t, BuildPrompt(text, tax), BuildPrompt(text, tax))
	})

	t.Run("Prompt lists every tag with its definition", func(t *testing.T) {
		p := BuildPrompt(text, tax)

		assert.Contains(t, p, `"builds-on"`)
		assert.NotContains(t, p, `"none"`)
		for _, d := range tax.Definitions() {
			assert.Contains(t, p, "- "+string(d.Tag)+": "+d.Description)
		}
	})

	t.Run("Exemplars appear in order with a single negation exemplar", func(t *testing.T) {
		p := BuildPrompt(text, tax)

		last := -1
		for _, e := range exemplars {
			idx := strings.Index(p, e.Text)
			require.GreaterOrEqual(t, idx, 0, "Expected exemplar %q in prompt", e.Text)
			assert.Greater(t, idx, last, "Expected exemplars in declaration order")
			last = idx
		}

		assert.Equal(t, 1, strings.Count(p, "(negation):"))
		assert.Contains(t, p, "Example 4 (negation):\nText: \"The project is NOT affiliated with any university.\"\nOutput:\n[]")
	})

	t.Run("Input text comes last", func(t *testing.T) {
		p := BuildPrompt(text, tax)

		assert.Greater(t, strings.LastIndex(p, text), strings.Index(p, "FEW-SHOT EXAMPLES"))
		assert.True(t, strings.HasSuffix(p, "Output JSON (relationships array only):"))
		assert.Contains(t, p, "Return ONLY valid JSON")
	})

	t.Run("Custom taxonomy restricts the listed tags", func(t *testing.T) {
		custom, err := taxonomy.New(taxonomy.Definition{Tag: model.RelationFunding, Description: "Organization funded research"})
		require.NoError(t, err)

		p := BuildPrompt(text, custom)
		assert.Contains(t, p, "- funding: Organization funded research")
		assert.NotContains(t, p, "- authorship:")
	})
}
