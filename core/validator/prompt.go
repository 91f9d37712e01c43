package validator

import (
	"encoding/json"
	"strings"
	"text/template"

	"github.com/siherrmann/tripler/core/taxonomy"
	"github.com/siherrmann/tripler/model"
)

// exemplar is one few-shot example of the validator prompt
type exemplar struct {
	Label         string
	Text          string
	Relationships []model.Triple
}

// exemplars are rendered in this order. The last one teaches that negated
// statements produce no relationships.
var exemplars = []exemplar{
	{
		Text: "Alice Johnson, a senior researcher at Smith Institute, published her paper.",
		Relationships: []model.Triple{
			{Subject: "Alice Johnson", Relation: model.RelationAffiliation, Object: "Smith Institute", Confidence: 0.95},
		},
	},
	{
		Text: "Johnson et al. (2023) cite the foundational work of Smith et al. (2022).",
		Relationships: []model.Triple{
			{Subject: "Johnson et al. 2023", Relation: model.RelationCitation, Object: "Smith et al. 2022", Confidence: 0.96},
		},
	},
	{
		Text: "Neural Graph Networks builds upon Knowledge Graph Embeddings.",
		Relationships: []model.Triple{
			{Subject: "Neural Graph Networks", Relation: model.RelationBuildsOn, Object: "Knowledge Graph Embeddings", Confidence: 0.87},
		},
	},
	{
		Label:         "negation",
		Text:          "The project is NOT affiliated with any university.",
		Relationships: []model.Triple{},
	},
}

const promptTemplate = `You are an expert at extracting relationships from academic text for knowledge graph construction.

TASK: Extract all relationships between entities in the provided text.

RELATIONSHIP TYPES (use exactly these):
{{ toJSON .Tags }}

Relationship Definitions:
{{- range .Definitions }}
- {{ .Tag }}: {{ .Description }}
{{- end }}

INSTRUCTIONS:
1. Identify all entity pairs with relationships
2. Classify each relationship using ONLY the types above
3. Assign confidence score (0.0-1.0) based on:
   - Explicitness of relationship (explicit = higher confidence)
   - Linguistic clarity (clear markers = higher confidence)
   - Potential ambiguity (ambiguous = lower confidence)
4. If negation is present (not, no, never), do NOT extract that relationship
5. Return ONLY valid JSON, no additional text

FEW-SHOT EXAMPLES:
{{ range $i, $e := .Exemplars }}
Example {{ inc $i }}{{ if $e.Label }} ({{ $e.Label }}){{ end }}:
Text: "{{ $e.Text }}"
Output:
{{ toJSON $e.Relationships }}
{{ end }}
NOW EXTRACT FROM THIS TEXT:

Text: "{{ .Text }}"

Output JSON (relationships array only):`

var prompt = template.Must(template.New("validator").Funcs(template.FuncMap{
	"toJSON": toJSON,
	"inc":    func(i int) int { return i + 1 },
}).Parse(promptTemplate))

type promptData struct {
	Tags        []model.RelationType
	Definitions []taxonomy.Definition
	Exemplars   []exemplar
	Text        string
}

// BuildPrompt renders the validator prompt for a text.
// The result only depends on its arguments.
func BuildPrompt(text string, tax *taxonomy.Taxonomy) string {
	data := promptData{
		Tags:        tax.AllTags(),
		Definitions: tax.Definitions(),
		Exemplars:   exemplars,
		Text:        text,
	}

	var b strings.Builder
	// The template only fails on writer errors, strings.Builder never returns one.
	_ = prompt.Execute(&b, data)
	return b.String()
}

func toJSON(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(out)
}
