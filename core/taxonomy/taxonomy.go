package taxonomy

import (
	"fmt"
	"strings"

	"github.com/siherrmann/tripler/model"
)

// Definition describes one relation tag of the taxonomy
type Definition struct {
	Tag             model.RelationType
	Description     string
	Examples        []string
	TypicalPatterns []string
	Inverse         model.RelationType // Empty if the relation has no named inverse
}

// Taxonomy is a closed, read-only vocabulary of relation tags.
// It is safe for concurrent use since it is never mutated after construction.
type Taxonomy struct {
	definitions []Definition
	index       map[model.RelationType]int
}

// New builds a taxonomy from definitions in the given order.
// Tags must be unique, non-empty and must not be the "none" sentinel.
func New(definitions ...Definition) (*Taxonomy, error) {
	t := &Taxonomy{
		definitions: make([]Definition, 0, len(definitions)),
		index:       make(map[model.RelationType]int, len(definitions)),
	}

	for _, d := range definitions {
		tag := model.RelationType(strings.TrimSpace(string(d.Tag)))
		if tag == "" {
			return nil, fmt.Errorf("relation tag must not be empty")
		}
		if tag == model.RelationNone {
			return nil, fmt.Errorf("relation tag %q is reserved", tag)
		}
		if _, exists := t.index[tag]; exists {
			return nil, fmt.Errorf("duplicate relation tag %q", tag)
		}

		d.Tag = tag
		d.Examples = append([]string(nil), d.Examples...)
		d.TypicalPatterns = append([]string(nil), d.TypicalPatterns...)
		t.index[tag] = len(t.definitions)
		t.definitions = append(t.definitions, d)
	}

	if len(t.definitions) == 0 {
		return nil, fmt.Errorf("taxonomy needs at least one relation tag")
	}

	return t, nil
}

// Validate reports whether tag is a permitted relation. The "none" sentinel is never permitted.
func (t *Taxonomy) Validate(tag model.RelationType) bool {
	_, ok := t.index[tag]
	return ok
}

// AllTags returns the permitted tags in declaration order
func (t *Taxonomy) AllTags() []model.RelationType {
	tags := make([]model.RelationType, len(t.definitions))
	for i, d := range t.definitions {
		tags[i] = d.Tag
	}
	return tags
}

// InverseOf returns the inverse tag of a relation, if it has one
func (t *Taxonomy) InverseOf(tag model.RelationType) (model.RelationType, bool) {
	i, ok := t.index[tag]
	if !ok || t.definitions[i].Inverse == "" {
		return "", false
	}
	return t.definitions[i].Inverse, true
}

// Definition returns a copy of the definition of tag
func (t *Taxonomy) Definition(tag model.RelationType) (Definition, bool) {
	i, ok := t.index[tag]
	if !ok {
		return Definition{}, false
	}
	return copyDefinition(t.definitions[i]), true
}

// Definitions returns copies of all definitions in declaration order
func (t *Taxonomy) Definitions() []Definition {
	definitions := make([]Definition, len(t.definitions))
	for i, d := range t.definitions {
		definitions[i] = copyDefinition(d)
	}
	return definitions
}

func copyDefinition(d Definition) Definition {
	d.Examples = append([]string(nil), d.Examples...)
	d.TypicalPatterns = append([]string(nil), d.TypicalPatterns...)
	return d
}
