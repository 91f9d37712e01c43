package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/siherrmann/tripler/core/taxonomy"
	"github.com/siherrmann/tripler/model"
)

// DefaultConfidence is assigned to reply elements without a confidence
const DefaultConfidence = 0.8

// wrapperKey holds the relationship array of a wrapper reply
const wrapperKey = "relationships"

// Report describes how a validator reply was interpreted
type Report struct {
	Shape model.ResponseShape
	// Err is set when the reply could not be classified, the result is empty then
	Err *model.ParseError
	// Dropped collects the reason for every element that was skipped
	Dropped []error
}

// Parse converts a raw validator reply into triples.
// The reply must be a JSON array of relationship objects or an object with a
// "relationships" array. Any other reply yields no triples and a ParseError in
// the report. Single elements with an unknown relation or missing fields are
// dropped without affecting the rest of the reply.
func Parse(raw string, tax *taxonomy.Taxonomy) ([]model.Triple, Report) {
	report := Report{Shape: model.ShapeInvalid}

	shape, elements, parseErr := classify(raw)
	if parseErr != nil {
		report.Err = parseErr
		return []model.Triple{}, report
	}
	report.Shape = shape

	triples := make([]model.Triple, 0, len(elements))
	for i, element := range elements {
		triple, err := parseElement(i, element, tax)
		if err != nil {
			report.Dropped = append(report.Dropped, err)
			continue
		}
		triples = append(triples, triple)
	}

	return triples, report
}

// classify decides the structural shape of the reply and returns its elements
func classify(raw string) (model.ResponseShape, []json.RawMessage, *model.ParseError) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return model.ShapeInvalid, nil, &model.ParseError{Reason: "empty reply"}
	}

	switch trimmed[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return model.ShapeInvalid, nil, &model.ParseError{Reason: "malformed JSON array", Err: err}
		}
		return model.ShapeSequence, elements, nil
	case '{':
		var object map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &object); err != nil {
			return model.ShapeInvalid, nil, &model.ParseError{Reason: "malformed JSON object", Err: err}
		}
		value, ok := object[wrapperKey]
		if !ok {
			return model.ShapeInvalid, nil, &model.ParseError{Reason: fmt.Sprintf("object without %q key", wrapperKey)}
		}
		value = bytes.TrimSpace(value)
		if len(value) == 0 || value[0] != '[' {
			return model.ShapeInvalid, nil, &model.ParseError{Reason: fmt.Sprintf("%q is not an array", wrapperKey)}
		}
		var elements []json.RawMessage
		if err := json.Unmarshal(value, &elements); err != nil {
			return model.ShapeInvalid, nil, &model.ParseError{Reason: fmt.Sprintf("malformed %q array", wrapperKey), Err: err}
		}
		return model.ShapeWrapper, elements, nil
	default:
		return model.ShapeInvalid, nil, &model.ParseError{Reason: "reply is neither a JSON array nor a JSON object"}
	}
}

func parseElement(index int, element json.RawMessage, tax *taxonomy.Taxonomy) (model.Triple, error) {
	trimmed := bytes.TrimSpace(element)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return model.Triple{}, &model.MalformedElementError{Index: index, Reason: "element is not an object"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return model.Triple{}, &model.MalformedElementError{Index: index, Reason: err.Error()}
	}

	subject, err := requiredString(index, fields, "subject")
	if err != nil {
		return model.Triple{}, err
	}
	relation, err := requiredString(index, fields, "relation")
	if err != nil {
		return model.Triple{}, err
	}
	object, err := requiredString(index, fields, "object")
	if err != nil {
		return model.Triple{}, err
	}

	confidence := DefaultConfidence
	if value, ok := fields["confidence"]; ok && !isNull(value) {
		if err := json.Unmarshal(value, &confidence); err != nil {
			return model.Triple{}, &model.MalformedElementError{Index: index, Reason: "confidence is not a number"}
		}
	}

	tag := model.RelationType(relation)
	if !tax.Validate(tag) {
		return model.Triple{}, &model.UnknownRelationError{Index: index, Relation: relation}
	}

	return model.NewTriple(subject, tag, object, confidence), nil
}

func requiredString(index int, fields map[string]json.RawMessage, key string) (string, error) {
	value, ok := fields[key]
	if !ok || isNull(value) {
		return "", &model.MalformedElementError{Index: index, Reason: fmt.Sprintf("missing %s", key)}
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", &model.MalformedElementError{Index: index, Reason: fmt.Sprintf("%s is not a string", key)}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &model.MalformedElementError{Index: index, Reason: fmt.Sprintf("empty %s", key)}
	}

	return s, nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
