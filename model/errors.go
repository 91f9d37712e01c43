package model

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError via errors.Is
var ErrConfiguration = errors.New("invalid configuration")

// ConfigurationError is returned when an extractor cannot be built from its configuration
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

// Is reports ErrConfiguration as a match
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ProviderError wraps a network or model fault of the language model call.
// Cancellations and deadlines of the call are reported as ProviderError too.
type ProviderError struct {
	Provider ProviderID
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ResponseShape is the structural classification of a validator reply
type ResponseShape int

const (
	ShapeInvalid ResponseShape = iota
	ShapeSequence
	ShapeWrapper
)

func (s ResponseShape) String() string {
	switch s {
	case ShapeSequence:
		return "sequence"
	case ShapeWrapper:
		return "wrapper"
	default:
		return "invalid"
	}
}

// ParseError describes a validator reply that is neither a bare sequence nor a wrapper object
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unparseable validator reply: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unparseable validator reply: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownRelationError is recorded when a reply element names a relation outside the taxonomy
type UnknownRelationError struct {
	Index    int
	Relation string
}

func (e *UnknownRelationError) Error() string {
	return fmt.Sprintf("element %d: relation %q is not in the taxonomy", e.Index, e.Relation)
}

// MalformedElementError is recorded when a reply element lacks a required field
type MalformedElementError struct {
	Index  int
	Reason string
}

func (e *MalformedElementError) Error() string {
	return fmt.Sprintf("element %d: %s", e.Index, e.Reason)
}
