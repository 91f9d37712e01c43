package helper

import "fmt"

// Error adds a short trace of the failing step to an original error
type Error struct {
	Original error
	Trace    string
}

// NewError wraps err with the step it occurred in
func NewError(trace string, err error) error {
	return &Error{
		Original: err,
		Trace:    trace,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Trace, e.Original)
}

func (e *Error) Unwrap() error {
	return e.Original
}
