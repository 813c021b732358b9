package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField means the element anchoring a field is absent
	ErrMissingField = errors.New("missing field")
	// ErrMalformedValue means the field is present but cannot be used
	ErrMalformedValue = errors.New("malformed value")
)

// FieldError records which field of an entry failed to resolve
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Field, e.Err, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missing(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, Err: ErrMissingField}
}

func malformed(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, Err: ErrMalformedValue}
}
