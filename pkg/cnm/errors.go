package cnm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind names the way a field lookup failed
type Kind int

const (
	// MissingField means the field is absent
	MissingField Kind = iota
	// TypeMismatch means the field is present with the wrong JSON type
	TypeMismatch
)

func (k Kind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case TypeMismatch:
		return "type mismatch"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingField matches any FieldError of kind MissingField
	ErrMissingField = errors.New("missing field")
	// ErrTypeMismatch matches any FieldError of kind TypeMismatch
	ErrTypeMismatch = errors.New("type mismatch")
)

// FieldError reports a required field that could not be read
type FieldError struct {
	Kind  Kind
	Field string
	Want  string
}

func (e *FieldError) Error() string {
	if e.Kind == TypeMismatch {
		return fmt.Sprintf("%v: %v, expected %v", e.Kind, e.Field, e.Want)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Field)
}

// Is lets errors.Is match a FieldError against the sentinel of its kind
func (e *FieldError) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Kind == MissingField
	case ErrTypeMismatch:
		return e.Kind == TypeMismatch
	}
	return false
}

func missing(field string) error {
	return &FieldError{Kind: MissingField, Field: field}
}

func mismatch(field, want string) error {
	return &FieldError{Kind: TypeMismatch, Field: field, Want: want}
}
