package validate

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindTooLong       Kind = "too_long"
	KindRequired      Kind = "required"
	KindInvalidFormat Kind = "invalid_format"
	KindBelowMinimum  Kind = "below_minimum"
	KindNegative      Kind = "negative"
	KindZeroAddress   Kind = "zero_address"
	KindOutOfRange    Kind = "out_of_range"
)

// ValidationError reports why an input was rejected. Length and Max are set
// for KindTooLong.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
	Length  int
	Max     int
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsKind reports whether err wraps a ValidationError of the given kind.
func IsKind(err error, kind Kind) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Kind == kind
}

func tooLong(field string, length, max int) *ValidationError {
	return &ValidationError{
		Kind:    KindTooLong,
		Field:   field,
		Message: fmt.Sprintf("%s too long: %d characters (max %d)", field, length, max),
		Length:  length,
		Max:     max,
	}
}

func newError(kind Kind, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
