package wire

import "fmt"

// DecodeError reports a characteristic payload that cannot be decoded.
type DecodeError struct {
	// Format names the characteristic format being decoded.
	Format string

	// Message describes what was wrong with the payload.
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Format, e.Message)
}

// decodeErrShort is the common too-few-bytes decode failure.
func decodeErrShort(format string, want, got int) *DecodeError {
	return &DecodeError{
		Format:  format,
		Message: fmt.Sprintf("need at least %d bytes, got %d", want, got),
	}
}

// OutOfRangeError reports a field value rejected before encoding.
type OutOfRangeError struct {
	// Field is the name of the rejected field.
	Field string

	// Value is the rejected value.
	Value any

	// Constraint describes the accepted range.
	Constraint string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: value %v out of range (%s)", e.Field, e.Value, e.Constraint)
}

// rangeErr builds an OutOfRangeError for a field.
func rangeErr(field string, value any, constraint string) *OutOfRangeError {
	return &OutOfRangeError{Field: field, Value: value, Constraint: constraint}
}
