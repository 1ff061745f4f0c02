package dhcpwire

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedBuffer is returned when an element declares more
	// payload bytes than the buffer has left.
	ErrTruncatedBuffer = errors.New("element is longer than the " +
		"available buffer")

	// ErrLengthMismatch is returned when an element's declared length
	// does not match the number of bytes its payload actually decoded
	// to. This applies at both suboption and container granularity.
	ErrLengthMismatch = errors.New("declared length does not match " +
		"the decoded payload")

	// ErrCardinalityViolation is returned when a container holds an
	// invalid number of suboptions for a constrained capability.
	ErrCardinalityViolation = errors.New("container holds an invalid " +
		"number of suboptions")

	// ErrUnknownElementName is returned when a configuration entry
	// names an element type that is not present in the name registry.
	// Unlike unknown type codes on the wire, this is a hard failure.
	ErrUnknownElementName = errors.New("unknown element name")

	// ErrEmptyValue is returned when a configuration entry supplies a
	// blank token where a literal value was expected.
	ErrEmptyValue = errors.New("element value is empty")
)

// DecoderTypeMismatchError is returned when a decoder is invoked
// against a header whose type code does not match that decoder's fixed
// code. This indicates a registry or dispatch bug rather than bad
// input, so it is kept distinct from the wire format errors above.
type DecoderTypeMismatchError struct {
	// Decoder is the name of the decoder that was invoked.
	Decoder string

	// Want is the type code the decoder is registered for.
	Want uint16

	// Got is the type code found in the buffer.
	Got uint16
}

// Error returns a human readable string describing the error.
//
// This is part of the error interface.
func (e *DecoderTypeMismatchError) Error() string {
	return fmt.Sprintf("buffer does not contain %s data: want type "+
		"code %d, got %d", e.Decoder, e.Want, e.Got)
}
