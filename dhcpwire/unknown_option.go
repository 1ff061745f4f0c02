package dhcpwire

import (
	"bytes"
	"fmt"
	"io"
)

// UnknownOption represents a top-level option whose type code has no
// registered decoder. The type code and payload are preserved opaquely so
// that unrecognized but well formed options survive a decode/encode
// round trip unchanged.
type UnknownOption struct {
	// Type is the raw type code found on the wire.
	Type OptionType

	// Data is the option's payload, verbatim.
	Data []byte
}

// NewUnknownOption instantiates a new UnknownOption.
func NewUnknownOption(optionType OptionType, data []byte) *UnknownOption {
	return &UnknownOption{
		Type: optionType,
		Data: data,
	}
}

// A compile time check to ensure UnknownOption implements the Option
// interface.
var _ Option = (*UnknownOption)(nil)

// Decode deserializes the option from the passed reader. Any type code
// is accepted: the decoder adopts the code it finds on the wire.
//
// This is part of the Option interface.
func (o *UnknownOption) Decode(r *bytes.Reader) error {
	code, optionLen, err := readElementHeader(r)
	if err != nil {
		return err
	}

	if int(optionLen) > r.Len() {
		return fmt.Errorf("%w: option declares %d payload bytes, "+
			"%d available", ErrTruncatedBuffer, optionLen, r.Len())
	}

	o.Type = OptionType(code)
	o.Data = make([]byte, optionLen)
	if _, err := io.ReadFull(r, o.Data); err != nil {
		return fmt.Errorf("%w: unable to read option payload",
			ErrTruncatedBuffer)
	}

	return nil
}

// Encode serializes the option, re-emitting the preserved type code and
// payload verbatim.
//
// This is part of the Option interface.
func (o *UnknownOption) Encode(buf *bytes.Buffer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	err := writeElementHeader(buf, uint16(o.Type), uint16(len(o.Data)))
	if err != nil {
		return err
	}

	_, err = buf.Write(o.Data)
	return err
}

// Validate checks that the payload fits the 16-bit length field.
//
// This is part of the Option interface.
func (o *UnknownOption) Validate() error {
	if len(o.Data) > maxElementPayload {
		return fmt.Errorf("option payload is too large - %d bytes, "+
			"but maximum payload is %d bytes", len(o.Data),
			maxElementPayload)
	}

	return nil
}

// OptionType returns the preserved type code which identifies this
// option on the wire.
//
// This is part of the Option interface.
func (o *UnknownOption) OptionType() OptionType {
	return o.Type
}
