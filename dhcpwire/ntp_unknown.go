package dhcpwire

import (
	"bytes"
	"fmt"
	"io"
)

// UnknownNTPSubOption represents an NTP suboption whose type code has
// no registered decoder. The type code and payload are preserved
// opaquely so that unrecognized but well formed suboptions survive a
// decode/encode round trip unchanged. This is the format's forward
// compatibility escape valve: an unknown type code is tolerated, only a
// malformed suboption is rejected.
type UnknownNTPSubOption struct {
	// Type is the raw type code found on the wire.
	Type SubOptionType

	// Data is the suboption's payload, verbatim.
	Data []byte
}

// NewUnknownNTPSubOption instantiates a new UnknownNTPSubOption.
func NewUnknownNTPSubOption(subType SubOptionType,
	data []byte) *UnknownNTPSubOption {

	return &UnknownNTPSubOption{
		Type: subType,
		Data: data,
	}
}

// A compile time check to ensure UnknownNTPSubOption implements the
// SubOption interface.
var _ SubOption = (*UnknownNTPSubOption)(nil)

// Decode deserializes the suboption from the passed reader. Any type
// code is accepted: the decoder adopts the code it finds on the wire,
// so decoding only fails when the declared length overruns the buffer.
//
// This is part of the SubOption interface.
func (o *UnknownNTPSubOption) Decode(r *bytes.Reader) error {
	code, subLen, err := readElementHeader(r)
	if err != nil {
		return err
	}

	if int(subLen) > r.Len() {
		return fmt.Errorf("%w: suboption declares %d payload bytes, "+
			"%d available", ErrTruncatedBuffer, subLen, r.Len())
	}

	o.Type = SubOptionType(code)
	o.Data = make([]byte, subLen)
	if _, err := io.ReadFull(r, o.Data); err != nil {
		return fmt.Errorf("%w: unable to read suboption payload",
			ErrTruncatedBuffer)
	}

	return nil
}

// Encode serializes the suboption, re-emitting the preserved type code
// and payload verbatim.
//
// This is part of the SubOption interface.
func (o *UnknownNTPSubOption) Encode(buf *bytes.Buffer) error {
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
// This is part of the SubOption interface.
func (o *UnknownNTPSubOption) Validate() error {
	if len(o.Data) > maxElementPayload {
		return fmt.Errorf("suboption payload is too large - %d "+
			"bytes, but maximum payload is %d bytes", len(o.Data),
			maxElementPayload)
	}

	return nil
}

// SubOptionType returns the preserved type code which identifies this
// suboption on the wire.
//
// This is part of the SubOption interface.
func (o *UnknownNTPSubOption) SubOptionType() SubOptionType {
	return o.Type
}
