package dhcpwire

import (
	"bytes"
	"fmt"
	"io"
	"net"
)

// NTPMulticastAddressSubOption is the NTP Multicast Address Suboption
// defined in RFC 5908 section 4.2. It appears inside the NTP Server
// Option and specifies the IPv6 multicast group address used by NTP on
// the local network. The payload is always exactly 16 bytes. Note that
// multicast membership of the address is documented but not enforced by
// the wire format, so it is not checked here either.
type NTPMulticastAddressSubOption struct {
	// Address is the IPv6 multicast group address.
	Address net.IP
}

// NewNTPMulticastAddressSubOption instantiates a new suboption carrying
// the given multicast group address.
func NewNTPMulticastAddressSubOption(
	address net.IP) *NTPMulticastAddressSubOption {

	return &NTPMulticastAddressSubOption{
		Address: address,
	}
}

// A compile time check to ensure NTPMulticastAddressSubOption
// implements the SubOption interface.
var _ SubOption = (*NTPMulticastAddressSubOption)(nil)

// Decode deserializes the suboption from the passed reader.
//
// This is part of the SubOption interface.
func (o *NTPMulticastAddressSubOption) Decode(r *bytes.Reader) error {
	subLen, err := parseSubOptionHeader(r, SubOptionMCAddr)
	if err != nil {
		return err
	}

	if subLen != ipv6AddrLen {
		return fmt.Errorf("%w: NTP multicast address suboptions "+
			"must have length 16, got %d", ErrLengthMismatch,
			subLen)
	}

	address := make(net.IP, ipv6AddrLen)
	if _, err := io.ReadFull(r, address); err != nil {
		return fmt.Errorf("%w: unable to read multicast address",
			ErrTruncatedBuffer)
	}
	o.Address = address

	return nil
}

// Encode serializes the suboption into the passed write buffer,
// re-emitting the address byte-identical to how it was parsed.
//
// This is part of the SubOption interface.
func (o *NTPMulticastAddressSubOption) Encode(buf *bytes.Buffer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	err := writeElementHeader(buf, uint16(SubOptionMCAddr), ipv6AddrLen)
	if err != nil {
		return err
	}

	_, err = buf.Write(o.Address.To16())
	return err
}

// Validate checks that the held address is a well formed IPv6 address.
//
// This is part of the SubOption interface.
func (o *NTPMulticastAddressSubOption) Validate() error {
	if o.Address.To16() == nil {
		return fmt.Errorf("%v is not a valid NTP multicast address",
			o.Address)
	}

	return nil
}

// SubOptionType returns the type code which uniquely identifies this
// suboption on the wire.
//
// This is part of the SubOption interface.
func (o *NTPMulticastAddressSubOption) SubOptionType() SubOptionType {
	return SubOptionMCAddr
}

// ntpMulticastAddressFromString builds a validated suboption from an
// IPv6 address literal.
func ntpMulticastAddressFromString(value string) (SubOption, error) {
	address, err := parseIPv6(value)
	if err != nil {
		return nil, err
	}

	sub := NewNTPMulticastAddressSubOption(address)
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return sub, nil
}
