package dhcpwire

import (
	"bytes"
	"fmt"
	"io"
	"net"
)

// NTPServerAddressSubOption is the NTP Server Address Suboption defined
// in RFC 5908 section 4.1. It appears inside the NTP Server Option and
// specifies the IPv6 unicast address of an NTP or SNTP server available
// to the client. Its payload is always exactly 16 bytes.
type NTPServerAddressSubOption struct {
	// Address is the IPv6 unicast address of the NTP server.
	Address net.IP
}

// NewNTPServerAddressSubOption instantiates a new suboption carrying
// the given server address.
func NewNTPServerAddressSubOption(
	address net.IP) *NTPServerAddressSubOption {

	return &NTPServerAddressSubOption{
		Address: address,
	}
}

// A compile time check to ensure NTPServerAddressSubOption implements
// the SubOption interface.
var _ SubOption = (*NTPServerAddressSubOption)(nil)

// Decode deserializes the suboption from the passed reader.
//
// This is part of the SubOption interface.
func (o *NTPServerAddressSubOption) Decode(r *bytes.Reader) error {
	subLen, err := parseSubOptionHeader(r, SubOptionSrvAddr)
	if err != nil {
		return err
	}

	if subLen != ipv6AddrLen {
		return fmt.Errorf("%w: NTP server address suboptions must "+
			"have length 16, got %d", ErrLengthMismatch, subLen)
	}

	address := make(net.IP, ipv6AddrLen)
	if _, err := io.ReadFull(r, address); err != nil {
		return fmt.Errorf("%w: unable to read server address",
			ErrTruncatedBuffer)
	}
	o.Address = address

	return nil
}

// Encode serializes the suboption into the passed write buffer,
// re-emitting the address byte-identical to how it was parsed.
//
// This is part of the SubOption interface.
func (o *NTPServerAddressSubOption) Encode(buf *bytes.Buffer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	err := writeElementHeader(buf, uint16(SubOptionSrvAddr), ipv6AddrLen)
	if err != nil {
		return err
	}

	_, err = buf.Write(o.Address.To16())
	return err
}

// Validate checks that the held address is a well formed IPv6 address.
//
// This is part of the SubOption interface.
func (o *NTPServerAddressSubOption) Validate() error {
	if o.Address.To16() == nil {
		return fmt.Errorf("%v is not a valid NTP server address",
			o.Address)
	}

	return nil
}

// SubOptionType returns the type code which uniquely identifies this
// suboption on the wire.
//
// This is part of the SubOption interface.
func (o *NTPServerAddressSubOption) SubOptionType() SubOptionType {
	return SubOptionSrvAddr
}

// ntpServerAddressFromString builds a validated suboption from an IPv6
// address literal.
func ntpServerAddressFromString(value string) (SubOption, error) {
	address, err := parseIPv6(value)
	if err != nil {
		return nil, err
	}

	sub := NewNTPServerAddressSubOption(address)
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return sub, nil
}

// parseIPv6 parses an IPv6 address literal, rejecting IPv4 forms which
// have no place in a DHCPv6 option.
func parseIPv6(value string) (net.IP, error) {
	address := net.ParseIP(value)
	if address == nil || address.To4() != nil {
		return nil, fmt.Errorf("%q is not a valid IPv6 address", value)
	}

	return address, nil
}
