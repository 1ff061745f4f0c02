package dhcpwire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mndfcked/dhcpkit/dnsname"
)

// NTPServerFQDNSubOption is the NTP Server FQDN Suboption defined in
// RFC 5908 section 4.3. It appears inside the NTP Server Option and
// specifies the fully qualified domain name of an NTP or SNTP server.
// The payload is the name encoded per RFC 3315 section 8: a sequence of
// length-prefixed labels terminated by the root label, with no
// compression pointers. Internationalized domain names are not
// validated at this layer; that is the label codec's concern.
type NTPServerFQDNSubOption struct {
	// FQDN is the server's domain name in dotted presentation form.
	// Decoded names carry the trailing root dot; names built from
	// configuration may omit it and are canonicalized on encode.
	FQDN string
}

// NewNTPServerFQDNSubOption instantiates a new suboption carrying the
// given server name.
func NewNTPServerFQDNSubOption(fqdn string) *NTPServerFQDNSubOption {
	return &NTPServerFQDNSubOption{
		FQDN: fqdn,
	}
}

// A compile time check to ensure NTPServerFQDNSubOption implements the
// SubOption interface.
var _ SubOption = (*NTPServerFQDNSubOption)(nil)

// Decode deserializes the suboption from the passed reader. The encoded
// name must account for the declared payload length exactly.
//
// This is part of the SubOption interface.
func (o *NTPServerFQDNSubOption) Decode(r *bytes.Reader) error {
	subLen, err := parseSubOptionHeader(r, SubOptionSrvFQDN)
	if err != nil {
		return err
	}

	payload := make([]byte, subLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("%w: unable to read fqdn payload",
			ErrTruncatedBuffer)
	}

	fqdn, consumed, err := dnsname.Decode(payload, 0, len(payload))
	if err != nil {
		return err
	}

	if consumed != int(subLen) {
		return fmt.Errorf("%w: suboption length %d does not match "+
			"the length of the included fqdn (%d)",
			ErrLengthMismatch, subLen, consumed)
	}

	o.FQDN = fqdn

	return nil
}

// Encode serializes the suboption into the passed write buffer. The
// length field is computed from the freshly encoded name.
//
// This is part of the SubOption interface.
func (o *NTPServerFQDNSubOption) Encode(buf *bytes.Buffer) error {
	fqdnBuf, err := dnsname.Encode(o.FQDN)
	if err != nil {
		return err
	}

	err = writeElementHeader(
		buf, uint16(SubOptionSrvFQDN), uint16(len(fqdnBuf)),
	)
	if err != nil {
		return err
	}

	_, err = buf.Write(fqdnBuf)
	return err
}

// Validate checks that the held name has a valid wire encoding.
//
// This is part of the SubOption interface.
func (o *NTPServerFQDNSubOption) Validate() error {
	if _, err := dnsname.Encode(o.FQDN); err != nil {
		return err
	}

	return nil
}

// SubOptionType returns the type code which uniquely identifies this
// suboption on the wire.
//
// This is part of the SubOption interface.
func (o *NTPServerFQDNSubOption) SubOptionType() SubOptionType {
	return SubOptionSrvFQDN
}

// ntpServerFQDNFromString builds a validated suboption from a domain
// name literal.
func ntpServerFQDNFromString(value string) (SubOption, error) {
	sub := NewNTPServerFQDNSubOption(value)
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return sub, nil
}
