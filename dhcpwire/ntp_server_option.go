package dhcpwire

import (
	"bytes"
	"fmt"
)

// occurrenceBounds constrains how many suboptions of a contained
// capability a container may legally hold.
type occurrenceBounds struct {
	min int
	max int
}

// timeSourceBounds is the containment rule of RFC 5908 section 4: each
// NTP Server Option instance must include one, and only one, time
// source suboption. The count is over all held suboptions, so unknown
// suboptions fill the slot just like the registered variants do.
var timeSourceBounds = occurrenceBounds{min: 1, max: 1}

// NTPServerOption is the NTP Server Option defined in RFC 5908
// section 4. The option carries no value of its own; its payload is a
// sequence of nested suboptions describing the location of a single NTP
// or SNTP server, as a unicast address, a multicast group address or a
// fully qualified domain name. The option can appear multiple times in
// a DHCPv6 message, once per server.
type NTPServerOption struct {
	// SubOptions holds the nested suboptions in wire order. Order has
	// no semantic meaning but is preserved for round trip fidelity.
	SubOptions []SubOption
}

// NewNTPServerOption instantiates a validated NTP Server Option holding
// the given suboptions.
func NewNTPServerOption(subOptions ...SubOption) (*NTPServerOption, error) {
	opt := &NTPServerOption{
		SubOptions: subOptions,
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	return opt, nil
}

// A compile time check to ensure NTPServerOption implements the Option
// interface.
var _ Option = (*NTPServerOption)(nil)

// Decode deserializes the option from the passed reader, resolving each
// nested suboption through the suboption registry until the declared
// payload length is exhausted.
//
// This is part of the Option interface.
func (o *NTPServerOption) Decode(r *bytes.Reader) error {
	optionLen, err := parseOptionHeader(r, OptionNTPServer)
	if err != nil {
		return err
	}

	consumed := 0
	for consumed < int(optionLen) {
		sub, n, err := ReadSubOption(r)
		if err != nil {
			return err
		}

		o.SubOptions = append(o.SubOptions, sub)
		consumed += n
	}

	// A suboption that claims more bytes than remain inside this
	// option's payload is caught here, even when the outer buffer
	// still had bytes to satisfy it.
	if consumed != int(optionLen) {
		return fmt.Errorf("%w: option length %d does not match the "+
			"combined length of the parsed suboptions (%d)",
			ErrLengthMismatch, optionLen, consumed)
	}

	return o.Validate()
}

// Encode validates the option and serializes each held suboption in its
// original order, prefixed with a freshly computed header.
//
// This is part of the Option interface.
func (o *NTPServerOption) Encode(buf *bytes.Buffer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	var payload bytes.Buffer
	for _, sub := range o.SubOptions {
		if err := sub.Encode(&payload); err != nil {
			return err
		}
	}

	if payload.Len() > maxElementPayload {
		return fmt.Errorf("option payload is too large - %d bytes, "+
			"but maximum payload is %d bytes", payload.Len(),
			maxElementPayload)
	}

	err := writeElementHeader(
		buf, uint16(OptionNTPServer), uint16(payload.Len()),
	)
	if err != nil {
		return err
	}

	_, err = buf.Write(payload.Bytes())
	return err
}

// Validate enforces the containment rule: the number of held time
// source suboptions must fall within the configured occurrence bounds.
//
// This is part of the Option interface.
func (o *NTPServerOption) Validate() error {
	count := len(o.SubOptions)
	if count < timeSourceBounds.min || count > timeSourceBounds.max {
		return fmt.Errorf("%w: option must contain exactly one time "+
			"source suboption, got %d", ErrCardinalityViolation,
			count)
	}

	return nil
}

// OptionType returns the type code which uniquely identifies this
// option on the wire.
//
// This is part of the Option interface.
func (o *NTPServerOption) OptionType() OptionType {
	return OptionNTPServer
}

// Register the option and its suboptions. The registries are fully
// populated by init time, before any decode call is reachable.
func init() {
	RegisterOption(OptionNTPServer, func() Option {
		return &NTPServerOption{}
	})

	RegisterSubOption(SubOptionDefinition{
		Type: SubOptionSrvAddr,
		Name: "srv_addr",
		New: func() SubOption {
			return &NTPServerAddressSubOption{}
		},
		FromString: ntpServerAddressFromString,
	})
	RegisterSubOption(SubOptionDefinition{
		Type: SubOptionMCAddr,
		Name: "mc_addr",
		New: func() SubOption {
			return &NTPMulticastAddressSubOption{}
		},
		FromString: ntpMulticastAddressFromString,
	})
	RegisterSubOption(SubOptionDefinition{
		Type: SubOptionSrvFQDN,
		Name: "srv_fqdn",
		New: func() SubOption {
			return &NTPServerFQDNSubOption{}
		},
		FromString: ntpServerFQDNFromString,
	})
}
