// Package dnsname implements the wire encoding of domain names used by
// DHCPv6 options as described in RFC 3315, Section 8: a sequence of
// length-prefixed labels terminated by the root label. Compression
// pointers are not permitted in this context, unlike general DNS
// messages.
package dnsname

import (
	"errors"
	"fmt"

	"github.com/miekg/dns"
)

const (
	// maxWireOctets is the maximum length of an encoded domain name,
	// including the terminating root label, per RFC 1035.
	maxWireOctets = 255

	// maxLabelOctets is the maximum length of a single label.
	maxLabelOctets = 63
)

var (
	// ErrCompressedName is returned when an encoded name contains a
	// compression pointer, which RFC 3315 forbids inside options.
	ErrCompressedName = errors.New("domain name contains a compression " +
		"pointer")

	// ErrTruncatedName is returned when an encoded name runs past the
	// bytes available to the decoder.
	ErrTruncatedName = errors.New("domain name is longer than the " +
		"available buffer")

	// ErrNameTooLong is returned when a name does not fit within the
	// 255 octet wire limit.
	ErrNameTooLong = errors.New("domain name exceeds 255 wire octets")
)

// Decode reads a single encoded domain name from buf starting at off,
// reading at most length bytes. It returns the name in dotted
// presentation form (with the trailing root dot) together with the
// number of bytes consumed from buf.
func Decode(buf []byte, off, length int) (string, int, error) {
	end := off + length
	if end > len(buf) {
		end = len(buf)
	}

	// Walk the label lengths first. This both rejects compression
	// pointers and establishes the exact consumed byte count before any
	// text conversion happens.
	cursor := off
	for {
		if cursor >= end {
			return "", 0, ErrTruncatedName
		}

		labelLen := int(buf[cursor])
		if labelLen&0xc0 != 0 {
			return "", 0, ErrCompressedName
		}
		cursor++

		if labelLen == 0 {
			break
		}
		if cursor+labelLen > end {
			return "", 0, ErrTruncatedName
		}
		cursor += labelLen
	}

	consumed := cursor - off
	if consumed > maxWireOctets {
		return "", 0, ErrNameTooLong
	}

	// The slice is bounded to the walked labels, so UnpackDomainName
	// cannot read past them.
	name, _, err := dns.UnpackDomainName(buf[off:cursor], 0)
	if err != nil {
		return "", 0, fmt.Errorf("unable to parse domain name: %w", err)
	}

	return name, consumed, nil
}

// Encode serializes name into its wire form. The name is canonicalized
// to fully qualified form first, so "ntp.example.com" and
// "ntp.example.com." produce identical bytes. No compression pointers
// are ever emitted.
func Encode(name string) ([]byte, error) {
	fqdn := dns.Fqdn(name)

	buf := make([]byte, maxWireOctets+1)
	off, err := dns.PackDomainName(fqdn, buf, 0, nil, false)
	if err != nil {
		return nil, fmt.Errorf("unable to encode domain name %q: %w",
			name, err)
	}
	if off > maxWireOctets {
		return nil, ErrNameTooLong
	}

	return buf[:off], nil
}
