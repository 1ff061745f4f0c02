// Package dhcpwire implements the binary TLV codec for DHCPv6 options,
// instantiated for the NTP Server Option (RFC 5908) and its suboptions.
// Options and suboptions share the same header shape: a 2 byte
// big-endian type code followed by a 2 byte payload length that counts
// the bytes after the header. Type codes live in two separate
// namespaces, one for top-level options and one for NTP suboptions.
package dhcpwire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// elementHeaderLen is the size of the fixed option/suboption
	// header: a 2 byte type code followed by a 2 byte payload length.
	elementHeaderLen = 4

	// maxElementPayload is the largest payload any option or suboption
	// is allowed to carry, bounded by the 16-bit length field.
	maxElementPayload = 65535

	// ipv6AddrLen is the length of a raw IPv6 address.
	ipv6AddrLen = 16
)

// readElementHeader reads the 4 byte type/length header of the next
// element from r. A short read means the buffer ends inside the header.
func readElementHeader(r *bytes.Reader) (uint16, uint16, error) {
	var header [elementHeaderLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, 0, fmt.Errorf("%w: unable to read element header",
			ErrTruncatedBuffer)
	}

	return binary.BigEndian.Uint16(header[:2]),
		binary.BigEndian.Uint16(header[2:]), nil
}

// writeElementHeader writes a type/length header to buf. The length is
// always the freshly computed payload size, never a value cached from a
// prior parse.
func writeElementHeader(buf *bytes.Buffer, code, length uint16) error {
	var header [elementHeaderLen]byte
	binary.BigEndian.PutUint16(header[:2], code)
	binary.BigEndian.PutUint16(header[2:], length)

	_, err := buf.Write(header[:])
	return err
}

// peekElementCode returns the type code of the next element without
// consuming it, so the registry can select the proper decoder before
// that decoder re-parses the full header itself.
func peekElementCode(r *bytes.Reader) (uint16, error) {
	var code [2]byte
	if _, err := io.ReadFull(r, code[:]); err != nil {
		return 0, fmt.Errorf("%w: unable to read element type code",
			ErrTruncatedBuffer)
	}
	if _, err := r.Seek(-2, io.SeekCurrent); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(code[:]), nil
}
