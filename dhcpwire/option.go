package dhcpwire

import (
	"bytes"
	"fmt"
	"sync"
)

// OptionType is the unique 2 byte big-endian integer that identifies a
// top-level DHCPv6 option on the wire. Option type codes and NTP
// suboption type codes are separate namespaces.
type OptionType uint16

// The currently defined top-level option types.
const (
	// OptionNTPServer is the NTP Server Option defined in RFC 5908.
	OptionNTPServer OptionType = 56
)

// String returns the string representation of an option type.
func (t OptionType) String() string {
	switch t {
	case OptionNTPServer:
		return "NTPServer"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(t))
	}
}

// Option is an interface that defines a top-level DHCPv6 option. The
// interface is general in order to allow implementing types full
// control over the representation of their data.
type Option interface {
	// Decode reads the option's header and payload from the reader.
	// The reader must be positioned at the option's type code.
	Decode(r *bytes.Reader) error

	// Encode serializes the option, header included, into the write
	// buffer.
	Encode(buf *bytes.Buffer) error

	// Validate checks the option's type-specific invariants. It is
	// called after decoding and before encoding.
	Validate() error

	// OptionType returns the type code which uniquely identifies this
	// option on the wire.
	OptionType() OptionType
}

var (
	// optionRegistryMtx guards registration only. Lookups are
	// deliberately unsynchronized to keep the decode path lock free;
	// all registrations must complete before concurrent decoding
	// starts.
	optionRegistryMtx sync.Mutex

	// optionRegistry maps an option type code to the constructor for
	// the concrete type that decodes it.
	optionRegistry = make(map[OptionType]func() Option)
)

// RegisterOption records the constructor used to decode options with
// the given type code. Registering the same code twice is a programming
// error and panics.
func RegisterOption(optionType OptionType, newOption func() Option) {
	optionRegistryMtx.Lock()
	defer optionRegistryMtx.Unlock()

	if _, ok := optionRegistry[optionType]; ok {
		panic(fmt.Sprintf("option type %d registered twice",
			optionType))
	}

	optionRegistry[optionType] = newOption
}

// makeEmptyOption creates a new empty option of the proper concrete
// type based on the passed type code. Unregistered type codes fall back
// to UnknownOption, so parsing never fails solely because a code is
// unrecognized.
func makeEmptyOption(optionType OptionType) Option {
	if newOption, ok := optionRegistry[optionType]; ok {
		return newOption()
	}

	log.Tracef("No decoder registered for option type %d, preserving "+
		"raw payload", optionType)

	return &UnknownOption{Type: optionType}
}

// ReadOption reads, parses and validates the next option from r,
// dispatching to the decoder registered for its type code. It returns
// the option together with the number of bytes consumed from r.
func ReadOption(r *bytes.Reader) (Option, int, error) {
	code, err := peekElementCode(r)
	if err != nil {
		return nil, 0, err
	}

	opt := makeEmptyOption(OptionType(code))

	before := r.Len()
	if err := opt.Decode(r); err != nil {
		return nil, 0, err
	}

	return opt, before - r.Len(), nil
}

// parseOptionHeader parses and verifies a top-level option header on
// behalf of the concrete decoder for expected. The type code must match
// the decoder being invoked and the declared payload must fit within
// the bytes remaining in r. It returns the declared payload length.
func parseOptionHeader(r *bytes.Reader, expected OptionType) (uint16, error) {
	code, optionLen, err := readElementHeader(r)
	if err != nil {
		return 0, err
	}

	if OptionType(code) != expected {
		return 0, &DecoderTypeMismatchError{
			Decoder: expected.String(),
			Want:    uint16(expected),
			Got:     code,
		}
	}

	if int(optionLen) > r.Len() {
		return 0, fmt.Errorf("%w: option declares %d payload bytes, "+
			"%d available", ErrTruncatedBuffer, optionLen, r.Len())
	}

	return optionLen, nil
}

// WriteOption serializes an option to buf and returns the number of
// bytes written. If any error is encountered, the buffer is reset to
// its original state so that no broken bytes are left behind. Either
// all or none of the option bytes will be written to the buffer.
//
// NOTE: this function is not concurrent safe.
func WriteOption(buf *bytes.Buffer, opt Option) (int, error) {
	// Record the size of the bytes already written in buffer.
	oldByteSize := buf.Len()

	if err := opt.Encode(buf); err != nil {
		buf.Truncate(oldByteSize)
		return 0, fmt.Errorf("failed to encode option to buffer, "+
			"got %w", err)
	}

	return buf.Len() - oldByteSize, nil
}
