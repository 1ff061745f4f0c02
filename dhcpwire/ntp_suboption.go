package dhcpwire

import (
	"bytes"
	"fmt"
	"sync"
)

// SubOptionType is the unique 2 byte big-endian integer that identifies
// an NTP suboption on the wire. Suboption type codes form their own
// namespace, separate from top-level option type codes.
type SubOptionType uint16

// The suboption types defined in RFC 5908.
const (
	// SubOptionSrvAddr carries the IPv6 unicast address of an NTP or
	// SNTP server.
	SubOptionSrvAddr SubOptionType = 1

	// SubOptionMCAddr carries the IPv6 multicast group address used by
	// NTP on the local network.
	SubOptionMCAddr SubOptionType = 2

	// SubOptionSrvFQDN carries the fully qualified domain name of an
	// NTP or SNTP server.
	SubOptionSrvFQDN SubOptionType = 3
)

// String returns the string representation of a suboption type.
func (t SubOptionType) String() string {
	switch t {
	case SubOptionSrvAddr:
		return "SrvAddr"
	case SubOptionMCAddr:
		return "MCAddr"
	case SubOptionSrvFQDN:
		return "SrvFQDN"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(t))
	}
}

// SubOption is an interface that defines a suboption nested inside the
// NTP Server Option's payload.
type SubOption interface {
	// Decode reads the suboption's header and payload from the
	// reader. The reader must be positioned at the suboption's type
	// code.
	Decode(r *bytes.Reader) error

	// Encode serializes the suboption, header included, into the
	// write buffer.
	Encode(buf *bytes.Buffer) error

	// Validate checks the suboption's type-specific invariants. It is
	// called after decoding and before encoding.
	Validate() error

	// SubOptionType returns the type code which uniquely identifies
	// this suboption on the wire.
	SubOptionType() SubOptionType
}

// SubOptionDefinition ties a suboption type code to its decoder
// constructor, its canonical registry name and its textual constructor.
type SubOptionDefinition struct {
	// Type is the suboption's wire type code.
	Type SubOptionType

	// Name is the canonical lowercase, underscore-separated name used
	// to resolve configuration entries. May be empty for suboptions
	// that cannot be built from configuration.
	Name string

	// New constructs an empty suboption ready to decode into.
	New func() SubOption

	// FromString constructs a validated suboption from a single
	// configuration literal.
	FromString func(value string) (SubOption, error)
}

var (
	// subOptionMtx guards registration only. Lookups are deliberately
	// unsynchronized to keep the decode path lock free; all
	// registrations must complete before concurrent decoding starts.
	subOptionMtx sync.Mutex

	// subOptionRegistry maps a suboption type code to the definition
	// of the concrete type that decodes it.
	subOptionRegistry = make(map[SubOptionType]SubOptionDefinition)

	// subOptionNames maps a canonical name to the same definition, for
	// configuration-driven construction.
	subOptionNames = make(map[string]SubOptionDefinition)
)

// RegisterSubOption records the decoder and textual constructor for an
// NTP suboption type. Registering a type code or name twice is a
// programming error and panics.
func RegisterSubOption(def SubOptionDefinition) {
	subOptionMtx.Lock()
	defer subOptionMtx.Unlock()

	if _, ok := subOptionRegistry[def.Type]; ok {
		panic(fmt.Sprintf("NTP suboption type %d registered twice",
			def.Type))
	}
	subOptionRegistry[def.Type] = def

	if def.Name == "" {
		return
	}
	if _, ok := subOptionNames[def.Name]; ok {
		panic(fmt.Sprintf("NTP suboption name %q registered twice",
			def.Name))
	}
	subOptionNames[def.Name] = def
}

// ResolveSubOptionName looks up the suboption definition registered
// under the given canonical name. A miss is a hard failure for the
// configuration path, so no fallback is applied here.
func ResolveSubOptionName(name string) (SubOptionDefinition, bool) {
	def, ok := subOptionNames[name]
	return def, ok
}

// makeEmptySubOption creates a new empty suboption of the proper
// concrete type based on the passed type code. Unregistered type codes
// fall back to UnknownNTPSubOption rather than failing the parse.
func makeEmptySubOption(subType SubOptionType) SubOption {
	if def, ok := subOptionRegistry[subType]; ok {
		return def.New()
	}

	log.Tracef("No decoder registered for NTP suboption type %d, "+
		"preserving raw payload", subType)

	return &UnknownNTPSubOption{Type: subType}
}

// ReadSubOption reads and parses the next suboption from r, dispatching
// to the decoder registered for its type code. It returns the suboption
// together with the number of bytes consumed from r.
func ReadSubOption(r *bytes.Reader) (SubOption, int, error) {
	code, err := peekElementCode(r)
	if err != nil {
		return nil, 0, err
	}

	sub := makeEmptySubOption(SubOptionType(code))

	before := r.Len()
	if err := sub.Decode(r); err != nil {
		return nil, 0, err
	}

	return sub, before - r.Len(), nil
}

// parseSubOptionHeader parses and verifies a suboption header on behalf
// of the concrete decoder for expected. The type code must match the
// decoder being invoked and the declared payload must fit within the
// bytes remaining in r. It returns the declared payload length.
func parseSubOptionHeader(r *bytes.Reader, expected SubOptionType) (uint16,
	error) {

	code, subLen, err := readElementHeader(r)
	if err != nil {
		return 0, err
	}

	if SubOptionType(code) != expected {
		return 0, &DecoderTypeMismatchError{
			Decoder: expected.String(),
			Want:    uint16(expected),
			Got:     code,
		}
	}

	if int(subLen) > r.Len() {
		return 0, fmt.Errorf("%w: suboption declares %d payload "+
			"bytes, %d available", ErrTruncatedBuffer, subLen,
			r.Len())
	}

	return subLen, nil
}
