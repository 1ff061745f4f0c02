package dhcpwire

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// ntpOptionWithAddress is the reference encoding of an NTP Server
// Option holding a single server address suboption for 2001:db8::1:
// option type 56, option length 20, suboption type 1, suboption
// length 16, 16 address bytes.
var ntpOptionWithAddress = []byte{
	0x00, 0x38, 0x00, 0x14,
	0x00, 0x01, 0x00, 0x10,
	0x20, 0x01, 0x0d, 0xb8, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
}

// TestNTPServerOptionDecodeEncode tests that the reference byte stream
// decodes to a container holding exactly one server address suboption,
// and that re-encoding reproduces the same bytes.
func TestNTPServerOptionDecodeEncode(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader(ntpOptionWithAddress)
	opt, consumed, err := ReadOption(r)
	require.NoError(t, err)
	require.Equal(t, len(ntpOptionWithAddress), consumed)

	ntpOpt, ok := opt.(*NTPServerOption)
	require.True(t, ok)
	require.Len(t, ntpOpt.SubOptions, 1)

	addrSub, ok := ntpOpt.SubOptions[0].(*NTPServerAddressSubOption)
	require.True(t, ok)
	require.Equal(t, net.ParseIP("2001:db8::1").To16(),
		addrSub.Address.To16())

	var buf bytes.Buffer
	n, err := WriteOption(&buf, ntpOpt)
	require.NoError(t, err)
	require.Equal(t, len(ntpOptionWithAddress), n)
	require.Equal(t, ntpOptionWithAddress, buf.Bytes())
}

// TestNTPServerOptionTruncated tests that an option declaring more
// payload than the buffer holds fails before any nested parsing.
func TestNTPServerOptionTruncated(t *testing.T) {
	t.Parallel()

	// The header promises 20 payload bytes but only 8 follow.
	raw := append([]byte{}, ntpOptionWithAddress[:12]...)

	opt := &NTPServerOption{}
	err := opt.Decode(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrTruncatedBuffer)
	require.Empty(t, opt.SubOptions)
}

// TestNTPServerOptionLengthMismatch tests that a nested suboption
// crossing the container's payload boundary is rejected at container
// granularity, even when the outer buffer could satisfy it.
func TestNTPServerOptionLengthMismatch(t *testing.T) {
	t.Parallel()

	// Shrink the declared option length to 10 while keeping the full
	// 20 byte suboption in the buffer.
	raw := append([]byte{}, ntpOptionWithAddress...)
	raw[3] = 0x0a

	opt := &NTPServerOption{}
	err := opt.Decode(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

// TestNTPServerOptionDecoderTypeMismatch tests that invoking the NTP
// option decoder on a buffer carrying a different type code fails
// loudly, since that indicates a dispatch bug rather than bad input.
func TestNTPServerOptionDecoderTypeMismatch(t *testing.T) {
	t.Parallel()

	raw := []byte{0x00, 0x39, 0x00, 0x00}

	opt := &NTPServerOption{}
	err := opt.Decode(bytes.NewReader(raw))

	var mismatchErr *DecoderTypeMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	require.Equal(t, uint16(OptionNTPServer), mismatchErr.Want)
	require.Equal(t, uint16(57), mismatchErr.Got)
}

// TestNTPServerOptionCardinality tests the containment rule: exactly
// one time source suboption, with unknown suboptions counting toward
// the same slot.
func TestNTPServerOptionCardinality(t *testing.T) {
	t.Parallel()

	addr := NewNTPServerAddressSubOption(net.ParseIP("2001:db8::1"))
	fqdn := NewNTPServerFQDNSubOption("ntp.example.com")
	unknown := NewUnknownNTPSubOption(200, []byte{0x01})

	testCases := []struct {
		name       string
		subOptions []SubOption
		valid      bool
	}{
		{
			name:       "empty",
			subOptions: nil,
			valid:      false,
		},
		{
			name:       "single address",
			subOptions: []SubOption{addr},
			valid:      true,
		},
		{
			name:       "single fqdn",
			subOptions: []SubOption{fqdn},
			valid:      true,
		},
		{
			name:       "single unknown",
			subOptions: []SubOption{unknown},
			valid:      true,
		},
		{
			name:       "address and fqdn",
			subOptions: []SubOption{addr, fqdn},
			valid:      false,
		},
		{
			name:       "address and unknown",
			subOptions: []SubOption{addr, unknown},
			valid:      false,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opt, err := NewNTPServerOption(tc.subOptions...)
			if tc.valid {
				require.NoError(t, err)
				require.NoError(t, opt.Validate())
				return
			}

			require.ErrorIs(t, err, ErrCardinalityViolation)
		})
	}
}

// TestNTPServerOptionCardinalityOnDecode tests that the containment
// rule is also enforced on the decode path.
func TestNTPServerOptionCardinalityOnDecode(t *testing.T) {
	t.Parallel()

	// An option with an empty payload holds zero suboptions.
	empty := []byte{0x00, 0x38, 0x00, 0x00}
	err := (&NTPServerOption{}).Decode(bytes.NewReader(empty))
	require.ErrorIs(t, err, ErrCardinalityViolation)

	// Two nested suboptions are one too many.
	var payload bytes.Buffer
	addr := NewNTPServerAddressSubOption(net.ParseIP("2001:db8::1"))
	require.NoError(t, addr.Encode(&payload))
	fqdn := NewNTPServerFQDNSubOption("ntp.example.com")
	require.NoError(t, fqdn.Encode(&payload))

	var raw bytes.Buffer
	require.NoError(t, writeElementHeader(
		&raw, uint16(OptionNTPServer), uint16(payload.Len()),
	))
	_, err = payload.WriteTo(&raw)
	require.NoError(t, err)

	err = (&NTPServerOption{}).Decode(bytes.NewReader(raw.Bytes()))
	require.ErrorIs(t, err, ErrCardinalityViolation)
}

// TestNTPServerOptionUnknownSubOptionRoundTrip tests that a container
// holding a suboption with an unregistered type code survives a
// decode/encode round trip byte for byte.
func TestNTPServerOptionUnknownSubOptionRoundTrip(t *testing.T) {
	t.Parallel()

	raw := []byte{
		0x00, 0x38, 0x00, 0x08,
		0x12, 0x34, 0x00, 0x04,
		0xde, 0xad, 0xbe, 0xef,
	}

	opt, consumed, err := ReadOption(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, len(raw), consumed)

	ntpOpt, ok := opt.(*NTPServerOption)
	require.True(t, ok)
	require.Len(t, ntpOpt.SubOptions, 1)

	unknown, ok := ntpOpt.SubOptions[0].(*UnknownNTPSubOption)
	require.True(t, ok)
	require.Equal(t, SubOptionType(0x1234), unknown.Type)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, unknown.Data)

	var buf bytes.Buffer
	_, err = WriteOption(&buf, ntpOpt)
	require.NoError(t, err)
	require.Equal(t, raw, buf.Bytes())
}

// TestWriteOptionResetsBufferOnError tests that a failed encode leaves
// the target buffer exactly as it was.
func TestWriteOptionResetsBufferOnError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.WriteString("prefix")

	// An empty container fails validation during encode.
	n, err := WriteOption(&buf, &NTPServerOption{})
	require.ErrorIs(t, err, ErrCardinalityViolation)
	require.Zero(t, n)
	require.Equal(t, "prefix", buf.String())
}

// TestNTPServerOptionRoundTripProperty tests that any container holding
// a single generated suboption survives an encode/decode round trip,
// both as a value and as bytes.
func TestNTPServerOptionRoundTripProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		opt, err := NewNTPServerOption(RandSubOption(rt))
		require.NoError(t, err)

		var buf bytes.Buffer
		n, err := WriteOption(&buf, opt)
		require.NoError(t, err)
		require.Equal(t, buf.Len(), n)

		decoded, consumed, err := ReadOption(
			bytes.NewReader(buf.Bytes()),
		)
		require.NoError(t, err)
		require.Equal(t, buf.Len(), consumed)
		require.Equal(t, opt, decoded)

		var reEncoded bytes.Buffer
		_, err = WriteOption(&reEncoded, decoded)
		require.NoError(t, err)
		require.Equal(t, buf.Bytes(), reEncoded.Bytes())
	})
}
