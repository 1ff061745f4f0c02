package dhcpwire

import (
	"net"
	"strings"

	"pgregory.net/rapid"
)

// charset contains the characters used to generate random domain name
// labels for testing purposes.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandIPv6 generates a random IPv6 address using rapid's generators.
func RandIPv6(t *rapid.T) net.IP {
	addrBytes := rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, "addrBytes")

	return net.IP(addrBytes)
}

// RandFQDN generates a random fully qualified domain name in the dotted
// presentation form produced by the wire decoder, including the
// trailing root dot.
func RandFQDN(t *rapid.T) string {
	numLabels := rapid.IntRange(1, 4).Draw(t, "numLabels")

	labels := make([]string, numLabels)
	for i := range labels {
		labelLen := rapid.IntRange(1, 12).Draw(t, "labelLen")

		var label strings.Builder
		for j := 0; j < labelLen; j++ {
			idx := rapid.IntRange(0, len(charset)-1).Draw(
				t, "labelChar",
			)
			label.WriteByte(charset[idx])
		}
		labels[i] = label.String()
	}

	return strings.Join(labels, ".") + "."
}

// RandSubOption generates a random NTP suboption of any variant,
// unknown included, using rapid's generators.
func RandSubOption(t *rapid.T) SubOption {
	switch rapid.IntRange(0, 3).Draw(t, "subOptionKind") {
	case 0:
		return &NTPServerAddressSubOption{
			Address: RandIPv6(t),
		}

	case 1:
		return &NTPMulticastAddressSubOption{
			Address: RandIPv6(t),
		}

	case 2:
		return &NTPServerFQDNSubOption{
			FQDN: RandFQDN(t),
		}

	default:
		return RandUnknownSubOption(t)
	}
}

// RandUnknownSubOption generates a random suboption whose type code has
// no registered decoder.
func RandUnknownSubOption(t *rapid.T) *UnknownNTPSubOption {
	// Start above the registered type codes so the registry always
	// falls back to the opaque decoder.
	subType := rapid.IntRange(4, 65535).Draw(t, "unknownType")
	data := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "unknownData")

	return &UnknownNTPSubOption{
		Type: SubOptionType(subType),
		Data: data,
	}
}
