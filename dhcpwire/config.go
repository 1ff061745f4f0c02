package dhcpwire

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// configTokenSplit matches the separators allowed between multiple
	// literal values in a single configuration entry.
	configTokenSplit = regexp.MustCompile(`[,\t ]+`)

	// firstCapPattern and allCapPattern together convert CamelCase
	// entry names to the underscore form used by the name registry.
	firstCapPattern = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapPattern   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// canonicalSubOptionName normalizes a configuration entry name to the
// lowercase underscore form used by the name registry. "SrvFqdn",
// "srv-fqdn" and "SRV_FQDN" all become "srv_fqdn".
func canonicalSubOptionName(name string) string {
	if strings.ContainsAny(name, "-_") {
		return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
	}

	return camelCaseToUnderscore(name)
}

// camelCaseToUnderscore converts a CamelCase name to lowercase
// underscore-separated form.
func camelCaseToUnderscore(name string) string {
	name = firstCapPattern.ReplaceAllString(name, "${1}_${2}")
	name = allCapPattern.ReplaceAllString(name, "${1}_${2}")

	return strings.ToLower(name)
}

// NewNTPServerOptionFromConfig builds a validated NTP Server Option
// from a configuration section. Each entry's name is resolved against
// the suboption name registry after normalization; each entry's value
// is a whitespace or comma separated list of literals, every one of
// which becomes a suboption instance via the variant's textual
// constructor. This path is a convenience builder on top of the wire
// codec: an unrecognized name or a blank token is a hard failure.
func NewNTPServerOptionFromConfig(
	section map[string]string) (*NTPServerOption, error) {

	// Sort the entry names so errors surface deterministically.
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)

	var subOptions []SubOption
	for _, name := range names {
		canonical := canonicalSubOptionName(name)

		def, ok := ResolveSubOptionName(canonical)
		if !ok {
			return nil, fmt.Errorf("%w: %q",
				ErrUnknownElementName, canonical)
		}

		for _, token := range configTokenSplit.Split(
			section[name], -1,
		) {
			if token == "" {
				return nil, fmt.Errorf("%w: %s entry has "+
					"no value", ErrEmptyValue, name)
			}

			sub, err := def.FromString(token)
			if err != nil {
				return nil, err
			}

			subOptions = append(subOptions, sub)
		}

		log.Debugf("Built %s suboption(s) from configuration entry "+
			"%q", def.Type, name)
	}

	return NewNTPServerOption(subOptions...)
}
