package catalog

import (
	"regexp"
	"strings"
)

// countryMarkerRegex matches the trailing country marker vavoo appends to
// channel names, e.g. "Rai 1 .I" or "Sky Sport .C".
var countryMarkerRegex = regexp.MustCompile(`\s\.[A-Za-z]$`)

// CleanName strips the trailing country marker from a channel name while
// keeping its original casing. Names of three runes or fewer are returned
// unchanged, as are names without a marker.
func CleanName(name string) string {
	if len(name) > 3 && countryMarkerRegex.MatchString(name) {
		return name[:len(name)-3]
	}
	return name
}

// NormalizeName returns the lower-cased comparison form of a channel name.
// Two names normalize equal exactly when they refer to the same channel
// across genre map, logo map, and snapshot.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(CleanName(name)))
}
