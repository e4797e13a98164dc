package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"
)

// Features is the canonical comparison key derived from a raw domain name.
// Derived once per input and immutable thereafter.
type Features struct {
	SLD        string `json:"sld"`
	TLD        string `json:"tld"` // with leading dot, e.g. ".com"
	Length     int    `json:"length"`
	HasNumbers bool   `json:"has_numbers"`
}

// ParseFeatures derives Features from a raw domain name. Scheme prefixes
// and path suffixes are stripped before suffix extraction. Length counts
// codepoints of the second-level label only. An unparsable suffix defaults
// to ".com". Never fails.
func ParseFeatures(name string) Features {
	host := strings.TrimPrefix(name, "http://")
	host = strings.TrimPrefix(host, "https://")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	sld, tld := splitSuffix(host)

	return Features{
		SLD:        sld,
		TLD:        tld,
		Length:     utf8.RuneCountInString(sld),
		HasNumbers: strings.ContainsFunc(sld, unicode.IsDigit),
	}
}

// splitSuffix splits a host into its second-level label and public suffix.
// Multi-label suffixes (".co.uk") count as one suffix.
func splitSuffix(host string) (sld, tld string) {
	suffix, _ := publicsuffix.PublicSuffix(host)
	if suffix == "" || suffix == host {
		// Bare label with no usable suffix.
		return host, ".com"
	}
	rest := strings.TrimSuffix(strings.TrimSuffix(host, suffix), ".")
	if rest == "" {
		return host, ".com"
	}
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		rest = rest[i+1:]
	}
	return rest, "." + suffix
}

// DigitFraction returns the fraction of decimal digit characters in s,
// or 0 for the empty string.
func DigitFraction(s string) float64 {
	if s == "" {
		return 0
	}
	total, digits := 0, 0
	for _, r := range s {
		total++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return float64(digits) / float64(total)
}
