package normalize

import (
	"regexp"
	"strings"
)

// Address holds the parsed parts of a mailing address
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Trailing "STATE ZIP" token pair, e.g. "CA 94102" or "NY 10001-1234"
var reStateZip = regexp.MustCompile(`\b([A-Za-z]{2})[,\s]+(\d{5}(?:-\d{4})?)\s*$`)

// Last comma-delimited segment: "STATE ZIP" on its own
var reSegmentStateZip = regexp.MustCompile(`^([A-Za-z]{2})\s+(\d{5}(?:-\d{4})?)$`)

var reZip = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
var reState = regexp.MustCompile(`^[A-Za-z]{2}$`)

// ParseAddress splits a raw address string into parts. Three shapes are
// attempted in order; if none fits, the whole string becomes the street and
// the other parts stay empty. Never fails.
func ParseAddress(raw string) Address {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Address{}
	}

	if addr, ok := parseCommaDelimited(s); ok {
		return addr
	}
	if addr, ok := parseSpaceDelimited(s); ok {
		return addr
	}
	if addr, ok := parseTrailingStateZip(s); ok {
		return addr
	}

	return Address{Street: s}
}

// Shape 1: "street, city, STATE ZIP[-XXXX]"
func parseCommaDelimited(s string) (Address, bool) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 {
		return Address{}, false
	}

	last := strings.TrimSpace(parts[len(parts)-1])
	m := reSegmentStateZip.FindStringSubmatch(last)
	if m == nil {
		return Address{}, false
	}

	city := strings.TrimSpace(parts[len(parts)-2])
	street := strings.TrimSpace(strings.Join(parts[:len(parts)-2], ","))
	if street == "" || city == "" {
		return Address{}, false
	}

	return Address{
		Street: street,
		City:   city,
		State:  strings.ToUpper(m[1]),
		Zip:    m[2],
	}, true
}

// Shape 2: "street city STATE ZIP" with no commas
func parseSpaceDelimited(s string) (Address, bool) {
	if strings.Contains(s, ",") {
		return Address{}, false
	}

	tokens := strings.Fields(s)
	if len(tokens) < 4 {
		return Address{}, false
	}

	zip := tokens[len(tokens)-1]
	state := tokens[len(tokens)-2]
	if !reZip.MatchString(zip) || !reState.MatchString(state) {
		return Address{}, false
	}

	return Address{
		Street: strings.Join(tokens[:len(tokens)-3], " "),
		City:   tokens[len(tokens)-3],
		State:  strings.ToUpper(state),
		Zip:    zip,
	}, true
}

// Shape 3: fallback — seek a trailing STATE ZIP pair anywhere past commas or
// stray punctuation; everything before the second-to-last remaining token is
// street, the remainder is city.
func parseTrailingStateZip(s string) (Address, bool) {
	m := reStateZip.FindStringSubmatchIndex(s)
	if m == nil {
		return Address{}, false
	}

	state := strings.ToUpper(s[m[2]:m[3]])
	zip := s[m[4]:m[5]]

	head := strings.TrimSpace(strings.Trim(s[:m[0]], " ,"))
	tokens := strings.Fields(strings.ReplaceAll(head, ",", " "))
	if len(tokens) == 0 {
		return Address{}, false
	}

	city := tokens[len(tokens)-1]
	street := strings.Join(tokens[:len(tokens)-1], " ")

	return Address{
		Street: street,
		City:   city,
		State:  state,
		Zip:    zip,
	}, true
}
