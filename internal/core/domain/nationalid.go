package domain

import (
	"errors"
	"strings"
)

var ErrInvalidIdentityFormat = errors.New("invalid national id format")

var nationalIDWeights = [7]int{2, 9, 8, 7, 6, 3, 4}

// ParseNationalID strips separators from raw, left-pads 7-digit numbers and
// validates the check digit. The returned value is the canonical 8-digit key
// used everywhere an identity is referenced.
func ParseNationalID(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch len(digits) {
	case 7:
		digits = "0" + digits
	case 8:
	default:
		return "", ErrInvalidIdentityFormat
	}

	sum := 0
	for i, w := range nationalIDWeights {
		sum += int(digits[i]-'0') * w
	}
	if (10-sum%10)%10 != int(digits[7]-'0') {
		return "", ErrInvalidIdentityFormat
	}
	return digits, nil
}

// ValidNationalID reports whether raw parses as a national ID.
func ValidNationalID(raw string) bool {
	_, err := ParseNationalID(raw)
	return err == nil
}

// CanonicalNationalIDs parses every entry and drops the ones that fail the
// check digit. Used for configured allow-lists.
func CanonicalNationalIDs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if id, err := ParseNationalID(r); err == nil {
			out = append(out, id)
		}
	}
	return out
}
