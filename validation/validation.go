package validation

import (
	"regexp"
	"strings"
)

// Violations maps a field name to a user-facing error message. An empty map
// means the input is valid. Violations are values, never error returns:
// callers render them inline next to the offending field.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// emailPattern accepts local@domain.tld: no spaces, exactly one @, and at
// least one dot in the domain ("a@b" fails, "a@b.com" passes).
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Basic validators
func Required(field, value, message string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = message
	}
}

func Email(field, value, message string, v Violations) {
	if value != "" && !emailPattern.MatchString(value) {
		v[field] = message
	}
}

func PositiveFloat(field string, val float64, message string, v Violations) {
	if val <= 0 {
		v[field] = message
	}
}

func NonNegativeFloat(field string, val float64, message string, v Violations) {
	if val < 0 {
		v[field] = message
	}
}
