package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Violations maps a form field to a translation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Has reports whether field has a violation.
func (v Violations) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MinLength(field, value string, n int, v Violations) {
	if _, set := v[field]; set {
		return
	}
	if utf8.RuneCountInString(value) < n {
		v[field] = "too_short"
	}
}

func Email(field, value string, v Violations) {
	if _, set := v[field]; set {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		v[field] = "invalid_email"
	}
}
