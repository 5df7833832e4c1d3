// internal/contact/validate.go
//
// Field validation for the contact form.
// Each kind maps the field's current text to a Result; messages are the
// human-readable reasons shown next to the input.
//
// Rules:
//   - name / surname: non-empty after trimming; letters, spaces, apostrophes
//     and hyphens only (Latin letters including À–ž).
//   - email: non-empty; minimal local@domain.tld shape.
//   - address: non-empty; at least 5 characters.
//   - phone: see MaskPhone.
//   - message: free text, always valid.

package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Kind identifies a contact form field.
type Kind string

const (
	KindName    Kind = "name"
	KindSurname Kind = "surname"
	KindEmail   Kind = "email"
	KindPhone   Kind = "phone"
	KindAddress Kind = "address"
	KindMessage Kind = "message"
)

// Kinds lists every field in display order.
var Kinds = []Kind{KindName, KindSurname, KindEmail, KindPhone, KindAddress, KindMessage}

// Result is the outcome of validating one field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

const (
	msgOnlyLetters  = "Only letters allowed"
	msgEmailEmpty   = "Email required"
	msgEmailFormat  = "Invalid email format"
	msgAddressEmpty = "Address required"
	msgAddressShort = "Address too short"
	msgPhoneFormat  = "Phone must be in format +370 6xx xxxxx"

	minAddressLen = 5
)

var (
	onlyLetters  = regexp.MustCompile(`^[A-Za-zÀ-ž\s'-]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func ok() Result             { return Result{Valid: true} }
func fail(msg string) Result { return Result{Message: msg} }

// ParseKind maps a wire name to a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Validate checks raw against the rules for kind.
// Unknown kinds are treated as free text.
func Validate(kind Kind, raw string) Result {
	switch kind {
	case KindName:
		return validateLetters(raw, "Name cannot be empty")
	case KindSurname:
		return validateLetters(raw, "Surname cannot be empty")
	case KindEmail:
		return validateEmail(raw)
	case KindAddress:
		return validateAddress(raw)
	case KindPhone:
		_, r := maskAndCheck(raw)
		return r
	default:
		return ok()
	}
}

func validateLetters(raw, emptyMsg string) Result {
	v := strings.TrimSpace(norm.NFC.String(raw))
	if v == "" {
		return fail(emptyMsg)
	}
	if !onlyLetters.MatchString(v) {
		return fail(msgOnlyLetters)
	}
	return ok()
}

func validateEmail(raw string) Result {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fail(msgEmailEmpty)
	}
	if !emailPattern.MatchString(v) {
		return fail(msgEmailFormat)
	}
	return ok()
}

func validateAddress(raw string) Result {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fail(msgAddressEmpty)
	}
	if utf8.RuneCountInString(v) < minAddressLen {
		return fail(msgAddressShort)
	}
	return ok()
}
