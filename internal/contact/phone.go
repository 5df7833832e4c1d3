package contact

import "strings"

const (
	countryPrefix = "370"
	maxDigits     = 12
	fullPhoneLen  = 14 // +370 6xx xxxxx
)

// MaskPhone reformats free text into the +370 6xx xxxxx pattern.
//
// Every call re-derives the value from the digits alone, so feeding the
// output back in yields the same output. Groups not yet typed are omitted.
// A missing 370 prefix is always prepended, even for pasted numbers that
// carry a different one.
func MaskPhone(raw string) (string, bool) {
	formatted, r := maskAndCheck(raw)
	return formatted, r.Valid
}

func maskAndCheck(raw string) (string, Result) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if !strings.HasPrefix(digits, countryPrefix) {
		digits = countryPrefix + digits
	}
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}

	var b strings.Builder
	b.WriteString("+370 ")
	for i := 3; i < len(digits); i++ {
		if i == 6 {
			b.WriteByte(' ')
		}
		b.WriteByte(digits[i])
	}
	formatted := b.String()
	out := strings.TrimSpace(formatted)

	if len(formatted) != fullPhoneLen {
		return out, fail(msgPhoneFormat)
	}
	return out, ok()
}
