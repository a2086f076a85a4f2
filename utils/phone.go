package utils

import "strings"

// DigitsOnly strips every non-digit from s. Phone numbers are compared
// in this form.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SamePhone compares two phone numbers by their digits
func SamePhone(a, b string) bool {
	da := DigitsOnly(a)
	return da != "" && da == DigitsOnly(b)
}

// FormatE164 formats a phone number for SMS delivery.
// Ten digits are assumed to be a US number.
func FormatE164(phone string) string {
	d := DigitsOnly(phone)
	switch {
	case len(d) == 11 && d[0] == '1':
		return "+" + d
	case len(d) == 10:
		return "+1" + d
	case strings.HasPrefix(strings.TrimSpace(phone), "+"):
		return "+" + d
	default:
		return "+1" + d
	}
}
