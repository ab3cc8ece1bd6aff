package util

import "strings"

// NormalizeNumber reduces a phone number to E.164 shape: digits with a
// leading plus. Ten-digit North American numbers gain the +1 prefix, which is
// the form Twilio delivers and the directory stores.
func NormalizeNumber(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	n := digits.String()
	if n == "" {
		return ""
	}
	if len(n) == 10 {
		n = "1" + n
	}
	return "+" + n
}
