package helpers

import (
	"strings"
)

// IsEmailValid performs a light structural check of an email address.
// It verifies:
// 1. There is exactly one "@" with text on both sides
// 2. The domain contains a dot that is neither first nor last
// 3. There is no whitespace anywhere
func IsEmailValid(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// IsPhoneValid accepts digits with optional leading "+" and common separators,
// requiring at least seven digits
func IsPhoneValid(phone string) bool {
	digits := 0
	for i, c := range phone {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '+' && i == 0:
		case c == ' ' || c == '-' || c == '(' || c == ')':
		default:
			return false
		}
	}
	return digits >= 7
}
