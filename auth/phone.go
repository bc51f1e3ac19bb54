package auth

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidPhone = errors.New("auth: invalid phone number")

// NormalizePhone strips whitespace and guarantees a leading +. Beyond
// requiring a plausible digit count there is no format validation; the SMS
// provider is the authority on what is deliverable.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	phone := b.String()
	if phone == "" {
		return "", ErrInvalidPhone
	}

	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	digits := phone[1:]
	if len(digits) < 7 || len(digits) > 15 {
		return "", ErrInvalidPhone
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}

	return phone, nil
}
