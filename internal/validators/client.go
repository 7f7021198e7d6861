package validators

import (
	"strings"
	"unicode"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
)

var (
	ErrInvalidName  = httperr.ErrBusiness("invalid_client_name")
	ErrInvalidPhone = httperr.ErrBusiness("invalid_client_phone")
)

const (
	maxNameLen  = 100
	minPhoneLen = 7
	maxPhoneLen = 15
)

// NormalizeName collapses inner whitespace and trims the client's name.
func NormalizeName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" || len([]rune(name)) > maxNameLen {
		return "", ErrInvalidName
	}
	return name, nil
}

// NormalizePhone keeps digits and a leading "+", dropping spaces, dashes,
// dots and parentheses.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return "", ErrInvalidPhone
		}
	}

	if digits < minPhoneLen || digits > maxPhoneLen {
		return "", ErrInvalidPhone
	}
	return b.String(), nil
}
