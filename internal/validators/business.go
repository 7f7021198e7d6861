package validators

import (
	"strings"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/httperr"
)

var ErrInvalidSlug = httperr.ErrBusiness("invalid_slug")

const maxSlugLen = 100

// NormalizeSlug lowercases the public business identifier used in booking
// URLs. Only a-z, 0-9 and inner single hyphens are allowed.
func NormalizeSlug(slug string) (string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" || len(slug) > maxSlugLen {
		return "", ErrInvalidSlug
	}
	if slug[0] == '-' || slug[len(slug)-1] == '-' || strings.Contains(slug, "--") {
		return "", ErrInvalidSlug
	}
	for _, r := range slug {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return "", ErrInvalidSlug
		}
	}
	return slug, nil
}
