package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	got, err := NormalizeSlug("  Peluqueria-Ana-2 ")
	require.NoError(t, err)
	assert.Equal(t, "peluqueria-ana-2", got)

	for _, bad := range []string{"", "  ", "-ana", "ana-", "ana--luz", "peluquería", "ana luz", "ana_luz"} {
		_, err := NormalizeSlug(bad)
		assert.ErrorIs(t, err, ErrInvalidSlug, bad)
	}
}
