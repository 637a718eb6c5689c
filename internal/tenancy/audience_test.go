package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAudience(t *testing.T) {
	for _, a := range Audiences {
		parsed, err := ParseAudience(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
}

func TestParseAudience_Unknown(t *testing.T) {
	cases := []string{"", "internal", "admin", "INTERNAL-WEB", "external-portal "}
	for _, s := range cases {
		_, err := ParseAudience(s)
		assert.ErrorIs(t, err, ErrUnknownAudience, "input %q", s)
	}
}

func TestAudience_Valid(t *testing.T) {
	assert.True(t, AudienceInternalWeb.Valid())
	assert.False(t, Audience("superuser").Valid())
	assert.False(t, Audience("").Valid())
}
