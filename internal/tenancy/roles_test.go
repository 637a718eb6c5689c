package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFor(t *testing.T) {
	cases := []struct {
		audience Audience
		role     string
	}{
		{AudienceInternalWeb, RoleInternal},
		{AudienceInternalStudio, RoleInternal},
		{AudienceExternalPortal, RolePortal},
		{AudienceBackgroundWorker, RoleWorker},
		{AudienceTrustedService, RoleService},
	}

	for _, tc := range cases {
		role, err := RoleFor(tc.audience)
		require.NoError(t, err)
		assert.Equal(t, tc.role, role)
	}
}

func TestRoleFor_UnknownAudienceFailsLoudly(t *testing.T) {
	// Absence of a mapping must never degrade to a privileged default.
	_, err := RoleFor(Audience("root"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAudience)

	_, err = RoleFor(Audience(""))
	assert.ErrorIs(t, err, ErrUnknownAudience)
}

func TestEveryAudienceHasRole(t *testing.T) {
	for _, a := range Audiences {
		role, err := RoleFor(a)
		require.NoError(t, err, "audience %s", a)
		assert.Contains(t, Roles, role)
	}
}
