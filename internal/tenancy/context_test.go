package tenancy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionContext_Validate(t *testing.T) {
	tenantID := TenantID(uuid.NewString())
	userID := UserID(uuid.NewString())

	t.Run("full internal scope", func(t *testing.T) {
		require.NoError(t, InternalContext(tenantID, userID).Validate())
	})

	t.Run("empty ids are legal", func(t *testing.T) {
		// Missing context is not an error; the store fails closed on it.
		sc := SessionContext{Audience: AudienceInternalWeb}
		require.NoError(t, sc.Validate())
	})

	t.Run("portal scope carries no tenant", func(t *testing.T) {
		sc := PortalContext(userID)
		require.NoError(t, sc.Validate())
		assert.Empty(t, sc.TenantID)
	})

	t.Run("invalid audience", func(t *testing.T) {
		sc := SessionContext{TenantID: tenantID, Audience: "nope"}
		assert.ErrorIs(t, sc.Validate(), ErrUnknownAudience)
	})

	t.Run("malformed tenant id", func(t *testing.T) {
		sc := SessionContext{TenantID: "not-a-uuid", Audience: AudienceInternalWeb}
		assert.ErrorIs(t, sc.Validate(), ErrInvalidScope)
	})

	t.Run("malformed user id", func(t *testing.T) {
		sc := SessionContext{UserID: "42", Audience: AudienceExternalPortal}
		assert.ErrorIs(t, sc.Validate(), ErrInvalidScope)
	})
}

func TestServiceContext(t *testing.T) {
	sc := ServiceContext()
	require.NoError(t, sc.Validate())
	assert.Equal(t, AudienceTrustedService, sc.Audience)
	assert.Empty(t, sc.TenantID)
	assert.Empty(t, sc.UserID)
}
