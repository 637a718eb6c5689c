package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The Propagator must reject a malformed scope before it touches the pool.
// These tests hand it a nil pool: reaching BeginTxx would panic.
func TestPropagator_RejectsBadScopeBeforeTransaction(t *testing.T) {
	p := NewPropagator(nil)

	t.Run("unknown audience", func(t *testing.T) {
		sc := SessionContext{Audience: "no-such-audience"}
		err := p.Run(context.Background(), sc, func(q Querier) error {
			t.Fatal("unit of work must not run")
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownAudience)
	})

	t.Run("malformed tenant id", func(t *testing.T) {
		sc := SessionContext{TenantID: "not-a-uuid", Audience: AudienceInternalWeb}
		err := p.Run(context.Background(), sc, func(q Querier) error {
			t.Fatal("unit of work must not run")
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidScope)
	})

	t.Run("malformed user id", func(t *testing.T) {
		sc := SessionContext{
			TenantID: TenantID(uuid.NewString()),
			UserID:   "groucho",
			Audience: AudienceInternalWeb,
		}
		err := p.Run(context.Background(), sc, func(q Querier) error { return nil })
		assert.ErrorIs(t, err, ErrInvalidScope)
	})
}

func TestPropagator_ImplementsRunner(t *testing.T) {
	var r Runner = NewPropagator(nil)
	assert.NotNil(t, r)
}
