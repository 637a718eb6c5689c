package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

func newScopedRequest(tenantID, userID, audience string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/v1/work-orders", nil)
	if tenantID != "" {
		r.Header.Set(HeaderTenantID, tenantID)
	}
	if userID != "" {
		r.Header.Set(HeaderUserID, userID)
	}
	if audience != "" {
		r.Header.Set(HeaderAudience, audience)
	}
	return r
}

func TestScopeMiddleware_SetsSessionContext(t *testing.T) {
	tenantID := uuid.NewString()
	userID := uuid.NewString()

	var got tenancy.SessionContext
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetScope(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	m := NewScopeMiddleware(NewHeaderClaimsResolver(""))
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, newScopedRequest(tenantID, userID, string(tenancy.AudienceInternalWeb)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, tenancy.TenantID(tenantID), got.TenantID)
	assert.Equal(t, tenancy.UserID(userID), got.UserID)
	assert.Equal(t, tenancy.AudienceInternalWeb, got.Audience)
}

func TestScopeMiddleware_MissingClaims(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a scope")
	})

	m := NewScopeMiddleware(NewHeaderClaimsResolver(""))
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, newScopedRequest(uuid.NewString(), "", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestScopeMiddleware_GatewayKeyMismatch(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	m := NewScopeMiddleware(NewHeaderClaimsResolver("expected-gateway-key-0123456789ab"))
	r := newScopedRequest(uuid.NewString(), uuid.NewString(), string(tenancy.AudienceInternalWeb))
	r.Header.Set(HeaderGatewayKey, "wrong")

	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestScopeMiddleware_UnknownAudienceIsServerError(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	m := NewScopeMiddleware(NewHeaderClaimsResolver(""))
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, newScopedRequest(uuid.NewString(), uuid.NewString(), "superuser"))

	// Misconfiguration upstream, not a caller mistake.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestScopeMiddleware_MalformedIDs(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	m := NewScopeMiddleware(NewHeaderClaimsResolver(""))
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, newScopedRequest("not-a-uuid", "", string(tenancy.AudienceInternalWeb)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAudience(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	gate := RequireAudience(tenancy.AudienceInternalWeb, tenancy.AudienceExternalPortal)

	serve := func(audience string) *httptest.ResponseRecorder {
		m := NewScopeMiddleware(NewHeaderClaimsResolver(""))
		rec := httptest.NewRecorder()
		m.Handler(gate(ok)).ServeHTTP(rec, newScopedRequest(uuid.NewString(), uuid.NewString(), audience))
		return rec
	}

	assert.Equal(t, http.StatusNoContent, serve(string(tenancy.AudienceInternalWeb)).Code)
	assert.Equal(t, http.StatusNoContent, serve(string(tenancy.AudienceExternalPortal)).Code)
	assert.Equal(t, http.StatusForbidden, serve(string(tenancy.AudienceBackgroundWorker)).Code)

	t.Run("no scope on context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		gate(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("trusted service never handles requests", func(t *testing.T) {
		// Even a gate that lists it explicitly refuses the service audience.
		permissive := RequireAudience(tenancy.Audiences...)
		m := NewScopeMiddleware(NewHeaderClaimsResolver(""))
		rec := httptest.NewRecorder()
		m.Handler(permissive(ok)).ServeHTTP(rec,
			newScopedRequest("", "", string(tenancy.AudienceTrustedService)))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
