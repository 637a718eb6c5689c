package middleware

import (
	"crypto/hmac"
	"net/http"

	"github.com/helmdesk/ops-server-go/internal/audit"
)

// Identity headers injected by the authentication gateway. The gateway has
// already validated the caller's credentials; the shared key proves the
// headers were set by the gateway and not by the caller.
const (
	HeaderTenantID   = "X-Helmdesk-Tenant"
	HeaderUserID     = "X-Helmdesk-User"
	HeaderAudience   = "X-Helmdesk-Audience"
	HeaderGatewayKey = "X-Helmdesk-Gateway-Key"
)

// HeaderClaimsResolver trusts identity headers from the upstream gateway.
type HeaderClaimsResolver struct {
	gatewayKey string
}

func NewHeaderClaimsResolver(gatewayKey string) *HeaderClaimsResolver {
	return &HeaderClaimsResolver{gatewayKey: gatewayKey}
}

func (res *HeaderClaimsResolver) Resolve(r *http.Request) (*Claims, error) {
	if res.gatewayKey != "" {
		key := r.Header.Get(HeaderGatewayKey)
		if !hmac.Equal([]byte(key), []byte(res.gatewayKey)) {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventGatewayKeyMismatch})
			return nil, ErrMissingClaims
		}
	}

	aud := r.Header.Get(HeaderAudience)
	if aud == "" {
		return nil, ErrMissingClaims
	}

	return &Claims{
		TenantID: r.Header.Get(HeaderTenantID),
		UserID:   r.Header.Get(HeaderUserID),
		Audience: aud,
	}, nil
}
