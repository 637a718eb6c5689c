package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/helmdesk/ops-server-go/internal/audit"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type contextKey string

const ScopeContextKey contextKey = "scope"

// GetScope returns the session context resolved for this request, if any.
func GetScope(ctx context.Context) (tenancy.SessionContext, bool) {
	sc, ok := ctx.Value(ScopeContextKey).(tenancy.SessionContext)
	return sc, ok
}

// Claims is the resolved identity handed over by the authentication
// collaborator. This subsystem never validates credentials itself.
type Claims struct {
	TenantID string
	UserID   string
	Audience string
}

// ClaimsResolver produces well-formed claims for a request or rejects it.
type ClaimsResolver interface {
	Resolve(r *http.Request) (*Claims, error)
}

// ScopeMiddleware turns resolved claims into an immutable SessionContext on
// the request context. Handlers downstream hand that scope to the Propagator;
// nothing else about the request influences row visibility.
type ScopeMiddleware struct {
	resolver ClaimsResolver
}

func NewScopeMiddleware(resolver ClaimsResolver) *ScopeMiddleware {
	return &ScopeMiddleware{resolver: resolver}
}

func (m *ScopeMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.resolver.Resolve(r)
		if err != nil {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventScopeRejected,
				Details: map[string]interface{}{"error": err.Error()},
			})
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		aud, err := tenancy.ParseAudience(claims.Audience)
		if err != nil {
			// An audience outside the closed enumeration is a configuration
			// bug upstream, not a permission problem. Reject loudly.
			log.Error().Err(err).Str("audience", claims.Audience).Msg("scope middleware: unknown audience")
			audit.LogFromRequest(r, audit.Event{
				Type:     audit.EventUnknownAudience,
				TenantID: claims.TenantID,
				UserID:   claims.UserID,
				Audience: claims.Audience,
			})
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Invalid audience configuration",
			})
			return
		}

		sc := tenancy.SessionContext{
			TenantID: tenancy.TenantID(claims.TenantID),
			UserID:   tenancy.UserID(claims.UserID),
			Audience: aud,
		}
		if err := sc.Validate(); err != nil {
			log.Error().Err(err).Msg("scope middleware: malformed claims")
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "Malformed identity claims",
			})
			return
		}

		ctx := context.WithValue(r.Context(), ScopeContextKey, sc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAudience gates a route subtree to specific audiences. The trusted
// service audience is always refused here: it exists for migrations and
// fixtures, never for request handling.
func RequireAudience(audiences ...tenancy.Audience) func(http.Handler) http.Handler {
	allowed := make(map[tenancy.Audience]bool, len(audiences))
	for _, a := range audiences {
		allowed[a] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, ok := GetScope(r.Context())
			if !ok {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"error": "Unauthorized",
				})
				return
			}
			if sc.Audience == tenancy.AudienceTrustedService || !allowed[sc.Audience] {
				writeJSON(w, http.StatusForbidden, map[string]string{
					"error": "Forbidden",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ErrMissingClaims is returned by resolvers when no identity is present.
var ErrMissingClaims = errors.New("missing identity claims")
