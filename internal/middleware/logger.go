package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs one line per request. Tenant and user ids are logged
// when a scope was resolved; response bodies never are.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		evt := log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start))

		if sc, ok := GetScope(r.Context()); ok {
			evt = evt.Str("audience", string(sc.Audience))
			if sc.TenantID != "" {
				evt = evt.Str("tenant_id", string(sc.TenantID))
			}
		}

		evt.Msg("request")
	})
}
