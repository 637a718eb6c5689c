package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/helmdesk/ops-server-go/internal/config"
	"github.com/helmdesk/ops-server-go/internal/database"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type HealthHandler struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// ServeHTTP reports liveness plus the store-side isolation state: row
// security enabled on every catalog table with the expected policies. A
// policy mismatch degrades the service to unhealthy because requests served
// without the policies would silently leak rows.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), config.DBPingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"error":  "database unreachable",
		})
		return
	}

	if err := tenancy.VerifyPolicies(ctx, h.db.DB); err != nil {
		log.Error().Err(err).Msg("health: policy verification failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"error":  "row policy verification failed",
		})
		return
	}

	stats, err := tenancy.Stats(ctx, h.db.DB)
	if err != nil {
		log.Error().Err(err).Msg("health: policy stats failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"error":  "row policy stats failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UnixMilli(),
		"isolation": stats,
	})
}
