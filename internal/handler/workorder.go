package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/helmdesk/ops-server-go/internal/errors"
	"github.com/helmdesk/ops-server-go/internal/middleware"
	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/service"
)

type WorkOrderHandler struct {
	svc *service.WorkOrderService
}

func NewWorkOrderHandler(svc *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{svc: svc}
}

func (h *WorkOrderHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{workOrderID}", h.Get)
	r.Patch("/{workOrderID}/status", h.UpdateStatus)

	return r
}

func (h *WorkOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.GetScope(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("Missing session scope"))
		return
	}

	orders, err := h.svc.List(r.Context(), sc)
	if err != nil {
		log.Error().Err(err).Msg("failed to list work orders")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"workOrders": orders})
}

func (h *WorkOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.GetScope(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("Missing session scope"))
		return
	}

	wo, err := h.svc.Get(r.Context(), sc, chi.URLParam(r, "workOrderID"))
	if err != nil {
		log.Error().Err(err).Msg("failed to get work order")
		writeError(w, err)
		return
	}
	if wo == nil {
		// Out of scope and nonexistent read identically.
		writeError(w, apperrors.NotFound("Work order"))
		return
	}

	writeJSON(w, http.StatusOK, wo)
}

func (h *WorkOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.GetScope(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("Missing session scope"))
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	wo, err := h.svc.Create(r.Context(), sc, req.Title)
	if err != nil {
		log.Error().Err(err).Msg("failed to create work order")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, wo)
}

func (h *WorkOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.GetScope(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("Missing session scope"))
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, apperrors.InvalidInput("status", "missing or malformed"))
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), sc, chi.URLParam(r, "workOrderID"), model.WorkOrderStatus(req.Status))
	if err != nil {
		log.Error().Err(err).Msg("failed to update work order status")
		writeError(w, err)
		return
	}
	if !updated {
		writeError(w, apperrors.NotFound("Work order"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
