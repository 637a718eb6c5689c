package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/helmdesk/ops-server-go/internal/errors"
	"github.com/helmdesk/ops-server-go/internal/middleware"
	"github.com/helmdesk/ops-server-go/internal/service"
)

type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Upload)
	r.Get("/{documentID}", h.Get)

	return r
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.GetScope(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("Missing session scope"))
		return
	}

	docs, err := h.svc.List(r.Context(), sc)
	if err != nil {
		log.Error().Err(err).Msg("failed to list documents")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.GetScope(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("Missing session scope"))
		return
	}

	doc, err := h.svc.Get(r.Context(), sc, chi.URLParam(r, "documentID"))
	if err != nil {
		log.Error().Err(err).Msg("failed to get document")
		writeError(w, err)
		return
	}
	if doc == nil {
		writeError(w, apperrors.NotFound("Document"))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.GetScope(r.Context())
	if !ok {
		writeError(w, apperrors.Unauthorized("Missing session scope"))
		return
	}

	var req struct {
		FileName    string  `json:"fileName"`
		ContentType string  `json:"contentType"`
		ByteSize    int64   `json:"byteSize"`
		WorkOrderID *string `json:"workOrderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	doc, err := h.svc.Upload(r.Context(), sc, req.FileName, req.ContentType, req.ByteSize, req.WorkOrderID)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload document")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}
