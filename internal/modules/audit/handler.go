package audit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmwenda/stocktrack-backend/internal/modules/auth"
)

// Handler exposes audit log HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/audit-logs", h.listLogs)
}

func (h *Handler) listLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}

	var f Filters
	if kind := r.URL.Query().Get("type"); kind != "" {
		f.Kind = Kind(kind)
		if !f.Kind.Valid() {
			respond(w, http.StatusBadRequest, map[string]string{"error": "unknown audit log type"})
			return
		}
	}
	if wid := r.URL.Query().Get("warehouse_id"); wid != "" {
		parsed, err := uuid.Parse(wid)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid warehouse_id"})
			return
		}
		f.WarehouseID = &parsed
	}

	page, err := h.service.ListLogs(r.Context(), actor, f, pageParams(r))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, page)
}

func pageParams(r *http.Request) PageRequest {
	p := PageRequest{Page: 1, PerPage: 15}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		if v > 100 {
			v = 100
		}
		p.PerPage = v
	}
	return p
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
