package warehouse

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmwenda/stocktrack-backend/internal/modules/auth"
)

// Handler exposes warehouse HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/warehouses", func(r chi.Router) {
		r.Post("/", h.createWarehouse)
		r.Get("/", h.listWarehouses)
		r.Get("/{id}", h.getWarehouse)
		r.Delete("/{id}", h.deleteWarehouse)
	})
}

func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var req CreateWarehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	created, err := h.service.CreateWarehouse(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			respond(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	warehouses, err := h.service.ListWarehouses(r.Context(), actor)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, warehouses)
}

func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	wh, err := h.service.GetWarehouse(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			respond(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		respond(w, http.StatusNotFound, map[string]string{"error": "warehouse not found"})
		return
	}
	respond(w, http.StatusOK, wh)
}

func (h *Handler) deleteWarehouse(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	if err := h.service.DeleteWarehouse(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrForbidden) {
			respond(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
