package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmwenda/stocktrack-backend/internal/modules/auth"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/inventory-items", func(r chi.Router) {
		r.Get("/", h.listItems)
		r.Post("/", h.createItem)
		r.Get("/{id}", h.getItem)
		r.Put("/{id}", h.updateItem)
		r.Delete("/{id}", h.deleteItem)
	})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}

	var f Filters
	q := r.URL.Query()
	if c := q.Get("category"); c != "" {
		f.Category = Category(c)
		if !f.Category.Valid() {
			respond(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
			return
		}
	}
	if wid := q.Get("warehouse_id"); wid != "" {
		parsed, err := uuid.Parse(wid)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid warehouse_id"})
			return
		}
		f.WarehouseID = &parsed
	}
	if b := q.Get("below_min_stock"); b != "" {
		below, err := strconv.ParseBool(b)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid below_min_stock"})
			return
		}
		f.BelowMinStock = below
	}
	f.Search = q.Get("search")

	page, err := h.service.ListItems(r.Context(), actor, f, pageParams(r))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	views := make([]*View, 0, len(page.Items))
	for _, item := range page.Items {
		views = append(views, NewView(item))
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"data":     views,
		"total":    page.Total,
		"page":     page.Page,
		"per_page": page.PerPage,
	})
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	item, err := h.service.GetItem(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, NewView(item))
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.CreateItem(r.Context(), actor, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, NewView(item))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.UpdateItem(r.Context(), actor, chi.URLParam(r, "id"), req); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "inventory item updated successfully"})
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	if err := h.service.DeleteItem(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "inventory item deleted successfully"})
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

func respondError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrForbidden):
		respond(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, ErrNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": "inventory item not found"})
	case errors.Is(err, ErrConflict):
		respond(w, http.StatusConflict, map[string]string{"error": "conflicting write, retry the request"})
	default:
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
