package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
	"github.com/kmwenda/stocktrack-backend/internal/modules/auth"
)

// stubService records the filters the handler parsed out of the query.
type stubService struct {
	Service
	lastFilters Filters
}

func (s *stubService) ListItems(ctx context.Context, actor access.Actor, f Filters, p PageRequest) (*Page, error) {
	s.lastFilters = f
	return &Page{Items: []*Item{}, Page: p.Page, PerPage: p.PerPage}, nil
}

func listRequest(t *testing.T, svc Service, query string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(router)

	admin := access.Actor{ID: uuid.New(), Name: "Ada Admin", Role: access.RoleAdmin}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory-items"+query, nil)
	req = req.WithContext(auth.WithActor(req.Context(), admin))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListItems_FilterParsing(t *testing.T) {
	svc := &stubService{}

	rec := listRequest(t, svc, "?below_min_stock=true&category=electronics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !svc.lastFilters.BelowMinStock {
		t.Error("below_min_stock=true was not applied")
	}
	if svc.lastFilters.Category != CategoryElectronics {
		t.Errorf("category = %q, want electronics", svc.lastFilters.Category)
	}
}

func TestListItems_RejectsMalformedFilters(t *testing.T) {
	for _, query := range []string{
		"?below_min_stock=banana",
		"?category=weapons",
		"?warehouse_id=not-a-uuid",
	} {
		if rec := listRequest(t, &stubService{}, query); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, rec.Code)
		}
	}
}
