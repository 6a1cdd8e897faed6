package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
)

type captureRepo struct {
	lastFilters Filters
	lastPage    PageRequest
	listed      bool
}

func (c *captureRepo) Record(ctx context.Context, e Entry) (*Log, error) {
	return &Log{}, nil
}

func (c *captureRepo) List(ctx context.Context, f Filters, p PageRequest) (*Page, error) {
	c.listed = true
	c.lastFilters = f
	c.lastPage = p
	return &Page{Page: p.Page, PerPage: p.PerPage}, nil
}

func TestListLogs_ForcesNonAdminWarehouse(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo)

	own := uuid.New()
	other := uuid.New()
	manager := access.Actor{ID: uuid.New(), Role: access.RoleWarehouseManager, WarehouseID: &own}

	_, err := svc.ListLogs(context.Background(), manager, Filters{WarehouseID: &other}, PageRequest{Page: 1, PerPage: 15})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if repo.lastFilters.WarehouseID == nil || *repo.lastFilters.WarehouseID != own {
		t.Errorf("warehouse filter = %v, want forced to %s", repo.lastFilters.WarehouseID, own)
	}
}

func TestListLogs_UnaffiliatedNonAdminSeesNothing(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo)

	staff := access.Actor{ID: uuid.New(), Role: access.RoleStaff}
	page, err := svc.ListLogs(context.Background(), staff, Filters{}, PageRequest{Page: 1, PerPage: 15})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(page.Logs) != 0 {
		t.Errorf("staff without a warehouse saw %d logs, want 0", len(page.Logs))
	}
	if repo.listed {
		t.Error("storage must not be queried for an unaffiliated actor")
	}
}

func TestListLogs_AdminFilterPassesThrough(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo)

	target := uuid.New()
	admin := access.Actor{ID: uuid.New(), Role: access.RoleAdmin}

	_, err := svc.ListLogs(context.Background(), admin, Filters{Kind: KindStockAdjusted, WarehouseID: &target}, PageRequest{Page: 2, PerPage: 30})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if repo.lastFilters.WarehouseID == nil || *repo.lastFilters.WarehouseID != target {
		t.Errorf("admin warehouse filter = %v, want %s", repo.lastFilters.WarehouseID, target)
	}
	if repo.lastFilters.Kind != KindStockAdjusted {
		t.Errorf("kind filter = %q, want stock_adjusted", repo.lastFilters.Kind)
	}
}

func TestListLogs_ClampsPagination(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo)
	admin := access.Actor{ID: uuid.New(), Role: access.RoleAdmin}

	_, err := svc.ListLogs(context.Background(), admin, Filters{}, PageRequest{Page: 0, PerPage: 5000})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if repo.lastPage.Page != 1 || repo.lastPage.PerPage != 15 {
		t.Errorf("page = %+v, want defaults applied", repo.lastPage)
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindItemCreated, KindItemUpdated, KindItemDeleted, KindItemRestored, KindStockAdjusted} {
		if !k.Valid() {
			t.Errorf("kind %q should be valid", k)
		}
	}
	if Kind("item_exploded").Valid() {
		t.Error("unknown kind should be invalid")
	}
}
