package audit

import (
	"context"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
)

// Service exposes the audit trail to API consumers, applying the actor's
// warehouse scope before filters reach storage.
type Service interface {
	ListLogs(ctx context.Context, actor access.Actor, f Filters, p PageRequest) (*Page, error)
}

type service struct {
	repo Repository
}

// NewService creates a new audit service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListLogs(ctx context.Context, actor access.Actor, f Filters, p PageRequest) (*Page, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 15
	}
	// Non-admins only ever see their own warehouse, whatever filter they
	// sent. One without a warehouse sees nothing.
	scope, ok := access.ScopedWarehouse(actor)
	if !ok {
		return &Page{Logs: []*Log{}, Page: p.Page, PerPage: p.PerPage}, nil
	}
	if scope != nil {
		f.WarehouseID = scope
	}
	return s.repo.List(ctx, f, p)
}
