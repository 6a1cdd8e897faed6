package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
)

// ErrForbidden is returned when the actor may not administer warehouses.
var ErrForbidden = errors.New("forbidden")

// Service defines warehouse business logic. Creating and removing
// warehouses is an administrative action.
type Service interface {
	CreateWarehouse(ctx context.Context, actor access.Actor, req CreateWarehouseRequest) (*Warehouse, error)
	GetWarehouse(ctx context.Context, actor access.Actor, id string) (*Warehouse, error)
	ListWarehouses(ctx context.Context, actor access.Actor) ([]*Warehouse, error)
	DeleteWarehouse(ctx context.Context, actor access.Actor, id string) error
}

// CreateWarehouseRequest holds data for creating a warehouse.
type CreateWarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type service struct {
	repo Repository
}

// NewService creates a new warehouse service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateWarehouse(ctx context.Context, actor access.Actor, req CreateWarehouseRequest) (*Warehouse, error) {
	if actor.Role != access.RoleAdmin {
		return nil, ErrForbidden
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	w := &Warehouse{
		ID:       uuid.New(),
		Name:     req.Name,
		Location: req.Location,
	}
	if err := s.repo.CreateWarehouse(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) GetWarehouse(ctx context.Context, actor access.Actor, id string) (*Warehouse, error) {
	wid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid warehouse id: %w", err)
	}
	if !access.CanViewWarehouse(actor, wid) {
		return nil, ErrForbidden
	}
	return s.repo.GetWarehouseByID(ctx, wid)
}

func (s *service) ListWarehouses(ctx context.Context, actor access.Actor) ([]*Warehouse, error) {
	if actor.Role == access.RoleAdmin {
		return s.repo.ListWarehouses(ctx)
	}
	if actor.WarehouseID == nil {
		return nil, nil
	}
	w, err := s.repo.GetWarehouseByID(ctx, *actor.WarehouseID)
	if err != nil {
		return nil, err
	}
	return []*Warehouse{w}, nil
}

func (s *service) DeleteWarehouse(ctx context.Context, actor access.Actor, id string) error {
	if actor.Role != access.RoleAdmin {
		return ErrForbidden
	}
	wid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid warehouse id: %w", err)
	}
	return s.repo.DeleteWarehouse(ctx, wid)
}
