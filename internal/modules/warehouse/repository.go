package warehouse

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines warehouse data storage.
type Repository interface {
	CreateWarehouse(ctx context.Context, w *Warehouse) error
	GetWarehouseByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	ListWarehouses(ctx context.Context) ([]*Warehouse, error)
	DeleteWarehouse(ctx context.Context, id uuid.UUID) error
	// Exists reports whether a warehouse with the given id is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
