package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Filters narrows an item listing. Zero values are ignored.
type Filters struct {
	Category      Category
	WarehouseID   *uuid.UUID
	BelowMinStock bool
	Search        string // case-insensitive substring over name and description
}

// PageRequest selects a page of results.
type PageRequest struct {
	Page    int
	PerPage int
}

// Page is one page of items, newest first.
type Page struct {
	Items   []*Item `json:"data"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
}

// UpdateFields is a partial update: nil fields are left untouched.
type UpdateFields struct {
	Name          *string
	Description   *string
	Quantity      *int
	MinStockLevel *int
	UnitPrice     *float64
	Category      *Category
	Image         *string
}

// Repository defines inventory item storage. All reads exclude soft-deleted
// rows. Update and SoftDelete return pre-mutation snapshots so the caller
// can classify the change and describe the transition it replaced.
type Repository interface {
	List(ctx context.Context, f Filters, p PageRequest) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	Create(ctx context.Context, item *Item) error
	// Update applies fields atomically under a per-item lock and returns the
	// old and new snapshots of a single isolated transition.
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (old, updated *Item, err error)
	// SoftDelete tombstones the item and returns its last active snapshot.
	SoftDelete(ctx context.Context, id uuid.UUID) (*Item, error)
}
