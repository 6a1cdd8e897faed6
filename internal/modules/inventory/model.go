package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Category is the closed set of item categories.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFurniture   Category = "furniture"
	CategoryClothing    Category = "clothing"
	CategoryOther       Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryFurniture, CategoryClothing, CategoryOther:
		return true
	}
	return false
}

// Item is an inventory record owned by a warehouse. The warehouse is fixed
// at creation. DeletedAt marks a soft delete: the row stays for audit
// linkage but is excluded from normal queries.
type Item struct {
	ID            uuid.UUID  `json:"id"`
	WarehouseID   uuid.UUID  `json:"warehouse_id"`
	UserID        uuid.UUID  `json:"user_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Quantity      int        `json:"quantity"`
	MinStockLevel int        `json:"min_stock_level"`
	UnitPrice     float64    `json:"unit_price"`
	Category      Category   `json:"category"`
	Image         *string    `json:"image,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// IsLowStock is derived, never stored.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinStockLevel
}

// View is the API representation of an item, with the derived low-stock flag
// materialized for the consumer.
type View struct {
	Item
	IsLowStock bool `json:"is_low_stock"`
}

// NewView builds the API view of an item.
func NewView(i *Item) *View {
	return &View{Item: *i, IsLowStock: i.IsLowStock()}
}
