package audit

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a recorded domain event.
type Kind string

const (
	KindItemCreated   Kind = "item_created"
	KindItemUpdated   Kind = "item_updated"
	KindItemDeleted   Kind = "item_deleted"
	KindItemRestored  Kind = "item_restored"
	KindStockAdjusted Kind = "stock_adjusted"
)

// Valid reports whether k is one of the known event kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindItemCreated, KindItemUpdated, KindItemDeleted, KindItemRestored, KindStockAdjusted:
		return true
	}
	return false
}

// Log is one immutable entry in the audit trail. UserName is a snapshot of
// the acting user's name at record time so the entry survives user deletion.
// ItemID is nil when the entry outlives the item it described.
type Log struct {
	ID          uuid.UUID  `json:"id"`
	UserName    string     `json:"user_name"`
	Kind        Kind       `json:"type"`
	Description string     `json:"description"`
	WarehouseID uuid.UUID  `json:"warehouse_id"`
	UserID      uuid.UUID  `json:"user_id"`
	ItemID      *uuid.UUID `json:"inventory_item_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
