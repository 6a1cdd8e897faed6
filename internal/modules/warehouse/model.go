package warehouse

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse represents a physical storage location that owns users and
// inventory items.
type Warehouse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
