package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
)

// User represents an account in the system. Non-admin users belong to
// exactly one warehouse; admins have no affiliation and see everything.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         access.Role `json:"role"`
	WarehouseID  *uuid.UUID  `json:"warehouse_id,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Actor converts the user into the identity value the policy and
// coordination layers operate on.
func (u *User) Actor() access.Actor {
	return access.Actor{
		ID:          u.ID,
		Name:        u.Name,
		Role:        u.Role,
		WarehouseID: u.WarehouseID,
	}
}
