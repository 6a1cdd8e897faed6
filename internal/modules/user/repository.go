package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines user data storage.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// NotifiableUsers returns every admin plus the warehouse managers of the
	// given warehouse, the recipient set for inventory notifications.
	NotifiableUsers(ctx context.Context, warehouseID uuid.UUID) ([]*User, error)
}
