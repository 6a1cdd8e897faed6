package access

import "github.com/google/uuid"

// Role is the closed set of user roles. Every policy decision switches on it
// exhaustively, so a new role cannot slip past an access check unnoticed.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleWarehouseManager Role = "warehouse_manager"
	RoleStaff            Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWarehouseManager, RoleStaff:
		return true
	}
	return false
}

// Actor is the authenticated identity performing an operation. Non-admin
// actors always carry a warehouse affiliation; admins have none and see all
// warehouses.
type Actor struct {
	ID          uuid.UUID
	Name        string
	Role        Role
	WarehouseID *uuid.UUID
}

// CanViewWarehouse reports whether the actor may read data scoped to the
// given warehouse.
func CanViewWarehouse(actor Actor, warehouseID uuid.UUID) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleWarehouseManager, RoleStaff:
		return actor.WarehouseID != nil && *actor.WarehouseID == warehouseID
	}
	return false
}

// CanManageInventory reports whether the actor may create or update
// inventory items.
func CanManageInventory(actor Actor) bool {
	switch actor.Role {
	case RoleAdmin, RoleWarehouseManager:
		return true
	case RoleStaff:
		return false
	}
	return false
}

// CanDeleteInventory reports whether the actor may delete inventory items.
func CanDeleteInventory(actor Actor) bool {
	return actor.Role == RoleAdmin
}

// CanModifyItem reports whether the actor may update the item owned by
// creatorID. Managers may only modify items they created themselves.
func CanModifyItem(actor Actor, creatorID uuid.UUID) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleWarehouseManager:
		return actor.ID == creatorID
	case RoleStaff:
		return false
	}
	return false
}

// ScopedWarehouse returns the warehouse filter an actor's list queries must
// be constrained to: nil for admins (all warehouses), the actor's own
// warehouse otherwise. ok is false for a non-admin with no warehouse
// affiliation, who may not see any inventory at all.
func ScopedWarehouse(actor Actor) (scope *uuid.UUID, ok bool) {
	if actor.Role == RoleAdmin {
		return nil, true
	}
	if actor.WarehouseID == nil {
		return nil, false
	}
	return actor.WarehouseID, true
}
