package access

import (
	"testing"

	"github.com/google/uuid"
)

func actorWith(role Role, warehouseID *uuid.UUID) Actor {
	return Actor{ID: uuid.New(), Name: "test", Role: role, WarehouseID: warehouseID}
}

func TestCanViewWarehouse(t *testing.T) {
	w1 := uuid.New()
	w2 := uuid.New()

	cases := []struct {
		name      string
		actor     Actor
		warehouse uuid.UUID
		want      bool
	}{
		{"admin sees any warehouse", actorWith(RoleAdmin, nil), w1, true},
		{"manager sees own warehouse", actorWith(RoleWarehouseManager, &w1), w1, true},
		{"manager blocked from other warehouse", actorWith(RoleWarehouseManager, &w1), w2, false},
		{"staff sees own warehouse", actorWith(RoleStaff, &w1), w1, true},
		{"staff blocked from other warehouse", actorWith(RoleStaff, &w1), w2, false},
		{"manager without affiliation sees nothing", actorWith(RoleWarehouseManager, nil), w1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanViewWarehouse(tc.actor, tc.warehouse); got != tc.want {
				t.Errorf("CanViewWarehouse = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanManageInventory(t *testing.T) {
	w := uuid.New()
	if !CanManageInventory(actorWith(RoleAdmin, nil)) {
		t.Error("admin should manage inventory")
	}
	if !CanManageInventory(actorWith(RoleWarehouseManager, &w)) {
		t.Error("manager should manage inventory")
	}
	if CanManageInventory(actorWith(RoleStaff, &w)) {
		t.Error("staff should not manage inventory")
	}
}

func TestCanDeleteInventory(t *testing.T) {
	w := uuid.New()
	if !CanDeleteInventory(actorWith(RoleAdmin, nil)) {
		t.Error("admin should delete inventory")
	}
	if CanDeleteInventory(actorWith(RoleWarehouseManager, &w)) {
		t.Error("manager should not delete inventory")
	}
	if CanDeleteInventory(actorWith(RoleStaff, &w)) {
		t.Error("staff should not delete inventory")
	}
}

func TestCanModifyItem(t *testing.T) {
	w := uuid.New()
	manager := actorWith(RoleWarehouseManager, &w)
	other := uuid.New()

	if !CanModifyItem(actorWith(RoleAdmin, nil), other) {
		t.Error("admin should modify any item")
	}
	if !CanModifyItem(manager, manager.ID) {
		t.Error("manager should modify own item")
	}
	if CanModifyItem(manager, other) {
		t.Error("manager should not modify another user's item")
	}
	if CanModifyItem(actorWith(RoleStaff, &w), other) {
		t.Error("staff should not modify items")
	}
}

func TestScopedWarehouse(t *testing.T) {
	w := uuid.New()
	if got, ok := ScopedWarehouse(actorWith(RoleAdmin, nil)); got != nil || !ok {
		t.Errorf("admin scope = (%v, %v), want (nil, true)", got, ok)
	}
	got, ok := ScopedWarehouse(actorWith(RoleStaff, &w))
	if !ok || got == nil || *got != w {
		t.Errorf("staff scope = (%v, %v), want (%v, true)", got, ok, w)
	}
	if _, ok := ScopedWarehouse(actorWith(RoleStaff, nil)); ok {
		t.Error("a non-admin without a warehouse must not be granted a scope")
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleWarehouseManager, RoleStaff} {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	if Role("supervisor").Valid() {
		t.Error("unknown role should be invalid")
	}
}
