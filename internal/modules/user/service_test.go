package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
)

type mockRepo struct {
	created []*User
}

func (m *mockRepo) CreateUser(ctx context.Context, u *User) error {
	m.created = append(m.created, u)
	return nil
}

func (m *mockRepo) GetUserByID(ctx context.Context, id string) (*User, error) { return nil, nil }

func (m *mockRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return nil, nil
}

func (m *mockRepo) NotifiableUsers(ctx context.Context, warehouseID uuid.UUID) ([]*User, error) {
	return nil, nil
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	w := uuid.New()
	u, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Name:        "Sam Staff",
		Email:       "sam@example.com",
		Password:    "hunter2",
		Role:        "staff",
		WarehouseID: w.String(),
	})
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if u.PasswordHash == "hunter2" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if u.Role != access.RoleStaff {
		t.Errorf("role = %q, want staff", u.Role)
	}
}

func TestRegisterUser_NonAdminNeedsWarehouse(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Name:     "Mary",
		Email:    "mary@example.com",
		Password: "pw",
		Role:     "warehouse_manager",
	})
	if err == nil {
		t.Fatal("manager without warehouse_id should be rejected")
	}
}

func TestRegisterUser_AdminHasNoWarehouse(t *testing.T) {
	svc := NewService(&mockRepo{})
	u, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Name:        "Ada",
		Email:       "ada@example.com",
		Password:    "pw",
		Role:        "admin",
		WarehouseID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if u.WarehouseID != nil {
		t.Error("admin accounts carry no warehouse affiliation")
	}
}

func TestRegisterUser_UnknownRole(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "pw",
		Role:     "supervisor",
	})
	if err == nil {
		t.Fatal("unknown role should be rejected")
	}
}
