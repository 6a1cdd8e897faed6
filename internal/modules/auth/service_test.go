package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
	"github.com/kmwenda/stocktrack-backend/internal/modules/user"
)

type mockUserRepo struct {
	byEmail map[string]*user.User
	byID    map[string]*user.User
}

func newMockUserRepo(users ...*user.User) *mockUserRepo {
	m := &mockUserRepo{byEmail: make(map[string]*user.User), byID: make(map[string]*user.User)}
	for _, u := range users {
		m.byEmail[u.Email] = u
		m.byID[u.ID.String()] = u
	}
	return m
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return u, nil
}

func (m *mockUserRepo) NotifiableUsers(ctx context.Context, warehouseID uuid.UUID) ([]*user.User, error) {
	return nil, nil
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestLoginAndAuthenticateRoundTrip(t *testing.T) {
	w := uuid.New()
	u := &user.User{
		ID:           uuid.New(),
		Name:         "Mary Manager",
		Email:        "mary@example.com",
		PasswordHash: hashed(t, "s3cret"),
		Role:         access.RoleWarehouseManager,
		WarehouseID:  &w,
	}
	svc := NewService(newMockUserRepo(u), "test-secret")

	token, err := svc.Login(context.Background(), "mary@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	got, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("authenticated user = %s, want %s", got.ID, u.ID)
	}
	actor := got.Actor()
	if actor.Role != access.RoleWarehouseManager || actor.WarehouseID == nil || *actor.WarehouseID != w {
		t.Errorf("actor = %+v, want manager of %s", actor, w)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	u := &user.User{
		ID:           uuid.New(),
		Email:        "mary@example.com",
		PasswordHash: hashed(t, "s3cret"),
		Role:         access.RoleAdmin,
	}
	svc := NewService(newMockUserRepo(u), "test-secret")

	if _, err := svc.Login(context.Background(), "mary@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newMockUserRepo(), "test-secret")
	if _, err := svc.Login(context.Background(), "ghost@example.com", "any"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_RejectsTamperedToken(t *testing.T) {
	u := &user.User{
		ID:           uuid.New(),
		Email:        "mary@example.com",
		PasswordHash: hashed(t, "s3cret"),
		Role:         access.RoleAdmin,
	}
	repo := newMockUserRepo(u)
	svc := NewService(repo, "test-secret")
	other := NewService(repo, "another-secret")

	token, err := svc.Login(context.Background(), "mary@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := other.Authenticate(context.Background(), token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}
