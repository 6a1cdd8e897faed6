package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	role := access.Role(req.Role)
	if req.Role == "" {
		role = access.RoleStaff
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %s", req.Role)
	}

	var warehouseID *uuid.UUID
	if req.WarehouseID != "" {
		wid, err := uuid.Parse(req.WarehouseID)
		if err != nil {
			return nil, fmt.Errorf("invalid warehouse_id: %w", err)
		}
		warehouseID = &wid
	}
	// Admins are warehouse-less; everyone else must belong to one.
	if role != access.RoleAdmin && warehouseID == nil {
		return nil, fmt.Errorf("warehouse_id is required for role %s", role)
	}
	if role == access.RoleAdmin {
		warehouseID = nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		WarehouseID:  warehouseID,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}
