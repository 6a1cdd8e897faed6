package auth

import (
	"context"

	"github.com/kmwenda/stocktrack-backend/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	// Authenticate resolves a signed token back to the user it was issued for.
	Authenticate(ctx context.Context, token string) (*user.User, error)
}
