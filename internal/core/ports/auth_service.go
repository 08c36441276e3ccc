package ports

import (
	"context"

	"github.com/authcore/auth-service/internal/core/domain"
)

// AuthService orchestrates registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}
