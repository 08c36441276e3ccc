package ports

import (
	"context"

	"github.com/authcore/auth-service/internal/core/domain"
)

// UserRepository persists user records keyed by unique email.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrEmailTaken when the unique email index is violated.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
