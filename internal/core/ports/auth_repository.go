package ports

import (
	"context"

	"github.com/backoffice/catalog-api/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
type AuthRepository interface {
	// FindByUsername retrieves a user by username. When activeOnly is true
	// the lookup is restricted to active accounts.
	FindByUsername(ctx context.Context, username string, activeOnly bool) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
