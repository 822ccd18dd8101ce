package ports

import (
	"context"
	"time"

	"github.com/backoffice/catalog-api/internal/core/domain"
)

// LoginResult carries the issued token and the claims embedded in it.
type LoginResult struct {
	Token      string
	Expiration time.Time
	Username   string
	Role       string
	UserID     string
}

type AuthService interface {
	// Register creates a new account with the default role. The caller never
	// chooses the role.
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	// Login verifies credentials and issues a signed token. Every failure mode
	// (unknown user, inactive user, wrong password) surfaces as
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
