package ports

import (
	"context"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// AuthService resolves credentials to accounts and issues bearer tokens.
type AuthService interface {
	// Register creates a new account with the user role.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the account.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
