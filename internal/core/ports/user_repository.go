package ports

import (
	"context"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// ListUsersFilter carries the admin user-listing query parameters.
type ListUsersFilter struct {
	Search string // optional: case-insensitive substring on name or email
	Role   string // optional: exact role filter
	Page   int    // 1-based
	Limit  int
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs resolves a batch of user ids, keyed by id. Missing ids are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.User, error)
}
