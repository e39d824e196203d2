package ports

import (
	"context"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
// The store holds a unique index on name; Create and Rename surface a
// violation as domain.ErrCategoryExists.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// FindByIDs resolves a batch of category ids, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	// List returns all categories ordered by name ascending.
	List(ctx context.Context) ([]*domain.Category, error)
	Rename(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
