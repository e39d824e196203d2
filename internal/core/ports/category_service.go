package ports

import (
	"context"
	"time"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// CategoryWithCount is the admin listing view including the number of tasks
// referencing each category.
type CategoryWithCount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	TaskCount int64     `json:"task_count"`
}

// CategoryService defines category use cases. Creation, rename and deletion
// are admin-only; the transport layer enforces the role.
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	ListWithCounts(ctx context.Context) ([]CategoryWithCount, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	// Update renames a category; the new name must not collide with a
	// different category.
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	// Delete removes a category only when no task references it; otherwise a
	// CategoryInUseError reporting the exact count is returned.
	Delete(ctx context.Context, id string) error
}
