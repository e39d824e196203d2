package ports

import (
	"context"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
type ListTasksFilter struct {
	CategoryID      string // optional: filter by category
	Status          string // optional: filter by task status
	Search          string // optional: case-insensitive substring on title or description
	SortOldestFirst bool   // default ordering is newest first
	Page            int    // 1-based
	Limit           int    // rows per page
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Location    *string
	Status      *domain.TaskStatus
	CategoryID  *string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// FindByIDs resolves a batch of task ids, keyed by id. Missing ids are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Task, error)
	// List returns a page of tasks matching filter and the total match count.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	// ListByPoster returns all tasks owned by posterID, newest first.
	ListByPoster(ctx context.Context, posterID string) ([]*domain.Task, error)
	// UpdateOwned applies upd to the task only if it is still owned by posterID;
	// the ownership check and the write share a single store snapshot. When
	// posterID no longer matches, domain.ErrTaskNotFound is returned.
	UpdateOwned(ctx context.Context, id, posterID string, upd TaskUpdate) (*domain.Task, error)
	// Delete removes the task and, explicitly, all its applications. A non-empty
	// posterID scopes the delete to that owner (same-snapshot ownership check);
	// an empty posterID deletes unconditionally (admin path).
	Delete(ctx context.Context, id, posterID string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
	// CountByCategory backs the category-deletion referential guard.
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	// ListRecent returns the most recently created tasks, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Task, error)
}
