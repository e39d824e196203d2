package ports

import (
	"context"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// ListTasksInput carries the public task-listing parameters, already coerced
// by the transport layer (page defaults to 1, limit to 10).
type ListTasksInput struct {
	CategoryID string
	Search     string
	Status     string
	SortBy     string // "newest" (default) or "oldest"
	Page       int
	Limit      int
}

// ListTasksResult is one page of tasks with poster and category resolved.
type ListTasksResult struct {
	Items      []TaskSummary
	Pagination Pagination
}

// CreateTaskInput carries the data for posting a new task. All fields are
// required; the created task always starts open.
type CreateTaskInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
	CategoryID  string
}

// UpdateTaskInput carries a partial task update; nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Price       *float64
	Location    *string
	Status      *string
	CategoryID  *string
}

// TaskService defines the task lifecycle use cases.
type TaskService interface {
	List(ctx context.Context, input ListTasksInput) (*ListTasksResult, error)
	Get(ctx context.Context, id string) (*TaskDetail, error)
	Create(ctx context.Context, actor domain.Identity, input CreateTaskInput) (*TaskSummary, error)
	// Update is owner-gated; there is no admin bypass on this path.
	Update(ctx context.Context, actor domain.Identity, id string, input UpdateTaskInput) (*TaskSummary, error)
	// Delete is owner-gated. Admin deletion goes through AdminService.
	Delete(ctx context.Context, actor domain.Identity, id string) error
	// ListPostedBy returns the actor's own tasks with applications embedded.
	ListPostedBy(ctx context.Context, actor domain.Identity) ([]TaskDetail, error)
}
