package ports

import (
	"context"
	"time"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// AdminUser is the oversight view of an account (no password hash).
type AdminUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStats aggregates the marketplace counters shown on the admin
// dashboard, plus the five most recent users and tasks.
type DashboardStats struct {
	TotalUsers        int64         `json:"total_users"`
	TotalTasks        int64         `json:"total_tasks"`
	TotalCategories   int64         `json:"total_categories"`
	TotalApplications int64         `json:"total_applications"`
	OpenTasks         int64         `json:"open_tasks"`
	CompletedTasks    int64         `json:"completed_tasks"`
	RecentUsers       []AdminUser   `json:"recent_users"`
	RecentTasks       []TaskSummary `json:"recent_tasks"`
}

// ListUsersInput carries the admin user-listing parameters.
type ListUsersInput struct {
	Search string
	Role   string
	Page   int
	Limit  int
}

// ListUsersResult is one page of users.
type ListUsersResult struct {
	Items      []AdminUser
	Pagination Pagination
}

// ListAdminTasksInput carries the admin task-listing parameters.
type ListAdminTasksInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ListAdminTasksResult is one page of tasks with applications embedded.
type ListAdminTasksResult struct {
	Items      []TaskDetail
	Pagination Pagination
}

// AdminService defines the cross-cutting oversight use cases. Role gating
// happens in the transport layer; the self-targeting guards live here.
type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	ListUsers(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	// UpdateUserRole changes a user's role; admins cannot change their own.
	UpdateUserRole(ctx context.Context, actor domain.Identity, userID, role string) (*AdminUser, error)
	// DeleteUser removes an account; admins cannot delete their own.
	DeleteUser(ctx context.Context, actor domain.Identity, userID string) error
	ListTasks(ctx context.Context, input ListAdminTasksInput) (*ListAdminTasksResult, error)
	// DeleteTask removes any task unconditionally, along with its applications.
	DeleteTask(ctx context.Context, taskID string) error
}

// StatsCache is a short-lived cache for the dashboard aggregate, so repeated
// dashboard loads do not fan out six counts per request.
type StatsCache interface {
	Get(ctx context.Context) (*DashboardStats, error)
	Set(ctx context.Context, stats *DashboardStats) error
}
