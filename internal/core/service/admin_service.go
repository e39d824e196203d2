package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

const recentLimit = 5

// AdminService implements the cross-cutting oversight operations. Role gating
// happens in the transport layer; the self-targeting guards live here.
type AdminService struct {
	users      ports.UserRepository
	tasks      ports.TaskRepository
	apps       ports.ApplicationRepository
	categories ports.CategoryRepository
	statsCache ports.StatsCache
	logger     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, tasks ports.TaskRepository, apps ports.ApplicationRepository, categories ports.CategoryRepository, statsCache ports.StatsCache, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, tasks: tasks, apps: apps, categories: categories, statsCache: statsCache, logger: logger}
}

func toAdminUser(u *domain.User) ports.AdminUser {
	return ports.AdminUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// DashboardStats aggregates marketplace counters plus the five most recent
// users and tasks. Results are served from the stats cache when fresh.
func (s *AdminService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	if s.statsCache != nil {
		if cached, err := s.statsCache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	stats := &ports.DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalTasks, err = s.tasks.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalApplications, err = s.apps.Count(ctx); err != nil {
		return nil, err
	}
	if stats.OpenTasks, err = s.tasks.CountByStatus(ctx, domain.TaskStatusOpen); err != nil {
		return nil, err
	}
	if stats.CompletedTasks, err = s.tasks.CountByStatus(ctx, domain.TaskStatusCompleted); err != nil {
		return nil, err
	}

	recentUsers, err := s.users.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentUsers = make([]ports.AdminUser, 0, len(recentUsers))
	for _, u := range recentUsers {
		stats.RecentUsers = append(stats.RecentUsers, toAdminUser(u))
	}

	recentTasks, err := s.tasks.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	if stats.RecentTasks, err = buildTaskSummaries(ctx, recentTasks, s.users, s.categories); err != nil {
		return nil, err
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, stats); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache dashboard stats")
		}
	}
	return stats, nil
}

// ListUsers returns a page of accounts filtered by search and role.
func (s *AdminService) ListUsers(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	page, limit := normalizePaging(input.Page, input.Limit)

	users, total, err := s.users.List(ctx, ports.ListUsersFilter{
		Search: input.Search,
		Role:   input.Role,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]ports.AdminUser, 0, len(users))
	for _, u := range users {
		items = append(items, toAdminUser(u))
	}

	return &ports.ListUsersResult{
		Items:      items,
		Pagination: ports.NewPagination(total, page, limit),
	}, nil
}

// UpdateUserRole changes a user's role. Admins cannot change their own role.
func (s *AdminService) UpdateUserRole(ctx context.Context, actor domain.Identity, userID, role string) (*ports.AdminUser, error) {
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("role")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ID == actor.UserID {
		return nil, domain.ErrSelfRoleChange
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("role", role).Str("admin_id", actor.UserID).Msg("user role updated")

	result := toAdminUser(updated)
	return &result, nil
}

// DeleteUser removes an account. Admins cannot delete their own.
func (s *AdminService) DeleteUser(ctx context.Context, actor domain.Identity, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ID == actor.UserID {
		return domain.ErrSelfDelete
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("admin_id", actor.UserID).Msg("user deleted")
	return nil
}

// ListTasks returns a page of tasks with applications embedded.
func (s *AdminService) ListTasks(ctx context.Context, input ports.ListAdminTasksInput) (*ports.ListAdminTasksResult, error) {
	page, limit := normalizePaging(input.Page, input.Limit)

	tasks, total, err := s.tasks.List(ctx, ports.ListTasksFilter{
		Status: input.Status,
		Search: input.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	summaries, err := buildTaskSummaries(ctx, tasks, s.users, s.categories)
	if err != nil {
		return nil, err
	}

	items := make([]ports.TaskDetail, 0, len(tasks))
	for i, t := range tasks {
		apps, err := s.apps.ListByTask(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		appSummaries, err := buildApplicationSummaries(ctx, apps, s.users)
		if err != nil {
			return nil, err
		}
		items = append(items, ports.TaskDetail{
			TaskSummary:  summaries[i],
			Applications: appSummaries,
		})
	}

	return &ports.ListAdminTasksResult{
		Items:      items,
		Pagination: ports.NewPagination(total, page, limit),
	}, nil
}

// DeleteTask removes any task unconditionally, applications included. There
// is no ownership check on this path.
func (s *AdminService) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID, ""); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", taskID).Msg("task deleted by admin")
	return nil
}
