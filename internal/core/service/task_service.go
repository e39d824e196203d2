package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// TaskService implements the task lifecycle engine.
type TaskService struct {
	tasks      ports.TaskRepository
	apps       ports.ApplicationRepository
	users      ports.UserRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, apps ports.ApplicationRepository, users ports.UserRepository, categories ports.CategoryRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, apps: apps, users: users, categories: categories, logger: logger}
}

// normalizePaging clamps page/limit to sane values.
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// List returns a filtered, sorted page of tasks with posters and categories
// embedded. No identity is required.
func (s *TaskService) List(ctx context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page, limit := normalizePaging(input.Page, input.Limit)

	tasks, total, err := s.tasks.List(ctx, ports.ListTasksFilter{
		CategoryID:      input.CategoryID,
		Status:          input.Status,
		Search:          input.Search,
		SortOldestFirst: input.SortBy == "oldest",
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list tasks")
		return nil, err
	}

	items, err := buildTaskSummaries(ctx, tasks, s.users, s.categories)
	if err != nil {
		return nil, err
	}

	return &ports.ListTasksResult{
		Items:      items,
		Pagination: ports.NewPagination(total, page, limit),
	}, nil
}

// Get returns a single task with poster, category, and the full application
// list embedded.
func (s *TaskService) Get(ctx context.Context, id string) (*ports.TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, task)
}

// Create posts a new task. All five fields are required and the category must
// resolve; the task always starts open with the actor as poster.
func (s *TaskService) Create(ctx context.Context, actor domain.Identity, input ports.CreateTaskInput) (*ports.TaskSummary, error) {
	var missing []string
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if input.Price <= 0 {
		missing = append(missing, "price")
	}
	if input.Location == "" {
		missing = append(missing, "location")
	}
	if input.CategoryID == "" {
		missing = append(missing, "category_id")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, domain.ErrInvalidCategory
		}
		return nil, err
	}

	now := time.Now().UTC()
	task, err := s.tasks.Create(ctx, &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		Status:      domain.TaskStatusOpen,
		PosterID:    actor.UserID,
		CategoryID:  input.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("user_id", actor.UserID).Str("category", category.Name).Msg("task created")

	poster, _ := s.users.FindByID(ctx, actor.UserID)
	summary := toTaskSummary(task, poster, category)
	return &summary, nil
}

// Update applies a partial update. Only the poster may update; admins have no
// bypass on this path. A status change must follow the transition table.
func (s *TaskService) Update(ctx context.Context, actor domain.Identity, id string, input ports.UpdateTaskInput) (*ports.TaskSummary, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.PosterID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	upd := ports.TaskUpdate{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, domain.NewValidationError("price")
		}
		upd.Price = input.Price
	}
	if input.Status != nil {
		next := domain.TaskStatus(*input.Status)
		if !next.IsValid() {
			return nil, domain.NewValidationError("status")
		}
		if next != task.Status && !task.Status.CanTransitionTo(next) {
			return nil, domain.ErrInvalidTransition
		}
		upd.Status = &next
	}
	if input.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return nil, domain.ErrInvalidCategory
			}
			return nil, err
		}
		upd.CategoryID = input.CategoryID
	}

	updated, err := s.tasks.UpdateOwned(ctx, id, actor.UserID, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", id).Str("user_id", actor.UserID).Msg("task updated")

	poster, _ := s.users.FindByID(ctx, updated.PosterID)
	category, _ := s.categories.FindByID(ctx, updated.CategoryID)
	summary := toTaskSummary(updated, poster, category)
	return &summary, nil
}

// Delete removes a task and its applications. Only the poster may delete.
func (s *TaskService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task.PosterID != actor.UserID {
		return domain.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id, actor.UserID); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Str("user_id", actor.UserID).Msg("task deleted")
	return nil
}

// ListPostedBy returns the actor's tasks, newest first, with category and the
// full application list embedded.
func (s *TaskService) ListPostedBy(ctx context.Context, actor domain.Identity) ([]ports.TaskDetail, error) {
	tasks, err := s.tasks.ListByPoster(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	details := make([]ports.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		detail, err := s.buildDetail(ctx, t)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *TaskService) buildDetail(ctx context.Context, task *domain.Task) (*ports.TaskDetail, error) {
	poster, err := s.users.FindByID(ctx, task.PosterID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	category, err := s.categories.FindByID(ctx, task.CategoryID)
	if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	apps, err := s.apps.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	appSummaries, err := buildApplicationSummaries(ctx, apps, s.users)
	if err != nil {
		return nil, err
	}

	return &ports.TaskDetail{
		TaskSummary:  toTaskSummary(task, poster, category),
		Applications: appSummaries,
	}, nil
}
