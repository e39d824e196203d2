package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

// ApplicationService implements the application engine: apply, list, decide.
type ApplicationService struct {
	apps       ports.ApplicationRepository
	tasks      ports.TaskRepository
	users      ports.UserRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewApplicationService(apps ports.ApplicationRepository, tasks ports.TaskRepository, users ports.UserRepository, categories ports.CategoryRepository, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, tasks: tasks, users: users, categories: categories, logger: logger}
}

// Apply submits a pending application against an open task. The rules, in
// order: the task must exist, must be open, must not be the actor's own, and
// the actor must not have applied before. The store's unique index on
// (task_id, applicant_id) closes the race between concurrent calls.
func (s *ApplicationService) Apply(ctx context.Context, actor domain.Identity, taskID, message string) (*domain.Application, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != domain.TaskStatusOpen {
		return nil, domain.ErrTaskNotOpen
	}
	if task.PosterID == actor.UserID {
		return nil, domain.ErrSelfApplication
	}

	if _, err := s.apps.FindByTaskAndApplicant(ctx, taskID, actor.UserID); err == nil {
		return nil, domain.ErrAlreadyApplied
	} else if !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	app, err := s.apps.Create(ctx, &domain.Application{
		TaskID:      taskID,
		ApplicantID: actor.UserID,
		Message:     message,
		Status:      domain.ApplicationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to create application")
		return nil, err
	}

	s.logger.Info().Str("application_id", app.ID).Str("task_id", taskID).Str("applicant_id", actor.UserID).Msg("application submitted")
	return app, nil
}

// ListForTask returns a task's applications, newest first. Only the poster
// may view them.
func (s *ApplicationService) ListForTask(ctx context.Context, actor domain.Identity, taskID string) ([]ports.ApplicationSummary, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.PosterID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	apps, err := s.apps.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return buildApplicationSummaries(ctx, apps, s.users)
}

// ListMine returns the actor's applications, newest first, each with the
// targeted task (poster and category resolved) embedded.
func (s *ApplicationService) ListMine(ctx context.Context, actor domain.Identity) ([]ports.ApplicationWithTask, error) {
	apps, err := s.apps.ListByApplicant(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	taskIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		taskIDs = append(taskIDs, a.TaskID)
	}
	tasks, err := s.tasks.FindByIDs(ctx, taskIDs)
	if err != nil {
		return nil, err
	}

	taskList := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		taskList = append(taskList, t)
	}
	summaries, err := buildTaskSummaries(ctx, taskList, s.users, s.categories)
	if err != nil {
		return nil, err
	}
	summaryByID := make(map[string]ports.TaskSummary, len(summaries))
	for _, ts := range summaries {
		summaryByID[ts.ID] = ts
	}

	result := make([]ports.ApplicationWithTask, 0, len(apps))
	for _, a := range apps {
		result = append(result, ports.ApplicationWithTask{
			ID:        a.ID,
			Message:   a.Message,
			Status:    string(a.Status),
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
			Task:      summaryByID[a.TaskID],
		})
	}
	return result, nil
}

// Decide sets an application's status to accepted or rejected. Only the
// task's poster may decide. A decision may be overwritten by a later one, and
// accepting neither closes the task nor touches sibling applications.
func (s *ApplicationService) Decide(ctx context.Context, actor domain.Identity, taskID, applicationID, decision string) (*ports.ApplicationSummary, error) {
	status := domain.ApplicationStatus(decision)
	if !status.IsDecision() {
		return nil, domain.NewValidationError("status")
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.PosterID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	app, err := s.apps.UpdateStatus(ctx, taskID, applicationID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("application_id", applicationID).
		Str("task_id", taskID).
		Str("decision", decision).
		Msg("application decided")

	applicant, err := s.users.FindByID(ctx, app.ApplicantID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	summary := toApplicationSummary(app, applicant)
	return &summary, nil
}
