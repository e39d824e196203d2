package service

import (
	"context"

	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

// View assembly shared by the task, application and admin services: tasks and
// applications are stored with bare references, so the related users and
// categories are batch-fetched and embedded here.

func toUserSummary(u *domain.User) ports.UserSummary {
	if u == nil {
		return ports.UserSummary{}
	}
	return ports.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toCategorySummary(c *domain.Category) ports.CategorySummary {
	if c == nil {
		return ports.CategorySummary{}
	}
	return ports.CategorySummary{ID: c.ID, Name: c.Name}
}

func toTaskSummary(t *domain.Task, poster *domain.User, category *domain.Category) ports.TaskSummary {
	return ports.TaskSummary{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Price:       t.Price,
		Location:    t.Location,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Poster:      toUserSummary(poster),
		Category:    toCategorySummary(category),
	}
}

func toApplicationSummary(a *domain.Application, applicant *domain.User) ports.ApplicationSummary {
	return ports.ApplicationSummary{
		ID:        a.ID,
		Message:   a.Message,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Applicant: toUserSummary(applicant),
	}
}

// buildTaskSummaries resolves posters and categories for a batch of tasks.
func buildTaskSummaries(ctx context.Context, tasks []*domain.Task, users ports.UserRepository, categories ports.CategoryRepository) ([]ports.TaskSummary, error) {
	userIDs := make([]string, 0, len(tasks))
	categoryIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		userIDs = append(userIDs, t.PosterID)
		categoryIDs = append(categoryIDs, t.CategoryID)
	}

	posters, err := users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	cats, err := categories.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		summaries = append(summaries, toTaskSummary(t, posters[t.PosterID], cats[t.CategoryID]))
	}
	return summaries, nil
}

// buildApplicationSummaries resolves applicants for a batch of applications.
func buildApplicationSummaries(ctx context.Context, apps []*domain.Application, users ports.UserRepository) ([]ports.ApplicationSummary, error) {
	applicantIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		applicantIDs = append(applicantIDs, a.ApplicantID)
	}

	applicants, err := users.FindByIDs(ctx, applicantIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.ApplicationSummary, 0, len(apps))
	for _, a := range apps {
		summaries = append(summaries, toApplicationSummary(a, applicants[a.ApplicantID]))
	}
	return summaries, nil
}
