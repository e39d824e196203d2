package ports

import (
	"context"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// ApplicationRepository defines persistence operations for task applications.
// The store holds a unique index on (task_id, applicant_id); Create surfaces a
// violation as domain.ErrAlreadyApplied, which closes the check-then-create
// race between concurrent Apply calls.
type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) (*domain.Application, error)
	FindByTaskAndApplicant(ctx context.Context, taskID, applicantID string) (*domain.Application, error)
	// ListByTask returns all applications for a task, newest first.
	ListByTask(ctx context.Context, taskID string) ([]*domain.Application, error)
	// ListByApplicant returns all applications submitted by a user, newest first.
	ListByApplicant(ctx context.Context, applicantID string) ([]*domain.Application, error)
	// UpdateStatus atomically sets the status of the application identified by
	// (applicationID, taskID). Returns domain.ErrApplicationNotFound when the
	// pair does not resolve.
	UpdateStatus(ctx context.Context, taskID, applicationID string, status domain.ApplicationStatus) (*domain.Application, error)
	Count(ctx context.Context) (int64, error)
}
