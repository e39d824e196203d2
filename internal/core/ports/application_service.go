package ports

import (
	"context"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// ApplicationService defines the application engine use cases.
type ApplicationService interface {
	// Apply submits a pending application for an open task. Fails when the
	// task is not open, the actor posted the task, or the actor has already
	// applied.
	Apply(ctx context.Context, actor domain.Identity, taskID, message string) (*domain.Application, error)
	// ListForTask returns a task's applications; only the poster may call it.
	ListForTask(ctx context.Context, actor domain.Identity, taskID string) ([]ApplicationSummary, error)
	// ListMine returns the actor's applications with the targeted tasks embedded.
	ListMine(ctx context.Context, actor domain.Identity) ([]ApplicationWithTask, error)
	// Decide sets an application's status to accepted or rejected; only the
	// task's poster may decide. Re-deciding overwrites the previous decision
	// and has no effect on the task or sibling applications.
	Decide(ctx context.Context, actor domain.Identity, taskID, applicationID, decision string) (*ApplicationSummary, error)
}
