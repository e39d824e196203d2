package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

type applicationFixture struct {
	svc        *ApplicationService
	apps       *stubApplicationRepo
	tasks      *stubTaskRepo
	users      *stubUserRepo
	categories *stubCategoryRepo
}

func newApplicationFixture() *applicationFixture {
	apps := newStubApplicationRepo()
	tasks := newStubTaskRepo(apps)
	users := newStubUserRepo()
	categories := newStubCategoryRepo()
	return &applicationFixture{
		svc:        NewApplicationService(apps, tasks, users, categories, zerolog.Nop()),
		apps:       apps,
		tasks:      tasks,
		users:      users,
		categories: categories,
	}
}

func TestApplicationService_Apply_Success(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	applicant := seedUser(t, f.users, "bob")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	app, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, "I can do this on Saturday")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if app.Status != domain.ApplicationStatusPending {
		t.Fatalf("expected pending, got %s", app.Status)
	}
	if app.TaskID != task.ID || app.ApplicantID != applicant.ID {
		t.Fatalf("application references wrong rows: %+v", app)
	}
}

func TestApplicationService_Apply_TaskNotOpen(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	applicant := seedUser(t, f.users, "bob")
	category := seedCategory(t, f.categories, "diy")

	for _, status := range []domain.TaskStatus{
		domain.TaskStatusAssigned,
		domain.TaskStatusCompleted,
		domain.TaskStatusCancelled,
	} {
		task := seedTask(t, f.tasks, poster.ID, category.ID, status, time.Now().UTC())
		if _, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, ""); !errors.Is(err, domain.ErrTaskNotOpen) {
			t.Fatalf("status %s: expected ErrTaskNotOpen, got %v", status, err)
		}
	}
}

func TestApplicationService_Apply_SelfApplication(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	if _, err := f.svc.Apply(context.Background(), identityOf(poster), task.ID, ""); !errors.Is(err, domain.ErrSelfApplication) {
		t.Fatalf("expected ErrSelfApplication, got %v", err)
	}
}

func TestApplicationService_Apply_Duplicate(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	applicant := seedUser(t, f.users, "bob")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	if _, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, "first"); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if _, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, "second"); !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}

	count, _ := f.apps.Count(context.Background())
	if count != 1 {
		t.Fatalf("expected exactly one application, got %d", count)
	}
}

func TestApplicationService_Apply_TaskNotFound(t *testing.T) {
	f := newApplicationFixture()
	applicant := seedUser(t, f.users, "bob")

	if _, err := f.svc.Apply(context.Background(), identityOf(applicant), "missing", ""); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestApplicationService_ListForTask_PosterOnly(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	applicant := seedUser(t, f.users, "bob")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	if _, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, "pick me"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := f.svc.ListForTask(context.Background(), identityOf(applicant), task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-poster, got %v", err)
	}

	apps, err := f.svc.ListForTask(context.Background(), identityOf(poster), task.ID)
	if err != nil {
		t.Fatalf("ListForTask failed: %v", err)
	}
	if len(apps) != 1 || apps[0].Applicant.ID != applicant.ID {
		t.Fatalf("unexpected applications: %+v", apps)
	}
}

func TestApplicationService_ListMine_EmbedsTask(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	applicant := seedUser(t, f.users, "bob")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	if _, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, "pick me"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	mine, err := f.svc.ListMine(context.Background(), identityOf(applicant))
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 application, got %d", len(mine))
	}
	if mine[0].Task.ID != task.ID {
		t.Fatalf("expected task embedded, got %+v", mine[0].Task)
	}
	if mine[0].Task.Poster.ID != poster.ID || mine[0].Task.Category.Name != "diy" {
		t.Fatalf("embedded task missing poster or category: %+v", mine[0].Task)
	}
}

func TestApplicationService_Decide_PosterOnly(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	applicant := seedUser(t, f.users, "bob")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	app, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := f.svc.Decide(context.Background(), identityOf(applicant), task.ID, app.ID, "accepted"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-poster, got %v", err)
	}

	decided, err := f.svc.Decide(context.Background(), identityOf(poster), task.ID, app.ID, "accepted")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if decided.Status != "accepted" {
		t.Fatalf("expected accepted, got %s", decided.Status)
	}
}

func TestApplicationService_Decide_InvalidDecision(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")

	_, err := f.svc.Decide(context.Background(), identityOf(poster), "t1", "a1", "pending")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for non-decision status, got %v", err)
	}
}

func TestApplicationService_Decide_OverwritesPreviousDecision(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	applicant := seedUser(t, f.users, "bob")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	app, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := f.svc.Decide(context.Background(), identityOf(poster), task.ID, app.ID, "accepted"); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}
	flipped, err := f.svc.Decide(context.Background(), identityOf(poster), task.ID, app.ID, "rejected")
	if err != nil {
		t.Fatalf("second decision failed: %v", err)
	}
	if flipped.Status != "rejected" {
		t.Fatalf("expected overwrite to rejected, got %s", flipped.Status)
	}
}

func TestApplicationService_Decide_DoesNotTouchTaskOrSiblings(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	first := seedUser(t, f.users, "bob")
	second := seedUser(t, f.users, "carol")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	accepted, err := f.svc.Apply(context.Background(), identityOf(first), task.ID, "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	sibling, err := f.svc.Apply(context.Background(), identityOf(second), task.ID, "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := f.svc.Decide(context.Background(), identityOf(poster), task.ID, accepted.ID, "accepted"); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	after, err := f.tasks.FindByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("task lookup failed: %v", err)
	}
	if after.Status != domain.TaskStatusOpen {
		t.Fatalf("accepting must not change task status, got %s", after.Status)
	}

	other, err := f.apps.FindByTaskAndApplicant(context.Background(), task.ID, second.ID)
	if err != nil {
		t.Fatalf("sibling lookup failed: %v", err)
	}
	if other.ID != sibling.ID || other.Status != domain.ApplicationStatusPending {
		t.Fatalf("sibling application must stay pending, got %+v", other)
	}
}

func TestApplicationService_Decide_WrongTaskPair(t *testing.T) {
	f := newApplicationFixture()
	poster := seedUser(t, f.users, "alice")
	applicant := seedUser(t, f.users, "bob")
	category := seedCategory(t, f.categories, "diy")
	task := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())
	otherTask := seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())

	app, err := f.svc.Apply(context.Background(), identityOf(applicant), task.ID, "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := f.svc.Decide(context.Background(), identityOf(poster), otherTask.ID, app.ID, "accepted"); !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound for mismatched pair, got %v", err)
	}
}
