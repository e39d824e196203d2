package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

type categoryFixture struct {
	svc        *CategoryService
	categories *stubCategoryRepo
	tasks      *stubTaskRepo
	users      *stubUserRepo
}

func newCategoryFixture() *categoryFixture {
	categories := newStubCategoryRepo()
	tasks := newStubTaskRepo(nil)
	return &categoryFixture{
		svc:        NewCategoryService(categories, tasks, zerolog.Nop()),
		categories: categories,
		tasks:      tasks,
		users:      newStubUserRepo(),
	}
}

func TestCategoryService_Create_Success(t *testing.T) {
	f := newCategoryFixture()

	category, err := f.svc.Create(context.Background(), "gardening")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.ID == "" || category.Name != "gardening" {
		t.Fatalf("unexpected category: %+v", category)
	}
}

func TestCategoryService_Create_EmptyName(t *testing.T) {
	f := newCategoryFixture()

	_, err := f.svc.Create(context.Background(), "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCategoryService_Create_Duplicate(t *testing.T) {
	f := newCategoryFixture()

	if _, err := f.svc.Create(context.Background(), "gardening"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := f.svc.Create(context.Background(), "gardening"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryService_Create_NameIsCaseSensitive(t *testing.T) {
	f := newCategoryFixture()

	if _, err := f.svc.Create(context.Background(), "gardening"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := f.svc.Create(context.Background(), "Gardening"); err != nil {
		t.Fatalf("differently-cased name should be a distinct category, got %v", err)
	}
}

func TestCategoryService_Update_RenameCollision(t *testing.T) {
	f := newCategoryFixture()

	first, err := f.svc.Create(context.Background(), "gardening")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.svc.Create(context.Background(), "diy"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.svc.Update(context.Background(), first.ID, "diy"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists on collision, got %v", err)
	}
}

func TestCategoryService_Update_SameNameIsNoop(t *testing.T) {
	f := newCategoryFixture()

	category, err := f.svc.Create(context.Background(), "gardening")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	same, err := f.svc.Update(context.Background(), category.ID, "gardening")
	if err != nil {
		t.Fatalf("renaming to the current name should succeed, got %v", err)
	}
	if same.ID != category.ID || same.Name != "gardening" {
		t.Fatalf("unexpected category after noop rename: %+v", same)
	}
}

func TestCategoryService_Delete_InUseReportsCount(t *testing.T) {
	f := newCategoryFixture()
	poster := seedUser(t, f.users, "alice")

	category, err := f.svc.Create(context.Background(), "gardening")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusOpen, time.Now().UTC())
	seedTask(t, f.tasks, poster.ID, category.ID, domain.TaskStatusCompleted, time.Now().UTC())

	err = f.svc.Delete(context.Background(), category.ID)
	var inUse *domain.CategoryInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("expected CategoryInUseError, got %v", err)
	}
	if inUse.Count != 2 {
		t.Fatalf("expected count 2, got %d", inUse.Count)
	}
	if inUse.Error() != "cannot delete category: it has 2 associated tasks" {
		t.Fatalf("unexpected message: %s", inUse.Error())
	}

	// The category must survive a refused delete.
	if _, err := f.categories.FindByID(context.Background(), category.ID); err != nil {
		t.Fatalf("category should still exist: %v", err)
	}
}

func TestCategoryService_Delete_Unused(t *testing.T) {
	f := newCategoryFixture()

	category, err := f.svc.Create(context.Background(), "gardening")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := f.svc.Delete(context.Background(), category.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := f.categories.FindByID(context.Background(), category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("category should be gone, got %v", err)
	}
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	f := newCategoryFixture()

	if err := f.svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_ListWithCounts(t *testing.T) {
	f := newCategoryFixture()
	poster := seedUser(t, f.users, "alice")

	gardening, err := f.svc.Create(context.Background(), "gardening")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.svc.Create(context.Background(), "diy"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	seedTask(t, f.tasks, poster.ID, gardening.ID, domain.TaskStatusOpen, time.Now().UTC())

	counts, err := f.svc.ListWithCounts(context.Background())
	if err != nil {
		t.Fatalf("ListWithCounts failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(counts))
	}
	// List is name-ordered: diy before gardening.
	if counts[0].Name != "diy" || counts[0].TaskCount != 0 {
		t.Fatalf("unexpected first row: %+v", counts[0])
	}
	if counts[1].Name != "gardening" || counts[1].TaskCount != 1 {
		t.Fatalf("unexpected second row: %+v", counts[1])
	}
}
