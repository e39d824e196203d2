package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

// CategoryService implements category CRUD with the referential delete guard.
type CategoryService struct {
	categories ports.CategoryRepository
	tasks      ports.TaskRepository
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, tasks ports.TaskRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, tasks: tasks, logger: logger}
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// Get returns a single category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// ListWithCounts returns all categories with the number of referencing tasks.
func (s *CategoryService) ListWithCounts(ctx context.Context) ([]ports.CategoryWithCount, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ports.CategoryWithCount, 0, len(cats))
	for _, c := range cats {
		count, err := s.tasks.CountByCategory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, ports.CategoryWithCount{
			ID:        c.ID,
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
			TaskCount: count,
		})
	}
	return result, nil
}

// Create adds a new category. The name must be unique; the duplicate check is
// backed by the store's unique index, so concurrent creates cannot both win.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, domain.NewValidationError("name")
	}

	if _, err := s.categories.FindByName(ctx, name); err == nil {
		return nil, domain.ErrCategoryExists
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	category, err := s.categories.Create(ctx, &domain.Category{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID).Str("name", name).Msg("category created")
	return category, nil
}

// Update renames a category. Renaming to a name held by a different category
// fails with ErrCategoryExists.
func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	if name == "" {
		return nil, domain.NewValidationError("name")
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == category.Name {
		return category, nil
	}

	if existing, err := s.categories.FindByName(ctx, name); err == nil && existing.ID != id {
		return nil, domain.ErrCategoryExists
	} else if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	renamed, err := s.categories.Rename(ctx, id, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", id).Str("name", name).Msg("category renamed")
	return renamed, nil
}

// Delete removes a category only when no task references it. The error for a
// category in use reports the exact referencing-task count.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.tasks.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.CategoryInUseError{Count: count}
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}
