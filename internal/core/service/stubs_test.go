package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

// In-memory stand-ins for the Mongo repositories. They mirror the store
// contracts the services rely on: unique indexes surface as the matching
// conflict errors, list results come back newest first, and ownership-scoped
// writes check the filter and the write against the same map state.

// --- users ---

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(u)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	result := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result[id] = cloneUser(u)
		}
	}
	return result, nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), needle) &&
				!strings.Contains(strings.ToLower(u.Email), needle) {
				continue
			}
		}
		matched = append(matched, cloneUser(u))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return pageSlice(matched, filter.Page, filter.Limit), total, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) ListRecent(_ context.Context, limit int) ([]*domain.User, error) {
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// --- categories ---

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	seq        int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func cloneCategory(c *domain.Category) *domain.Category {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return nil, domain.ErrCategoryExists
		}
	}
	copy := cloneCategory(c)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("c%d", r.seq)
	}
	r.categories[copy.ID] = cloneCategory(copy)
	return copy, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Category, error) {
	result := make(map[string]*domain.Category)
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			result[id] = cloneCategory(c)
		}
	}
	return result, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return cloneCategory(c), nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	all := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		all = append(all, cloneCategory(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *stubCategoryRepo) Rename(_ context.Context, id, name string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	for otherID, other := range r.categories {
		if otherID != id && other.Name == name {
			return nil, domain.ErrCategoryExists
		}
	}
	c.Name = name
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.categories)), nil
}

// --- applications ---

type stubApplicationRepo struct {
	apps map[string]*domain.Application
	seq  int
}

func newStubApplicationRepo() *stubApplicationRepo {
	return &stubApplicationRepo{apps: make(map[string]*domain.Application)}
}

func cloneApplication(a *domain.Application) *domain.Application {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) (*domain.Application, error) {
	for _, existing := range r.apps {
		if existing.TaskID == a.TaskID && existing.ApplicantID == a.ApplicantID {
			return nil, domain.ErrAlreadyApplied
		}
	}
	copy := cloneApplication(a)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("a%d", r.seq)
	}
	r.apps[copy.ID] = cloneApplication(copy)
	return copy, nil
}

func (r *stubApplicationRepo) FindByTaskAndApplicant(_ context.Context, taskID, applicantID string) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.TaskID == taskID && a.ApplicantID == applicantID {
			return cloneApplication(a), nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubApplicationRepo) ListByTask(_ context.Context, taskID string) ([]*domain.Application, error) {
	var matched []*domain.Application
	for _, a := range r.apps {
		if a.TaskID == taskID {
			matched = append(matched, cloneApplication(a))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *stubApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]*domain.Application, error) {
	var matched []*domain.Application
	for _, a := range r.apps {
		if a.ApplicantID == applicantID {
			matched = append(matched, cloneApplication(a))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, taskID, applicationID string, status domain.ApplicationStatus) (*domain.Application, error) {
	a, ok := r.apps[applicationID]
	if !ok || a.TaskID != taskID {
		return nil, domain.ErrApplicationNotFound
	}
	a.Status = status
	return cloneApplication(a), nil
}

func (r *stubApplicationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.apps)), nil
}

// --- tasks ---

type stubTaskRepo struct {
	tasks map[string]*domain.Task
	apps  *stubApplicationRepo // Delete cascades into this, like the real store
	seq   int
}

func newStubTaskRepo(apps *stubApplicationRepo) *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task), apps: apps}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	copy := cloneTask(t)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("t%d", r.seq)
	}
	r.tasks[copy.ID] = cloneTask(copy)
	return copy, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Task, error) {
	result := make(map[string]*domain.Task)
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			result[id] = cloneTask(t)
		}
	}
	return result, nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	var matched []*domain.Task
	for _, t := range r.tasks {
		if filter.CategoryID != "" && t.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		matched = append(matched, cloneTask(t))
	}
	sort.Slice(matched, func(i, j int) bool {
		if filter.SortOldestFirst {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return pageSlice(matched, filter.Page, filter.Limit), total, nil
}

func (r *stubTaskRepo) ListByPoster(_ context.Context, posterID string) ([]*domain.Task, error) {
	var matched []*domain.Task
	for _, t := range r.tasks {
		if t.PosterID == posterID {
			matched = append(matched, cloneTask(t))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *stubTaskRepo) UpdateOwned(_ context.Context, id, posterID string, upd ports.TaskUpdate) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.PosterID != posterID {
		return nil, domain.ErrTaskNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Price != nil {
		t.Price = *upd.Price
	}
	if upd.Location != nil {
		t.Location = *upd.Location
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.CategoryID != nil {
		t.CategoryID = *upd.CategoryID
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id, posterID string) error {
	t, ok := r.tasks[id]
	if !ok || (posterID != "" && t.PosterID != posterID) {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	if r.apps != nil {
		for appID, a := range r.apps.apps {
			if a.TaskID == id {
				delete(r.apps.apps, appID)
			}
		}
	}
	return nil
}

func (r *stubTaskRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tasks)), nil
}

func (r *stubTaskRepo) CountByStatus(_ context.Context, status domain.TaskStatus) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) ListRecent(_ context.Context, limit int) ([]*domain.Task, error) {
	all := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		all = append(all, cloneTask(t))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// --- stats cache ---

type stubStatsCache struct {
	stats *ports.DashboardStats
	sets  int
}

func (c *stubStatsCache) Get(_ context.Context) (*ports.DashboardStats, error) {
	return c.stats, nil
}

func (c *stubStatsCache) Set(_ context.Context, stats *ports.DashboardStats) error {
	c.stats = stats
	c.sets++
	return nil
}

func pageSlice[T any](rows []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(rows) {
		return nil
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
