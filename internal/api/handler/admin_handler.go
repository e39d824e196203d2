package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasksea/marketplace-api/internal/api/metrics"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

// AdminHandler handles the admin oversight surface. Routes are RBAC-gated to
// the admin role; the self-targeting guards live in the service.
type AdminHandler struct {
	admin      ports.AdminService
	categories ports.CategoryService
}

func NewAdminHandler(admin ports.AdminService, categories ports.CategoryService) *AdminHandler {
	return &AdminHandler{admin: admin, categories: categories}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type adminUserResponse struct {
	User ports.AdminUser `json:"user"`
}

type listUsersResponse struct {
	Data       []ports.AdminUser `json:"data"`
	Pagination ports.Pagination  `json:"pagination"`
}

type listAdminTasksResponse struct {
	Data       []ports.TaskDetail `json:"data"`
	Pagination ports.Pagination   `json:"pagination"`
}

type listCategoriesWithCountsResponse struct {
	Categories []ports.CategoryWithCount `json:"categories"`
}

// Dashboard handles GET /v1/admin/dashboard.
//
// @Summary      Marketplace statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Router       /v1/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.admin.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Substring match on name or email"
// @Param        role    query     string  false  "Exact role filter"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {object}  listUsersResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	result, err := h.admin.ListUsers(c.Request().Context(), ports.ListUsersInput{
		Search: c.QueryParam("search"),
		Role:   c.QueryParam("role"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: result.Items, Pagination: result.Pagination})
}

// UpdateUserRole handles PUT /v1/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "user or admin"
// @Success      200   {object}  adminUserResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.admin.UpdateUserRole(c.Request().Context(), actor, c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminUserResponse{User: *user})
}

// DeleteUser handles DELETE /v1/admin/users/:id.
//
// @Summary      Delete a user account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.admin.DeleteUser(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.AdminDeletionsTotal.WithLabelValues("user").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}

// ListTasks handles GET /v1/admin/tasks.
//
// @Summary      List tasks with applications embedded
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by task status"
// @Param        search  query     string  false  "Substring match on title or description"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {object}  listAdminTasksResponse
// @Router       /v1/admin/tasks [get]
func (h *AdminHandler) ListTasks(c echo.Context) error {
	result, err := h.admin.ListTasks(c.Request().Context(), ports.ListAdminTasksInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAdminTasksResponse{Data: result.Items, Pagination: result.Pagination})
}

// DeleteTask handles DELETE /v1/admin/tasks/:id. Unconditional: no ownership
// check and no application-count guard.
//
// @Summary      Delete any task
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/tasks/{id} [delete]
func (h *AdminHandler) DeleteTask(c echo.Context) error {
	if err := h.admin.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.AdminDeletionsTotal.WithLabelValues("task").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted successfully"})
}

// ListCategories handles GET /v1/admin/categories.
//
// @Summary      List categories with task counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listCategoriesWithCountsResponse
// @Router       /v1/admin/categories [get]
func (h *AdminHandler) ListCategories(c echo.Context) error {
	cats, err := h.categories.ListWithCounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listCategoriesWithCountsResponse{Categories: cats})
}

// CreateCategory handles POST /v1/admin/categories.
//
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category name"
// @Success      201   {object}  categoryResponse
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/categories [post]
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categories.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, categoryResponse{Category: category})
}

// UpdateCategory handles PUT /v1/admin/categories/:id.
//
// @Summary      Rename a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "New name"
// @Success      200   {object}  categoryResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/categories/{id} [put]
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categories.Update(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryResponse{Category: category})
}

// DeleteCategory handles DELETE /v1/admin/categories/:id. Fails when tasks
// still reference the category; the error reports the exact count.
//
// @Summary      Delete an unused category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	if err := h.categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "category deleted successfully"})
}
