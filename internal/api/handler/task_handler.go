package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasksea/marketplace-api/internal/api/metrics"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for the task lifecycle.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /v1/tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        category_id  query     string  false  "Filter by category id"
// @Param        status       query     string  false  "Filter by task status"
// @Param        search       query     string  false  "Substring match on title or description"
// @Param        sort_by      query     string  false  "newest (default) or oldest"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 10)"
// @Success      200          {object}  listTasksResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), ports.ListTasksInput{
		CategoryID: c.QueryParam("category_id"),
		Search:     c.QueryParam("search"),
		Status:     c.QueryParam("status"),
		SortBy:     c.QueryParam("sort_by"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 10),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listTasksResponse{
		Data:       result.Items,
		Pagination: result.Pagination,
	})
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task with its applications
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskDetailResponse{Task: *detail})
}

// Create handles POST /v1/tasks.
//
// @Summary      Post a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Create(c.Request().Context(), actor, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(task.Category.Name).Inc()
	return c.JSON(http.StatusCreated, taskResponse{Task: *task})
}

// Update handles PUT /v1/tasks/:id. Owner only; admins have no bypass here.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  taskResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Task: *task})
}

// Delete handles DELETE /v1/tasks/:id. Owner only.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted successfully"})
}

// ListPosted handles GET /v1/tasks/user/posted.
//
// @Summary      List the caller's posted tasks with applications
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTaskDetailsResponse
// @Router       /v1/tasks/user/posted [get]
func (h *TaskHandler) ListPosted(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListPostedBy(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listTaskDetailsResponse{Count: len(tasks), Tasks: tasks})
}
