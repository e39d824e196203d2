package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasksea/marketplace-api/internal/api/metrics"
	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for task applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type applyRequest struct {
	Message string `json:"message"`
}

type decideRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type applicationResponse struct {
	Application *domain.Application `json:"application"`
}

type applicationSummaryResponse struct {
	Application ports.ApplicationSummary `json:"application"`
}

type listApplicationsResponse struct {
	Count        int                        `json:"count"`
	Applications []ports.ApplicationSummary `json:"applications"`
}

type listMyApplicationsResponse struct {
	Count        int                         `json:"count"`
	Applications []ports.ApplicationWithTask `json:"applications"`
}

// Apply handles POST /v1/tasks/:id/apply.
//
// @Summary      Apply for an open task
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true   "Task id"
// @Param        body  body      applyRequest  false  "Optional message to the poster"
// @Success      201   {object}  applicationResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/tasks/{id}/apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	app, err := h.service.Apply(c.Request().Context(), actor, c.Param("id"), req.Message)
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, applicationResponse{Application: app})
}

// ListForTask handles GET /v1/tasks/:id/applications. Poster only.
//
// @Summary      List applications for an owned task
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  listApplicationsResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id}/applications [get]
func (h *ApplicationHandler) ListForTask(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListForTask(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listApplicationsResponse{Count: len(apps), Applications: apps})
}

// ListMine handles GET /v1/tasks/user/applications.
//
// @Summary      List the caller's applications with targeted tasks
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listMyApplicationsResponse
// @Router       /v1/tasks/user/applications [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listMyApplicationsResponse{Count: len(apps), Applications: apps})
}

// Decide handles PUT /v1/tasks/:id/applications/:applicationId. Poster only.
//
// @Summary      Accept or reject an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id             path      string         true  "Task id"
// @Param        applicationId  path      string         true  "Application id"
// @Param        body           body      decideRequest  true  "accepted or rejected"
// @Success      200            {object}  applicationSummaryResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /v1/tasks/{id}/applications/{applicationId} [put]
func (h *ApplicationHandler) Decide(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req decideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	app, err := h.service.Decide(c.Request().Context(), actor, c.Param("id"), c.Param("applicationId"), req.Status)
	if err != nil {
		return err
	}

	metrics.ApplicationDecisionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, applicationSummaryResponse{Application: *app})
}
