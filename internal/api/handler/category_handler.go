package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

// CategoryHandler handles the public category endpoints plus admin-gated
// creation.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type categoryResponse struct {
	Category *domain.Category `json:"category"`
}

type listCategoriesResponse struct {
	Count      int                `json:"count"`
	Categories []*domain.Category `json:"categories"`
}

// List handles GET /v1/categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  listCategoriesResponse
// @Router       /v1/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listCategoriesResponse{Count: len(cats), Categories: cats})
}

// Get handles GET /v1/categories/:id.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  categoryResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryResponse{Category: category})
}

// Create handles POST /v1/categories. Admin only.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category name"
// @Success      201   {object}  categoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, categoryResponse{Category: category})
}
