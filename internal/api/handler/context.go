package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty user_id proves the
// middleware ran and the token carried a usable identity.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Identity{UserID: userID, Role: role}, nil
}

// queryInt coerces a query parameter to an integer. Non-numeric or absent
// values fall back to def; bad paging input must never fail a request.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
