package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCtxIdentity_Present(t *testing.T) {
	c, _ := newTestContext("/")
	c.Set("user_id", "u1")
	c.Set("role", "admin")

	identity, err := ctxIdentity(c)
	if err != nil {
		t.Fatalf("ctxIdentity returned error: %v", err)
	}
	if identity.UserID != "u1" || identity.Role != "admin" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestCtxIdentity_Missing(t *testing.T) {
	c, _ := newTestContext("/")

	_, err := ctxIdentity(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
}

func TestQueryInt_Coercion(t *testing.T) {
	cases := []struct {
		name   string
		target string
		want   int
	}{
		{"absent", "/", 1},
		{"numeric", "/?page=3", 3},
		{"non-numeric", "/?page=abc", 1},
		{"empty value", "/?page=", 1},
		{"negative passes through", "/?page=-2", -2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(tc.target)
			if got := queryInt(c, "page", 1); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
