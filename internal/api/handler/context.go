package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authcore/auth-service/internal/api/middleware"
	"github.com/authcore/auth-service/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Authenticate middleware
// and fast-fails before any business logic: a non-empty id proves the
// middleware ran on this route.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get(middleware.CtxRole).(string)
	return domain.Principal{ID: id, Role: role}, nil
}
