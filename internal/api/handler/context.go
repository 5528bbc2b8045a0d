package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qualiextra/accounts-api/internal/api/middleware"
)

// ctxClaims extracts the caller identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both user id and role
// must be present (presence proves the middleware ran).
func ctxClaims(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
