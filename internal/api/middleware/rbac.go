package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qualiextra/accounts-api/internal/core/domain"
)

// RBAC enforces role-based access control. Assumes Auth ran first.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}
			return next(c)
		}
	}
}

// OwnerOrAdmin allows administrators through unconditionally and other
// callers only when the :id route parameter is their own user id.
func OwnerOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			userID, _ := c.Get(CtxUserID).(string)

			if role == domain.RoleAdmin {
				return next(c)
			}
			if userID != "" && userID == c.Param("id") {
				return next(c)
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden: you may only access your own account"})
		}
	}
}
