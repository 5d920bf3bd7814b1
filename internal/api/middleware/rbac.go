package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// RBAC admits callers whose role claim is one of roles. Anything else,
// including a missing claim, fails with domain.ErrForbidden.
func RBAC(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
