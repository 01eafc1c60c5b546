package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// staffMiddleware lets through callers holding a staff role within a tenant.
func staffMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			caller := claims.Caller()
			if caller.TenantID == "" {
				return errNoTenant
			}
			if !caller.IsStaff() {
				return errHttpForbidden
			}
			ctx.Set(callerContextKey, caller)
			return next(ctx)
		}
	}
}
