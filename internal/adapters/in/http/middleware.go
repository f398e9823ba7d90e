package http

import (
	"net/http"
	"strings"

	"mediflow/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// authMiddleware resolves the Authorization bearer token to a principal and
// stores it on the request context. Requests without a valid token get 401.
func authMiddleware(provider ports.AuthProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			principal, err := provider.VerifyToken(ctx.Request().Context(), token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "invalid or expired token",
				})
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// requireRole rejects authenticated requests whose principal has a
// different role.
func requireRole(role ports.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if currentPrincipal(ctx).Role != role {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "operation requires role " + string(role),
				})
			}
			return next(ctx)
		}
	}
}

func currentPrincipal(ctx echo.Context) ports.Principal {
	principal, _ := ctx.Get(principalContextKey).(ports.Principal)
	return principal
}
