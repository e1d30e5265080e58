package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"CampusPlanner/internal/identity"
)

// JWTMiddleware validates the bearer token and stores its claims in the
// request context for the handlers and the audit log. Tokens are issued by
// the external identity provider, never by this service.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing Token"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)

		claims, err := identity.ParseToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid Token"})
		}
		c.Set("user", claims)
		return next(c)
	}
}
