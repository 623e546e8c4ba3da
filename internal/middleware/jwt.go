package middleware // reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/utils"
)

// UserIDKey is the context key under which JWTAuth stores the
// authenticated user id.
const UserIDKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the bound user id into the request context. A missing header,
// malformed, expired or forged token all map to the same 401 so the
// response never reveals which check failed.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
			userID, ok := utils.VerifyAccessToken(secret, strings.TrimSpace(raw))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by JWTAuth. Empty when
// the route is not behind the middleware.
func UserID(c echo.Context) string {
	if v, ok := c.Get(UserIDKey).(string); ok {
		return v
	}
	return ""
}
