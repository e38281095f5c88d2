package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medibridge/medibridge/internal/platform/httpx"
	"github.com/medibridge/medibridge/internal/platform/token"
)

type contextKey string

// UserIDKey holds the verified user identifier for the current request. It is
// request-scoped context state, never process-wide.
const UserIDKey contextKey = "user_id"

// Middleware authenticates the session-credential path. The Authorization
// header may carry the raw token or a "Bearer <token>" pair; the patient
// portal sends the raw value.
func Middleware(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return httpx.Authorization("access denied, no token provided")
			}

			tokenStr := authHeader
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				tokenStr = parts[1]
			}

			userID, err := issuer.Verify(tokenStr)
			if err != nil {
				return httpx.Authorization("invalid or expired token")
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// UserIDFromContext returns the verified user identifier, or "" when the
// request did not pass the middleware.
func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}
