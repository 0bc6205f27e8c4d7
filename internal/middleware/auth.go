package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/soundhaven/musicstore/internal/tokens"
)

const userIDKey = "user_id"

// RequireAuth resolves the accessToken cookie to a user id and stores it
// in the echo context. Absent or invalid identity is an authentication
// failure here, never a core-level error.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie("accessToken")
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			userID, err := tokens.ParseAccessToken(cookie.Value, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID reads the identity RequireAuth stored in the context.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(userIDKey).(uuid.UUID)
	return id, ok
}
