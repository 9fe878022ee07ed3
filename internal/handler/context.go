package handler

import "github.com/labstack/echo/v4"

const userIDKey = "userID"

// SetUserID stores the authenticated user id on the request context.
func SetUserID(c echo.Context, userID string) {
	c.Set(userIDKey, userID)
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
