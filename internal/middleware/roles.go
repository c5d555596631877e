package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUserTypes ensures the requester's user_type is one of the allowed
// values. Usage: route(..., RequireUserTypes("professional", "dual"))
func RequireUserTypes(types ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userType, _ := c.Get(UserTypeKey).(string)
			if userType == "" {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "user type missing"})
			}
			for _, t := range types {
				if userType == t {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
		}
	}
}
