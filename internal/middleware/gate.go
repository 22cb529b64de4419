package middleware

import (
	"github.com/labstack/echo/v4"

	"confusion/internal/auth"
)

// RequireUser lets any authenticated caller through.
func RequireUser() echo.MiddlewareFunc {
	return gate(auth.RequireAuthenticated)
}

// RequireAdmin lets only admins through.
func RequireAdmin() echo.MiddlewareFunc {
	return gate(auth.RequireAdmin)
}

func gate(check func(*auth.Identity) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := check(IdentityFrom(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}
