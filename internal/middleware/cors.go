package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CORSAny allows every origin. Used on read-only routes.
func CORSAny() echo.MiddlewareFunc {
	return echomw.CORS()
}

// CORSWithOrigins echoes back only the listed origins and allows credentials.
// Other origins get no Access-Control-Allow-Origin header.
func CORSWithOrigins(origins []string) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType,
			echo.HeaderAccept, echo.HeaderAuthorization,
		},
		AllowCredentials: true,
	})
}
