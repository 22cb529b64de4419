package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "confusion/internal/errors"
)

// StatusResponse is the acknowledgement returned by account operations.
type StatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// Unsupported answers methods a route deliberately does not implement.
// It runs after the route's gates, so only callers that passed them see the 403.
func Unsupported(c echo.Context) error {
	return apperrors.Unsupported(c.Request().Method, c.Request().URL.Path)
}

// pathID parses a uuid path parameter. Malformed ids cannot name a stored
// record, so they report notFound.
func pathID(c echo.Context, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// bindBody decodes the request body onto dst, leaving fields absent from the body untouched.
func bindBody(c echo.Context, dst interface{}) error {
	return (&echo.DefaultBinder{}).BindBody(c, dst)
}
