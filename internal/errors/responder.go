package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler is the single place where failed requests are turned into
// responses. Outside development mode 5xx responses carry no internal detail.
func HTTPErrorHandler(development bool, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := Resolve(err, development)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.String("err", err.Error()),
			)
		}
		if status == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Basic")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", slog.String("err", writeErr.Error()))
		}
	}
}

// Resolve returns the status and payload for err.
func Resolve(err error, development bool) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, echoErrorResponse(he, development)
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = MapErrorToHTTP(err)
	}
	resp := httpErr.ToErrorResponse()
	if httpErr.StatusCode >= http.StatusInternalServerError && development {
		resp.Error = err.Error()
	}
	return httpErr.StatusCode, resp
}

func echoErrorResponse(he *echo.HTTPError, development bool) ErrorResponse {
	var resp ErrorResponse
	switch msg := he.Message.(type) {
	case ErrorResponse:
		resp = msg
	case string:
		resp = ErrorResponse{Error: msg}
	default:
		resp = ErrorResponse{Error: fmt.Sprint(msg)}
	}
	if resp.Code == "" {
		resp.Code = codeForStatus(he.Code)
	}
	if he.Code >= http.StatusInternalServerError {
		if development && he.Internal != nil {
			resp.Error = he.Internal.Error()
		} else if !development {
			resp.Error = "internal server error"
		}
	}
	return resp
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= http.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}
