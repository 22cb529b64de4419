package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid credential was presented.
	ErrUnauthenticated = errors.New("You are not authenticated!")
	// ErrInvalidCredentials is returned when a username/password pair does not match.
	ErrInvalidCredentials = errors.New("Your username or password is incorrect!")
	// ErrInvalidToken is returned when a bearer token is malformed, expired, revoked or names no user.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrNotAdmin is returned when an authenticated user lacks the admin flag.
	ErrNotAdmin = errors.New("You are not authorized to perform this operation!")
	// ErrNotCommentAuthor is returned when a user touches a comment they did not write.
	ErrNotCommentAuthor = errors.New("You are not the author of this comment!")
	// ErrNotLoggedIn is returned by logout when there is nothing to tear down.
	ErrNotLoggedIn = errors.New("You are not logged in!")
	// ErrUnsupportedOperation is the sentinel behind UnsupportedError.
	ErrUnsupportedOperation = errors.New("operation not supported")

	// ErrDishNotFound is returned when a dish is not found.
	ErrDishNotFound = errors.New("Dish not found")
	// ErrCommentNotFound is returned when a comment is not found on an existing dish.
	ErrCommentNotFound = errors.New("Comment not found")
	// ErrPromotionNotFound is returned when a promotion is not found.
	ErrPromotionNotFound = errors.New("Promotion not found")
	// ErrLeaderNotFound is returned when a leader is not found.
	ErrLeaderNotFound = errors.New("Leader not found")
	// ErrFavoritesNotFound is returned when the user has no favorites list.
	ErrFavoritesNotFound = errors.New("Favorites not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("User not found")

	// ErrDuplicateName is returned when a dish, promotion or leader name is already taken.
	ErrDuplicateName = errors.New("an entry with this name already exists")
	// ErrUserAlreadyExists is returned when trying to sign up an existing username.
	ErrUserAlreadyExists = errors.New("User already exists!")
	// ErrDuplicateFavorite is returned when a dish is added twice to a favorites list.
	ErrDuplicateFavorite = errors.New("Dish already exists in your favorites!")
	// ErrInvalidFavorites is returned when the favorites payload is not an array of dish ids.
	ErrInvalidFavorites = errors.New("Request's body must be an array of dish ids.")
	// ErrInvalidRating is returned when a comment rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidPrice is returned when a monetary value is negative.
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrInvalidImage is returned when an uploaded file is not an image.
	ErrInvalidImage = errors.New("You can only upload image files!")
	// ErrPasswordTooLong is returned when a password exceeds the 72 bytes bcrypt can hash.
	ErrPasswordTooLong = errors.New("password must not exceed 72 bytes")
)

// UnsupportedError reports a method intentionally not implemented on a route.
type UnsupportedError struct {
	Method string
	Path   string
}

// Unsupported builds an UnsupportedError for method on path.
func Unsupported(method, path string) error {
	return &UnsupportedError{Method: method, Path: path}
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s operation not supported on %s", e.Method, e.Path)
}

// Is lets errors.Is match ErrUnsupportedOperation.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// UserExistsError reports a signup for a username that is already taken.
type UserExistsError struct {
	Username string
}

func (e *UserExistsError) Error() string {
	return fmt.Sprintf("User %s already exists!", e.Username)
}

// Is lets errors.Is match ErrUserAlreadyExists.
func (e *UserExistsError) Is(target error) bool {
	return target == ErrUserAlreadyExists
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{ErrNotAdmin, http.StatusForbidden, "NOT_ADMIN"},
	{ErrNotCommentAuthor, http.StatusForbidden, "NOT_OWNER"},
	{ErrNotLoggedIn, http.StatusForbidden, "NOT_LOGGED_IN"},
	{ErrUnsupportedOperation, http.StatusForbidden, "UNSUPPORTED_OPERATION"},
	{ErrDishNotFound, http.StatusNotFound, "DISH_NOT_FOUND"},
	{ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
	{ErrPromotionNotFound, http.StatusNotFound, "PROMOTION_NOT_FOUND"},
	{ErrLeaderNotFound, http.StatusNotFound, "LEADER_NOT_FOUND"},
	{ErrFavoritesNotFound, http.StatusNotFound, "FAVORITES_NOT_FOUND"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrDuplicateName, http.StatusForbidden, "DUPLICATE_NAME"},
	{ErrUserAlreadyExists, http.StatusForbidden, "USER_ALREADY_EXISTS"},
	{ErrDuplicateFavorite, http.StatusBadRequest, "DUPLICATE_FAVORITE"},
	{ErrInvalidFavorites, http.StatusBadRequest, "INVALID_FAVORITES"},
	{ErrInvalidRating, http.StatusBadRequest, "INVALID_RATING"},
	{ErrInvalidPrice, http.StatusBadRequest, "INVALID_PRICE"},
	{ErrInvalidImage, http.StatusBadRequest, "INVALID_IMAGE"},
	{ErrPasswordTooLong, http.StatusBadRequest, "PASSWORD_TOO_LONG"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. The message of the
// original error is kept so wrapped context (e.g. the route of an
// unsupported operation) reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			msg := m.err.Error()
			if m.err == ErrUnsupportedOperation || m.err == ErrUserAlreadyExists {
				msg = err.Error()
			}
			return NewHTTPError(m.status, msg, m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
